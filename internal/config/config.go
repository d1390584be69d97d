package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DatabaseDSN string

	// Secreto HS256 para verificar tokens. Vacío => auth de dev por
	// header X-Debug-User-ID.
	JWTSecret string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DatabaseDSN: getenv("DB_DSN", ""),
		JWTSecret:   getenv("JWT_SECRET", ""),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
