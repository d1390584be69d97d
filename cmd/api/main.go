package main

import (
	"net/http"
	"os"
	"time"

	jwtauth "medicine-tracker/internal/adapters/auth/jwt"
	pg "medicine-tracker/internal/adapters/storage/postgres"
	"medicine-tracker/internal/config"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/ports/auth"
	"medicine-tracker/internal/router"
)

// @title medicine-tracker API
// @version 1.0
// @description Seguimiento de tomas de medicinas: definiciones, expansión a slots y estado taken.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	opts := router.Options{Logger: log}

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("cannot open database", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
		log.Info("storage: postgres", nil)
	} else {
		log.Warn("storage: in-memory (DB_DSN vacío, solo para dev)", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtauth.NewVerifier(cfg.JWTSecret)
		log.Info("auth: jwt verifier", nil)
	} else {
		log.Warn("auth: modo dev por X-Debug-User-ID (JWT_SECRET vacío)", nil)
	}
	opts.AuthVerifier = verifier

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.HTTPAddr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
