package router

import (
	"database/sql"
	"net/http"

	mem "medicine-tracker/internal/adapters/storage/memory"
	pg "medicine-tracker/internal/adapters/storage/postgres"
	"medicine-tracker/internal/domain/intakes"
	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/middleware"
	"medicine-tracker/internal/platform/logger"
	"medicine-tracker/internal/ports/auth"

	_ "medicine-tracker/docs" // swagger generado

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)
	Logger       logger.Logger     // puede ser nil (sin request log)

	// Si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var (
		medRepo     medicines.Repository
		intakeRepo  intakes.Repository
		intakeStore medicines.IntakeStore
	)

	if opts.DB != nil {
		medRepo = pg.NewMedicinesRepo(opts.DB)
		ir := pg.NewIntakesRepo(opts.DB)
		intakeRepo = ir
		intakeStore = ir
	} else {
		mr := mem.NewMedicineRepo()
		ir := mem.NewIntakeRepo(mr)
		medRepo = mr
		intakeRepo = ir
		intakeStore = ir
	}

	medSvc := medicines.NewService(medRepo, intakeStore)
	intakeSvc := intakes.NewService(intakeRepo)

	medicines.RegisterRoutes(r, medSvc)
	intakes.RegisterRoutes(r, intakeSvc)

	return r
}
