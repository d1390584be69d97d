package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medicine-tracker/internal/domain/schedule"
	"medicine-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc))
		mr.Get("/", listMedicinesHandler(svc))

		// Edición = reemplazo completo de la definición (PUT, no PATCH).
		mr.Put("/{medicineID}", updateMedicineHandler(svc))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc))
	})
}

// timeOfDayPayload es una hora del día en requests/responses.
type timeOfDayPayload struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// medicineRequest es el cuerpo para crear o reemplazar una medicina.
type medicineRequest struct {
	Name      string             `json:"name"`
	StartDate string             `json:"start_date"` // YYYY-MM-DD
	EndDate   string             `json:"end_date"`   // YYYY-MM-DD, inclusivo
	Times     []timeOfDayPayload `json:"times"`
}

// medicineResponse representa una medicina devuelta por la API.
type medicineResponse struct {
	ID          string             `json:"id"`
	OwnerUserID string             `json:"owner_user_id"`
	Name        string             `json:"name"`
	StartDate   string             `json:"start_date"`
	EndDate     string             `json:"end_date"`
	Times       []timeOfDayPayload `json:"times"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// createMedicineHandler godoc
// @Summary Crear medicina
// @Description Crea una medicina (nombre, rango de vigencia, horas del día) y genera todos sus intake slots. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body medicineRequest true "Definición; fechas en formato YYYY-MM-DD"
// @Success 201 {object} medicineResponse
// @Failure 400 {string} string "invalid json / fechas u horas inválidas"
// @Failure 401 {string} string "unauthorized"
// @Router /medicines [post]
func createMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeDefinition(w, r)
		if !ok {
			return
		}

		m, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

// listMedicinesHandler godoc
// @Summary Listar medicinas del usuario
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} medicineResponse
// @Failure 401 {string} string "unauthorized"
// @Router /medicines [get]
func listMedicinesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicineResponse, 0, len(list))
		for _, m := range list {
			out = append(out, toMedicineResponse(m))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateMedicineHandler godoc
// @Summary Reemplazar la definición de una medicina
// @Description Reemplaza nombre, rango y horas. Los slots se reconcilian: los que siguen implicados conservan su estado taken; los que ya no, se borran.
// @Tags medicines
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID de la medicina"
// @Param payload body medicineRequest true "Definición nueva completa"
// @Success 200 {object} medicineResponse
// @Failure 400 {string} string "invalid json / fechas u horas inválidas"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID} [put]
func updateMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeDefinition(w, r)
		if !ok {
			return
		}

		m, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "medicineID"), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

// deleteMedicineHandler godoc
// @Summary Borrar medicina
// @Description Borra la medicina y, en cascada, todos sus intake slots.
// @Tags medicines
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param medicineID path string true "ID de la medicina"
// @Success 200 {object} map[string]string
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medicine not found"
// @Router /medicines/{medicineID} [delete]
func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "medicineID")); err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted"})
	}
}

func decodeDefinition(w http.ResponseWriter, r *http.Request) (DefinitionInput, bool) {
	var req medicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return DefinitionInput{}, false
	}

	start, err := time.Parse(schedule.DateLayout, req.StartDate)
	if err != nil {
		http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
		return DefinitionInput{}, false
	}
	end, err := time.Parse(schedule.DateLayout, req.EndDate)
	if err != nil {
		http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
		return DefinitionInput{}, false
	}

	times := make([]schedule.TimeOfDay, 0, len(req.Times))
	for _, t := range req.Times {
		times = append(times, schedule.TimeOfDay{Hour: t.Hour, Minute: t.Minute})
	}

	return DefinitionInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		Times:     times,
	}, true
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, schedule.ErrInvalidRange),
		errors.Is(err, schedule.ErrInvalidTimes),
		errors.Is(err, schedule.ErrInvalidTime):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicineResponse(m Medicine) medicineResponse {
	times := make([]timeOfDayPayload, 0, len(m.Times))
	for _, t := range m.Times {
		times = append(times, timeOfDayPayload{Hour: t.Hour, Minute: t.Minute})
	}
	return medicineResponse{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		StartDate:   m.StartDate.Format(schedule.DateLayout),
		EndDate:     m.EndDate.Format(schedule.DateLayout),
		Times:       times,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
