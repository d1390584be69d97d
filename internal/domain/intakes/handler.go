package intakes

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
	r.Route("/intakes", func(ir chi.Router) {
		ir.Get("/", listIntakesHandler(svc))
		ir.Patch("/{intakeID}", setTakenHandler(svc))
	})
}

// intakeResponse representa una toma devuelta por la API.
type intakeResponse struct {
	ID         string     `json:"id"`
	MedicineID string     `json:"medicine_id"`
	Medicine   string     `json:"medicine_name"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Time       string     `json:"time"` // HH:MM
	Taken      bool       `json:"taken"`
	TakenAt    *time.Time `json:"taken_at"`
}

type setTakenRequest struct {
	Taken *bool `json:"taken"`
}

// listIntakesHandler godoc
// @Summary Listar tomas en un rango de fechas
// @Description Devuelve las tomas del usuario entre start_date y end_date (inclusive), ordenadas por fecha y hora, con el nombre de la medicina. Es la lectura del calendario.
// @Tags intakes
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param start_date query string true "Fecha inicial YYYY-MM-DD"
// @Param end_date query string true "Fecha final YYYY-MM-DD"
// @Success 200 {array} intakeResponse
// @Failure 400 {string} string "fechas faltantes o inválidas"
// @Failure 401 {string} string "unauthorized"
// @Router /intakes [get]
func listIntakesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		from, err := time.Parse(schedule.DateLayout, q.Get("start_date"))
		if err != nil {
			http.Error(w, "start_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to, err := time.Parse(schedule.DateLayout, q.Get("end_date"))
		if err != nil {
			http.Error(w, "end_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		list, err := svc.ListInRange(r.Context(), claims.UserID, from, to)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]intakeResponse, 0, len(list))
		for _, in := range list {
			out = append(out, toIntakeResponse(in))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setTakenHandler godoc
// @Summary Marcar o desmarcar una toma
// @Description Actualiza taken de la toma indicada. Al marcar se registra taken_at; al desmarcar se limpia.
// @Tags intakes
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param intakeID path string true "ID de la toma"
// @Param payload body setTakenRequest true "Estado nuevo"
// @Success 200 {object} intakeResponse
// @Failure 400 {string} string "invalid json / taken faltante"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "intake not found"
// @Router /intakes/{intakeID} [patch]
func setTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Taken == nil {
			http.Error(w, "taken must be a boolean", http.StatusBadRequest)
			return
		}

		in, err := svc.SetTaken(r.Context(), claims.UserID, chi.URLParam(r, "intakeID"), *req.Taken)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "intake not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toIntakeResponse(in))
	}
}

func toIntakeResponse(in Intake) intakeResponse {
	return intakeResponse{
		ID:         in.ID,
		MedicineID: in.MedicineID,
		Medicine:   in.MedicineName,
		Date:       in.Date.Format(schedule.DateLayout),
		Time:       in.Time,
		Taken:      in.Taken,
		TakenAt:    in.TakenAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
