package intakes

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("intake not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]Intake, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	if to.Before(from) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListInRange(ctx, ownerUserID, from, to)
}

// SetTaken marca/desmarca una toma. El timestamp sale del reloj
// inyectado del servicio, no de time.Now dentro del repo: la operación
// queda determinista en tests. Es un point update idempotente.
func (s *Service) SetTaken(ctx context.Context, ownerUserID, id string, taken bool) (Intake, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(ownerUserID) == "" {
		return Intake{}, ErrNotFound
	}

	var takenAt *time.Time
	if taken {
		now := s.now()
		takenAt = &now
	}

	return s.repo.SetTaken(ctx, id, ownerUserID, taken, takenAt)
}
