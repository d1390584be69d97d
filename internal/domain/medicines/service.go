package medicines

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"medicine-tracker/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medicine not found")
)

type Service struct {
	repo  Repository
	store IntakeStore
	now   func() time.Time

	// Un mutex por medicina: dos reconciliaciones concurrentes sobre la
	// misma medicina no pueden intercalar su leer-diff-aplicar, o una
	// terminaría aplicando un diff calculado sobre un snapshot viejo.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo Repository, store IntakeStore) *Service {
	return &Service{
		repo:  repo,
		store: store,
		now:   time.Now,
		locks: map[string]*sync.Mutex{},
	}
}

// lockMedicine serializa las mutaciones de una medicina. El mapa crece
// con las medicinas tocadas por este proceso; son pocas y chicas, no
// vale la pena un ciclo de limpieza.
func (s *Service) lockMedicine(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

type DefinitionInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Times     []schedule.TimeOfDay
}

// Create valida y expande la definición ANTES de escribir nada: si la
// entrada es inválida no queda ningún estado parcial. Luego persiste la
// medicina y aplica el alta de todos sus slots.
func (s *Service) Create(ctx context.Context, ownerUserID string, in DefinitionInput) (Medicine, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Medicine{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medicine{}, ErrInvalidInput
	}

	now := s.now()
	m := Medicine{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Times:       in.Times,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	target, err := m.Slots()
	if err != nil {
		return Medicine{}, err
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medicine{}, err
	}

	// Alta: no hay slots previos, el diff es "crear todo".
	diff := schedule.Reconcile(nil, target)
	if err := s.store.ApplySlotChanges(ctx, m.ID, m.OwnerUserID, diff); err != nil {
		// Compensación: no dejar una medicina sin slots si el alta de
		// slots falló. El delete es best effort; si también falla, el
		// caller reintenta el Create completo (idempotente salvo el ID).
		_ = s.repo.Delete(ctx, m.ID)
		return Medicine{}, err
	}

	return m, nil
}

// Update reemplaza la definición completa (nombre, rango y horas) y
// reconcilia los slots persistidos contra el nuevo set implicado. Los
// slots cuya clave (date, time) no cambió conservan su taken/takenAt.
func (s *Service) Update(ctx context.Context, ownerUserID, id string, in DefinitionInput) (Medicine, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Medicine{}, ErrInvalidInput
	}

	unlock := s.lockMedicine(strings.TrimSpace(id))
	defer unlock()

	m, err := s.getOwned(ctx, ownerUserID, id)
	if err != nil {
		return Medicine{}, err
	}

	m.Name = strings.TrimSpace(in.Name)
	m.StartDate = in.StartDate
	m.EndDate = in.EndDate
	m.Times = in.Times
	m.UpdatedAt = s.now()

	target, err := m.Slots()
	if err != nil {
		return Medicine{}, err
	}

	current, err := s.store.ListSlots(ctx, m.ID)
	if err != nil {
		return Medicine{}, err
	}

	diff := schedule.Reconcile(current, target)
	if err := s.store.ApplySlotChanges(ctx, m.ID, m.OwnerUserID, diff); err != nil {
		return Medicine{}, err
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return Medicine{}, err
	}
	return m, nil
}

// Delete borra la medicina y, en cascada explícita, todos sus slots:
// el caso degenerado de reconciliación con target vacío. No pueden
// quedar slots huérfanos.
func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	unlock := s.lockMedicine(strings.TrimSpace(id))
	defer unlock()

	m, err := s.getOwned(ctx, ownerUserID, id)
	if err != nil {
		return err
	}

	current, err := s.store.ListSlots(ctx, m.ID)
	if err != nil {
		return err
	}

	diff := schedule.Reconcile(current, nil)
	if err := s.store.ApplySlotChanges(ctx, m.ID, m.OwnerUserID, diff); err != nil {
		return err
	}

	return s.repo.Delete(ctx, m.ID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Medicine, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// getOwned devuelve ErrNotFound tanto si la medicina no existe como si
// pertenece a otro usuario: no se filtra existencia ajena.
func (s *Service) getOwned(ctx context.Context, ownerUserID, id string) (Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(ownerUserID) == "" {
		return Medicine{}, ErrNotFound
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Medicine{}, ErrNotFound
		}
		return Medicine{}, err
	}
	if m.OwnerUserID != ownerUserID {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}
