package medicines

import (
	"context"

	"medicine-tracker/internal/domain/schedule"
)

type Repository interface {
	Create(ctx context.Context, m Medicine) error
	Update(ctx context.Context, m Medicine) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Medicine, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Medicine, error)
}

// IntakeStore es el colaborador que persiste los intake slots de una
// medicina. El servicio calcula el diff (puro) y se lo delega entero;
// ApplySlotChanges debe aplicar bajas y altas como una sola unidad de
// trabajo, para que una lectura concurrente nunca vea una medicina con
// el set de slots a medio borrar o a medio recrear.
type IntakeStore interface {
	ListSlots(ctx context.Context, medicineID string) ([]schedule.Slot, error)
	ApplySlotChanges(ctx context.Context, medicineID, ownerUserID string, diff schedule.Diff) error
}
