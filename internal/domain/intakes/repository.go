package intakes

import (
	"context"
	"time"
)

type Repository interface {
	// ListInRange devuelve las tomas del usuario con from <= date <= to,
	// ordenadas por fecha y hora, con el nombre de la medicina resuelto.
	ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]Intake, error)

	// SetTaken actualiza el estado de una toma verificando que pertenezca
	// al usuario; si no existe o es ajena, ErrNotFound (sin distinguir).
	// takenAt va en nil cuando taken es false.
	SetTaken(ctx context.Context, id, ownerUserID string, taken bool, takenAt *time.Time) (Intake, error)
}
