package medicines

import (
	"time"

	"medicine-tracker/internal/domain/schedule"
)

// Medicine es la definición de una medicina del paciente: nombre,
// rango de vigencia [StartDate, EndDate] y las horas del día en que
// se toma. De esta definición se derivan los intake slots concretos.
type Medicine struct {
	ID          string
	OwnerUserID string

	Name      string
	StartDate time.Time // fecha calendario, medianoche UTC
	EndDate   time.Time // inclusivo

	Times []schedule.TimeOfDay

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slots expande la definición a su set completo de claves (date, time).
func (m Medicine) Slots() ([]schedule.Slot, error) {
	return schedule.Expand(m.StartDate, m.EndDate, m.Times)
}
