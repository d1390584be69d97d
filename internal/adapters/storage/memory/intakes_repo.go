package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"medicine-tracker/internal/domain/intakes"
	"medicine-tracker/internal/domain/schedule"

	"github.com/google/uuid"
)

// IntakeRepo implementa intakes.Repository y también medicines.IntakeStore:
// es el mismo almacén visto desde los dos módulos.
type IntakeRepo struct {
	mu   sync.RWMutex
	byID map[string]intakes.Intake

	meds *MedicineRepo
}

func NewIntakeRepo(meds *MedicineRepo) *IntakeRepo {
	return &IntakeRepo{
		byID: make(map[string]intakes.Intake),
		meds: meds,
	}
}

func (r *IntakeRepo) ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]intakes.Intake, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]intakes.Intake, 0)
	for _, in := range r.byID {
		if in.OwnerUserID != ownerUserID {
			continue
		}
		if in.Date.Before(from) || in.Date.After(to) {
			continue
		}
		in.MedicineName = r.meds.name(in.MedicineID)
		out = append(out, in)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})

	return out, nil
}

func (r *IntakeRepo) SetTaken(ctx context.Context, id, ownerUserID string, taken bool, takenAt *time.Time) (intakes.Intake, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, ok := r.byID[id]
	if !ok || in.OwnerUserID != ownerUserID {
		// Mismo error tanto si no existe como si es de otro usuario.
		return intakes.Intake{}, intakes.ErrNotFound
	}

	in.Taken = taken
	in.TakenAt = takenAt
	r.byID[id] = in

	in.MedicineName = r.meds.name(in.MedicineID)
	return in, nil
}

func (r *IntakeRepo) ListSlots(ctx context.Context, medicineID string) ([]schedule.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Slot, 0)
	for _, in := range r.byID {
		if in.MedicineID != medicineID {
			continue
		}
		out = append(out, schedule.Slot{
			Date: in.Date.Format(schedule.DateLayout),
			Time: in.Time,
		})
	}
	return out, nil
}

// ApplySlotChanges aplica bajas y altas bajo un solo lock: nadie ve el
// set de slots a mitad de camino. Los slots de ToKeep no se tocan.
func (r *IntakeRepo) ApplySlotChanges(ctx context.Context, medicineID, ownerUserID string, diff schedule.Diff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	del := make(map[schedule.Slot]bool, len(diff.ToDelete))
	for _, s := range diff.ToDelete {
		del[s] = true
	}
	for id, in := range r.byID {
		if in.MedicineID != medicineID {
			continue
		}
		key := schedule.Slot{Date: in.Date.Format(schedule.DateLayout), Time: in.Time}
		if del[key] {
			delete(r.byID, id)
		}
	}

	for _, s := range diff.ToCreate {
		date, err := time.Parse(schedule.DateLayout, s.Date)
		if err != nil {
			return err
		}
		in := intakes.Intake{
			ID:          uuid.NewString(),
			MedicineID:  medicineID,
			OwnerUserID: ownerUserID,
			Date:        date,
			Time:        s.Time,
			Taken:       false,
		}
		r.byID[in.ID] = in
	}

	return nil
}
