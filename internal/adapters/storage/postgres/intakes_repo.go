package postgres

import (
	"context"
	"database/sql"
	"time"

	"medicine-tracker/internal/domain/intakes"
	"medicine-tracker/internal/domain/schedule"

	"github.com/google/uuid"
)

// IntakesRepo implementa intakes.Repository y medicines.IntakeStore
// sobre la misma tabla.
type IntakesRepo struct {
	db *sql.DB
}

func NewIntakesRepo(db *sql.DB) *IntakesRepo {
	return &IntakesRepo{db: db}
}

func (r *IntakesRepo) ListInRange(ctx context.Context, ownerUserID string, from, to time.Time) ([]intakes.Intake, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			i.id, i.medicine_id, i.owner_user_id,
			i.date, i.time, i.taken, i.taken_at,
			m.name
		FROM intakes i
		JOIN medicines m ON m.id = i.medicine_id
		WHERE i.owner_user_id = $1
		  AND i.date >= $2
		  AND i.date <= $3
		ORDER BY i.date ASC, i.time ASC
	`, ownerUserID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]intakes.Intake, 0)
	for rows.Next() {
		in, err := scanIntake(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *IntakesRepo) SetTaken(ctx context.Context, id, ownerUserID string, taken bool, takenAt *time.Time) (intakes.Intake, error) {
	// El filtro por owner va en el UPDATE mismo: una toma ajena y una
	// inexistente responden igual (cero filas).
	row := r.db.QueryRowContext(ctx, `
		UPDATE intakes i
		SET taken = $3, taken_at = $4
		FROM medicines m
		WHERE i.id = $1
		  AND i.owner_user_id = $2
		  AND m.id = i.medicine_id
		RETURNING
			i.id, i.medicine_id, i.owner_user_id,
			i.date, i.time, i.taken, i.taken_at,
			m.name
	`, id, ownerUserID, taken, toNullTime(takenAt))

	in, err := scanIntake(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return intakes.Intake{}, intakes.ErrNotFound
		}
		return intakes.Intake{}, err
	}
	return in, nil
}

func (r *IntakesRepo) ListSlots(ctx context.Context, medicineID string) ([]schedule.Slot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, time
		FROM intakes
		WHERE medicine_id = $1
	`, medicineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.Slot, 0)
	for rows.Next() {
		var d time.Time
		var ts string
		if err := rows.Scan(&d, &ts); err != nil {
			return nil, err
		}
		out = append(out, schedule.Slot{Date: d.Format(schedule.DateLayout), Time: ts})
	}
	return out, rows.Err()
}

// ApplySlotChanges borra y crea dentro de una misma transacción: si el
// insert falla, el delete se revierte y la medicina nunca queda sin
// slots por un fallo a mitad de camino.
func (r *IntakesRepo) ApplySlotChanges(ctx context.Context, medicineID, ownerUserID string, diff schedule.Diff) error {
	if diff.Empty() {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range diff.ToDelete {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM intakes
			WHERE medicine_id = $1 AND date = $2 AND time = $3
		`, medicineID, s.Date, s.Time); err != nil {
			return err
		}
	}

	for _, s := range diff.ToCreate {
		// ON CONFLICT sobre la clave (medicine_id, date, time): un retry
		// de la reconciliación es seguro, no duplica slots.
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO intakes (id, medicine_id, owner_user_id, date, time, taken, taken_at)
			VALUES ($1,$2,$3,$4,$5,false,NULL)
			ON CONFLICT (medicine_id, date, time) DO NOTHING
		`, uuid.NewString(), medicineID, ownerUserID, s.Date, s.Time); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func scanIntake(scan func(dest ...any) error) (intakes.Intake, error) {
	var in intakes.Intake
	var takenAt sql.NullTime
	if err := scan(
		&in.ID,
		&in.MedicineID,
		&in.OwnerUserID,
		&in.Date,
		&in.Time,
		&in.Taken,
		&takenAt,
		&in.MedicineName,
	); err != nil {
		return intakes.Intake{}, err
	}
	if takenAt.Valid {
		t := takenAt.Time
		in.TakenAt = &t
	}
	return in, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
