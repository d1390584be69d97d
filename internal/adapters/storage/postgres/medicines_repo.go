package postgres

import (
	"context"
	"database/sql"
	"strings"

	"medicine-tracker/internal/domain/medicines"
	"medicine-tracker/internal/domain/schedule"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

// Create escribe la medicina y sus horas en una sola transacción.
func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO medicines (
			id, owner_user_id, name,
			start_date, end_date,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		m.ID,
		m.OwnerUserID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertTimes(ctx, tx, m.ID, m.Times); err != nil {
		return err
	}

	return tx.Commit()
}

// Update reemplaza la fila y el set de horas (la edición es reemplazo
// completo de la definición).
func (r *MedicinesRepo) Update(ctx context.Context, m medicines.Medicine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE medicines
		SET name = $2, start_date = $3, end_date = $4, updated_at = $5
		WHERE id = $1
	`,
		m.ID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM medicine_times WHERE medicine_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertTimes(ctx, tx, m.ID, m.Times); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *MedicinesRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM medicine_times WHERE medicine_id = $1`, id); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}

	return tx.Commit()
}

func (r *MedicinesRepo) GetByID(ctx context.Context, id string) (medicines.Medicine, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, start_date, end_date, created_at, updated_at
		FROM medicines
		WHERE id = $1
	`, id)

	var m medicines.Medicine
	if err := row.Scan(
		&m.ID,
		&m.OwnerUserID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return medicines.Medicine{}, medicines.ErrNotFound
		}
		return medicines.Medicine{}, err
	}

	times, err := r.loadTimes(ctx, m.ID)
	if err != nil {
		return medicines.Medicine{}, err
	}
	m.Times = times

	return m, nil
}

func (r *MedicinesRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]medicines.Medicine, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, start_date, end_date, created_at, updated_at
		FROM medicines
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		var m medicines.Medicine
		if err := rows.Scan(
			&m.ID,
			&m.OwnerUserID,
			&m.Name,
			&m.StartDate,
			&m.EndDate,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		times, err := r.loadTimes(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Times = times
	}

	return out, nil
}

func (r *MedicinesRepo) loadTimes(ctx context.Context, medicineID string) ([]schedule.TimeOfDay, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT hour, minute
		FROM medicine_times
		WHERE medicine_id = $1
		ORDER BY hour, minute
	`, medicineID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]schedule.TimeOfDay, 0)
	for rows.Next() {
		var t schedule.TimeOfDay
		if err := rows.Scan(&t.Hour, &t.Minute); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func insertTimes(ctx context.Context, tx *sql.Tx, medicineID string, times []schedule.TimeOfDay) error {
	for _, t := range times {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO medicine_times (medicine_id, hour, minute)
			VALUES ($1,$2,$3)
			ON CONFLICT DO NOTHING
		`, medicineID, t.Hour, t.Minute); err != nil {
			return err
		}
	}
	return nil
}
