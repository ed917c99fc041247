package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (
			id, user_id, date, start_time, end_time, status, earnings,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		shift.ID,
		shift.UserID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.Status,
		shift.Earnings,
		shift.CreatedAt,
		shift.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

func (r *shiftRepository) Get(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := `SELECT * FROM shifts WHERE id = $1`
	var shift model.Shift
	err := r.db.GetContext(ctx, &shift, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("shift", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	query := `
		UPDATE shifts
		SET date = $1, start_time = $2, end_time = $3, status = $4,
			earnings = $5, updated_at = $6
		WHERE id = $7
	`
	shift.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.Status,
		shift.Earnings,
		shift.UpdatedAt,
		shift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("shift", nil)
	}
	return nil
}

func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM shifts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("shift", nil)
	}
	return nil
}

func (r *shiftRepository) List(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error) {
	query := `SELECT * FROM shifts WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.UserID != uuid.Nil {
			query += fmt.Sprintf(" AND user_id = $%d", argCount)
			args = append(args, filters.UserID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
		if filters.StartDate != "" {
			query += fmt.Sprintf(" AND date >= $%d", argCount)
			args = append(args, filters.StartDate)
			argCount++
		}
		if filters.EndDate != "" {
			query += fmt.Sprintf(" AND date <= $%d", argCount)
			args = append(args, filters.EndDate)
			argCount++
		}
	}

	query += " ORDER BY date, start_time"

	var shifts []*model.Shift
	err := r.db.SelectContext(ctx, &shifts, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}
