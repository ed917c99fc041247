package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/washpoint/admin-api/internal/model"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

// Create inserts the appointment and its service line items in one
// transaction so the price snapshot can never be partial.
func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment, services []*model.AppointmentService) error {
	query := `
		INSERT INTO appointments (
			id, client_id, vehicle_id, user_id, date, start_time, end_time,
			status, total_price, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	serviceQuery := `
		INSERT INTO appointment_services (id, appointment_id, service_id, price)
		VALUES ($1, $2, $3, $4)
	`

	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			appointment.ID,
			appointment.ClientID,
			appointment.VehicleID,
			appointment.UserID,
			appointment.Date,
			appointment.StartTime,
			appointment.EndTime,
			appointment.Status,
			appointment.TotalPrice,
			appointment.Notes,
			appointment.CreatedAt,
			appointment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		for _, svc := range services {
			if _, err := tx.ExecContext(ctx, serviceQuery,
				svc.ID,
				svc.AppointmentID,
				svc.ServiceID,
				svc.Price,
			); err != nil {
				return fmt.Errorf("failed to create appointment service: %w", err)
			}
		}
		return nil
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = $1`
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET vehicle_id = $1, user_id = $2, date = $3, start_time = $4,
			end_time = $5, status = $6, total_price = $7, notes = $8,
			updated_at = $9
		WHERE id = $10
	`
	appointment.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		appointment.VehicleID,
		appointment.UserID,
		appointment.Date,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.TotalPrice,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete appointment services: %w", err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete appointment: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return apperrors.NotFound("appointment", nil)
		}
		return nil
	})
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.ClientID != uuid.Nil {
			query += fmt.Sprintf(" AND client_id = $%d", argCount)
			args = append(args, filters.ClientID)
			argCount++
		}
		if filters.VehicleID != uuid.Nil {
			query += fmt.Sprintf(" AND vehicle_id = $%d", argCount)
			args = append(args, filters.VehicleID)
			argCount++
		}
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

	var appointments []*model.Appointment
	err := r.db.SelectContext(ctx, &appointments, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListServices(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentService, error) {
	query := `SELECT * FROM appointment_services WHERE appointment_id = $1`
	var services []*model.AppointmentService
	err := r.db.SelectContext(ctx, &services, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment services: %w", err)
	}
	return services, nil
}
