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

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	query := `
		INSERT INTO vehicles (
			id, client_id, make, model, year, color, license_plate,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.ClientID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.LicensePlate,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *vehicleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE id = $1`
	var vehicle model.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("vehicle", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, color = $4, license_plate = $5,
			updated_at = $6
		WHERE id = $7
	`
	vehicle.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.LicensePlate,
		vehicle.UpdatedAt,
		vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("vehicle", nil)
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("vehicle", nil)
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, filters *model.VehicleFilters) ([]*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.ClientID != uuid.Nil {
			query += fmt.Sprintf(" AND client_id = $%d", argCount)
			args = append(args, filters.ClientID)
			argCount++
		}
		if filters.LicensePlate != "" {
			query += fmt.Sprintf(" AND license_plate = $%d", argCount)
			args = append(args, filters.LicensePlate)
			argCount++
		}
		if filters.SearchTerm != "" {
			query += fmt.Sprintf(" AND (make ILIKE $%d OR model ILIKE $%d OR license_plate ILIKE $%d)", argCount, argCount, argCount)
			args = append(args, "%"+filters.SearchTerm+"%")
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var vehicles []*model.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *vehicleRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Vehicle, error) {
	query := `SELECT * FROM vehicles WHERE client_id = $1 ORDER BY created_at DESC`
	var vehicles []*model.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list client vehicles: %w", err)
	}
	return vehicles, nil
}
