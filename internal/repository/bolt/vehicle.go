package bolt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type vehicleRepository struct {
	vehicles collection[model.Vehicle]
}

func NewVehicleRepository(store *Store) repository.VehicleRepository {
	return &vehicleRepository{vehicles: newCollection[model.Vehicle](store.db, "vehicles")}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()
	return r.vehicles.put(vehicle.ID, vehicle)
}

func (r *vehicleRepository) Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return r.vehicles.get(id)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	vehicle.UpdatedAt = time.Now()
	return r.vehicles.update(vehicle.ID, vehicle)
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.vehicles.delete(id)
}

func (r *vehicleRepository) List(ctx context.Context, filters *model.VehicleFilters) ([]*model.Vehicle, error) {
	return r.vehicles.list(func(v *model.Vehicle) bool {
		if filters == nil {
			return true
		}
		if filters.ClientID != uuid.Nil && v.ClientID != filters.ClientID {
			return false
		}
		if filters.LicensePlate != "" && !strings.EqualFold(v.LicensePlate, filters.LicensePlate) {
			return false
		}
		if filters.SearchTerm != "" {
			term := strings.ToLower(filters.SearchTerm)
			if !strings.Contains(strings.ToLower(v.Make), term) &&
				!strings.Contains(strings.ToLower(v.Model), term) &&
				!strings.Contains(strings.ToLower(v.LicensePlate), term) {
				return false
			}
		}
		return true
	})
}

func (r *vehicleRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Vehicle, error) {
	return r.vehicles.list(func(v *model.Vehicle) bool {
		return v.ClientID == clientID
	})
}
