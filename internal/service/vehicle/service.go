package vehicle

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type Service struct {
	repo       repository.VehicleRepository
	clientRepo repository.ClientRepository
}

func NewService(repo repository.VehicleRepository, clientRepo repository.ClientRepository) *Service {
	return &Service{
		repo:       repo,
		clientRepo: clientRepo,
	}
}

func (s *Service) CreateVehicle(ctx context.Context, req *model.CreateVehicleRequest) (*model.Vehicle, error) {
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{
		ClientID:     req.ClientID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Color:        req.Color,
		LicensePlate: req.LicensePlate,
	}
	vehicle.ID = uuid.New()

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *Service) GetVehicle(ctx context.Context, id uuid.UUID) (*model.Vehicle, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateVehicle(ctx context.Context, id uuid.UUID, req *model.UpdateVehicleRequest) (*model.Vehicle, error) {
	vehicle, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.LicensePlate != nil {
		vehicle.LicensePlate = *req.LicensePlate
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListVehicles(ctx context.Context, filters *model.VehicleFilters) ([]*model.Vehicle, error) {
	vehicles, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}
