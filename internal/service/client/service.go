package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type Service struct {
	repo        repository.ClientRepository
	vehicleRepo repository.VehicleRepository
}

func NewService(repo repository.ClientRepository, vehicleRepo repository.VehicleRepository) *Service {
	return &Service{
		repo:        repo,
		vehicleRepo: vehicleRepo,
	}
}

func (s *Service) CreateClient(ctx context.Context, req *model.CreateClientRequest) (*model.Client, error) {
	client := &model.Client{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	client.ID = uuid.New()

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateClient(ctx context.Context, id uuid.UUID, req *model.UpdateClientRequest) (*model.Client, error) {
	client, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Surname != nil {
		client.Surname = *req.Surname
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// DeleteClient removes only the client record. Vehicles and appointment
// history stay behind so past business and revenue figures keep their shape.
func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListClients(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error) {
	clients, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

func (s *Service) ListClientVehicles(ctx context.Context, clientID uuid.UUID) ([]*model.Vehicle, error) {
	if _, err := s.repo.Get(ctx, clientID); err != nil {
		return nil, err
	}
	return s.vehicleRepo.ListByClient(ctx, clientID)
}
