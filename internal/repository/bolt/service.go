package bolt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type serviceRepository struct {
	services collection[model.Service]
}

func NewServiceRepository(store *Store) repository.ServiceRepository {
	return &serviceRepository{services: newCollection[model.Service](store.db, "services")}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()
	return r.services.put(service.ID, service)
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return r.services.get(id)
}

func (r *serviceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	return r.services.list(func(s *model.Service) bool {
		return wanted[s.ID]
	})
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	service.UpdatedAt = time.Now()
	return r.services.update(service.ID, service)
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.services.delete(id)
}

func (r *serviceRepository) List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error) {
	return r.services.list(func(s *model.Service) bool {
		if filters == nil {
			return true
		}
		if filters.Active != nil && s.Active != *filters.Active {
			return false
		}
		if filters.SearchTerm != "" &&
			!strings.Contains(strings.ToLower(s.Name), strings.ToLower(filters.SearchTerm)) {
			return false
		}
		return true
	})
}
