package bolt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type clientRepository struct {
	clients collection[model.Client]
}

func NewClientRepository(store *Store) repository.ClientRepository {
	return &clientRepository{clients: newCollection[model.Client](store.db, "clients")}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	client.CreatedAt = time.Now()
	client.UpdatedAt = time.Now()
	return r.clients.put(client.ID, client)
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	return r.clients.get(id)
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	client.UpdatedAt = time.Now()
	return r.clients.update(client.ID, client)
}

// Delete removes the client document only; vehicles and appointments that
// reference it stay untouched.
func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.clients.delete(id)
}

func (r *clientRepository) List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error) {
	return r.clients.list(func(c *model.Client) bool {
		if filters == nil {
			return true
		}
		if filters.Phone != "" && c.Phone != filters.Phone {
			return false
		}
		if filters.SearchTerm != "" {
			term := strings.ToLower(filters.SearchTerm)
			if !strings.Contains(strings.ToLower(c.Name), term) &&
				!strings.Contains(strings.ToLower(c.Surname), term) &&
				!strings.Contains(c.Phone, term) {
				return false
			}
		}
		return true
	})
}
