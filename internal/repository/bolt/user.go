package bolt

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type userRepository struct {
	users collection[model.User]
}

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{users: newCollection[model.User](store.db, "users")}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	return r.users.put(user.ID, user)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.users.get(id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	matches, err := r.users.list(func(u *model.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.NotFound("user", nil)
	}
	return matches[0], nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	return r.users.update(user.ID, user)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.users.delete(id)
}

func (r *userRepository) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	return r.users.list(func(u *model.User) bool {
		if filters == nil {
			return true
		}
		if filters.Role != "" && u.Role != filters.Role {
			return false
		}
		if filters.SearchTerm != "" {
			term := strings.ToLower(filters.SearchTerm)
			if !strings.Contains(strings.ToLower(u.Name), term) &&
				!strings.Contains(strings.ToLower(u.Surname), term) &&
				!strings.Contains(strings.ToLower(u.Email), term) {
				return false
			}
		}
		return true
	})
}
