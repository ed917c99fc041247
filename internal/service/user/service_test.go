package user

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository/bolt"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
	"github.com/washpoint/admin-api/pkg/security"
)

func newService(t *testing.T) (*Service, security.PasswordHasher) {
	t.Helper()

	store, err := bolt.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := zerolog.Nop()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	return NewService(bolt.NewUserRepository(store), hasher, nil, &logger), hasher
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, hasher := newService(t)

	created, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Name:     "Anna",
		Surname:  "Koleva",
		Email:    "anna@wash.test",
		Role:     model.UserRoleEmployee,
		Password: "sudsandwater",
	})
	require.NoError(t, err)

	assert.Empty(t, created.Password)
	require.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "sudsandwater", created.PasswordHash)
	assert.NoError(t, hasher.Compare(created.PasswordHash, "sudsandwater"))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)

	req := &model.CreateUserRequest{
		Name:     "Anna",
		Surname:  "Koleva",
		Email:    "anna@wash.test",
		Role:     model.UserRoleEmployee,
		Password: "sudsandwater",
	}
	_, err := svc.CreateUser(context.Background(), req)
	require.NoError(t, err)

	// Address comparison ignores case.
	req.Email = "ANNA@wash.test"
	_, err = svc.CreateUser(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "email already in use")
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc, hasher := newService(t)

	created, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Name:     "Anna",
		Surname:  "Koleva",
		Email:    "anna@wash.test",
		Role:     model.UserRoleEmployee,
		Password: "sudsandwater",
	})
	require.NoError(t, err)

	newPassword := "foamierstill"
	updated, err := svc.UpdateUser(context.Background(), created.ID, &model.UpdateUserRequest{Password: &newPassword})
	require.NoError(t, err)

	assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)
	assert.NoError(t, hasher.Compare(updated.PasswordHash, newPassword))
	assert.Error(t, hasher.Compare(updated.PasswordHash, "sudsandwater"))
}

func TestUpdateUserPartial(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		Name:     "Anna",
		Surname:  "Koleva",
		Email:    "anna@wash.test",
		Phone:    "+35921234567",
		Role:     model.UserRoleEmployee,
		Password: "sudsandwater",
	})
	require.NoError(t, err)

	role := model.UserRoleAdmin
	updated, err := svc.UpdateUser(context.Background(), created.ID, &model.UpdateUserRequest{Role: &role})
	require.NoError(t, err)

	assert.Equal(t, model.UserRoleAdmin, updated.Role)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "+35921234567", updated.Phone)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
}
