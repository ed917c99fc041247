package shift

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/repository/bolt"
	"github.com/washpoint/admin-api/internal/service/notification"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type fixture struct {
	svc           *Service
	users         repository.UserRepository
	notifications repository.NotificationRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := bolt.Open(filepath.Join(t.TempDir(), "shifts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	shifts := bolt.NewShiftRepository(store)
	users := bolt.NewUserRepository(store)
	notifications := bolt.NewNotificationRepository(store)

	logger := zerolog.Nop()
	notifSvc := notification.NewService(notifications, users, nil, &logger)

	return &fixture{
		svc:           NewService(shifts, users, notifSvc),
		users:         users,
		notifications: notifications,
	}
}

func (f *fixture) seedEmployee(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{Name: "Carl", Email: "carl@wash.test", Role: model.UserRoleEmployee}
	user.ID = uuid.New()
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func TestCreateShiftNotifiesEmployee(t *testing.T) {
	f := newFixture(t)
	employee := f.seedEmployee(t)

	shift, err := f.svc.CreateShift(context.Background(), &model.CreateShiftRequest{
		UserID:    employee.ID,
		Date:      "2024-06-01",
		StartTime: "08:00",
		Earnings:  90,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusScheduled, shift.Status)
	assert.Equal(t, 90.0, shift.Earnings)

	inbox, err := f.notifications.List(context.Background(), &model.NotificationFilters{UserID: employee.ID})
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, model.NotificationTypeShiftAssigned, inbox[0].Type)
	assert.Contains(t, inbox[0].Message, "2024-06-01")
}

func TestCreateShiftUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateShift(context.Background(), &model.CreateShiftRequest{
		UserID:    uuid.New(),
		Date:      "2024-06-01",
		StartTime: "08:00",
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestShiftStatusTransitions(t *testing.T) {
	f := newFixture(t)
	employee := f.seedEmployee(t)

	shift, err := f.svc.CreateShift(context.Background(), &model.CreateShiftRequest{
		UserID:    employee.ID,
		Date:      "2024-06-01",
		StartTime: "08:00",
	})
	require.NoError(t, err)

	active, err := f.svc.UpdateStatus(context.Background(), shift.ID, model.ShiftStatusActive)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusActive, active.Status)

	done, err := f.svc.UpdateStatus(context.Background(), shift.ID, model.ShiftStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, done.Status)

	// Completed is terminal.
	_, err = f.svc.UpdateStatus(context.Background(), shift.ID, model.ShiftStatusActive)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.FromError(err).Code)
	assert.Contains(t, err.Error(), "cannot change shift status from completed to active")

	_, err = f.svc.UpdateStatus(context.Background(), shift.ID, "paused")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.FromError(err).Code)
}

func TestUpdateShiftEarnings(t *testing.T) {
	f := newFixture(t)
	employee := f.seedEmployee(t)

	shift, err := f.svc.CreateShift(context.Background(), &model.CreateShiftRequest{
		UserID:    employee.ID,
		Date:      "2024-06-01",
		StartTime: "08:00",
		Earnings:  90,
	})
	require.NoError(t, err)

	earnings := 120.5
	end := "16:30"
	updated, err := f.svc.UpdateShift(context.Background(), shift.ID, &model.UpdateShiftRequest{
		Earnings: &earnings,
		EndTime:  &end,
	})
	require.NoError(t, err)
	assert.Equal(t, 120.5, updated.Earnings)
	require.NotNil(t, updated.EndTime)
	assert.Equal(t, "16:30", *updated.EndTime)

	stored, err := f.svc.GetShift(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.5, stored.Earnings)
}
