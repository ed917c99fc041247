package bolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/washpoint/admin-api/internal/model"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "wash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestClientRoundtrip(t *testing.T) {
	repo := NewClientRepository(newStore(t))
	ctx := context.Background()

	client := &model.Client{Name: "Maria", Surname: "Ivanova", Phone: "+35921111111", Email: "maria@example.com"}
	client.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, client))
	assert.False(t, client.CreatedAt.IsZero())

	stored, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", stored.Name)
	assert.Equal(t, "+35921111111", stored.Phone)

	stored.Phone = "+35922222222"
	require.NoError(t, repo.Update(ctx, stored))

	updated, err := repo.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "+35922222222", updated.Phone)

	require.NoError(t, repo.Delete(ctx, client.ID))
	_, err = repo.Get(ctx, client.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMissingDocumentsReportNotFound(t *testing.T) {
	store := newStore(t)
	clients := NewClientRepository(store)
	ctx := context.Background()

	_, err := clients.Get(ctx, uuid.New())
	assert.True(t, apperrors.IsNotFound(err))

	ghost := &model.Client{Name: "Nobody"}
	ghost.ID = uuid.New()
	assert.True(t, apperrors.IsNotFound(clients.Update(ctx, ghost)))
	assert.True(t, apperrors.IsNotFound(clients.Delete(ctx, ghost.ID)))
}

func TestClientSearch(t *testing.T) {
	repo := NewClientRepository(newStore(t))
	ctx := context.Background()

	for _, c := range []*model.Client{
		{Name: "Georgi", Surname: "Dimitrov", Phone: "+35921000001"},
		{Name: "Elena", Surname: "Georgieva", Phone: "+35921000002"},
		{Name: "Petar", Surname: "Stoyanov", Phone: "+35921000003"},
	} {
		c.ID = uuid.New()
		require.NoError(t, repo.Create(ctx, c))
	}

	matches, err := repo.List(ctx, &model.ClientFilters{SearchTerm: "georgi"})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = repo.List(ctx, &model.ClientFilters{Phone: "+35921000003"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Petar", matches[0].Name)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// Deleting a client must leave its vehicles and appointments in place;
// history stays reconstructable after the client record is gone.
func TestClientDeleteDoesNotCascade(t *testing.T) {
	store := newStore(t)
	clients := NewClientRepository(store)
	vehicles := NewVehicleRepository(store)
	appointments := NewAppointmentRepository(store)
	ctx := context.Background()

	client := &model.Client{Name: "Maria", Phone: "+35921111111"}
	client.ID = uuid.New()
	require.NoError(t, clients.Create(ctx, client))

	vehicle := &model.Vehicle{ClientID: client.ID, Make: "Skoda", Model: "Octavia", LicensePlate: "CB5678AK"}
	vehicle.ID = uuid.New()
	require.NoError(t, vehicles.Create(ctx, vehicle))

	appt := &model.Appointment{
		ClientID:   client.ID,
		VehicleID:  vehicle.ID,
		Date:       "2024-05-01",
		StartTime:  "09:00",
		Status:     model.AppointmentStatusCompleted,
		TotalPrice: 40,
	}
	appt.ID = uuid.New()
	require.NoError(t, appointments.Create(ctx, appt, nil))

	require.NoError(t, clients.Delete(ctx, client.ID))

	_, err := clients.Get(ctx, client.ID)
	assert.True(t, apperrors.IsNotFound(err))

	orphanVehicle, err := vehicles.Get(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, orphanVehicle.ClientID)

	orphanAppt, err := appointments.Get(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, orphanAppt.ClientID)

	byClient, err := vehicles.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 1)
}

func TestAppointmentListFiltersAndOrder(t *testing.T) {
	repo := NewAppointmentRepository(newStore(t))
	ctx := context.Background()

	employee := uuid.New()
	seed := func(date, start string, status model.AppointmentStatus, userID *uuid.UUID) {
		appt := &model.Appointment{
			ClientID:  uuid.New(),
			VehicleID: uuid.New(),
			UserID:    userID,
			Date:      date,
			StartTime: start,
			Status:    status,
		}
		appt.ID = uuid.New()
		require.NoError(t, repo.Create(ctx, appt, nil))
	}

	seed("2024-05-02", "09:00", model.AppointmentStatusScheduled, nil)
	seed("2024-05-01", "14:00", model.AppointmentStatusCompleted, &employee)
	seed("2024-05-01", "08:30", model.AppointmentStatusCompleted, nil)
	seed("2024-05-03", "10:00", model.AppointmentStatusCancelled, &employee)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2024-05-01", all[0].Date)
	assert.Equal(t, "08:30", all[0].StartTime)
	assert.Equal(t, "14:00", all[1].StartTime)
	assert.Equal(t, "2024-05-03", all[3].Date)

	completed, err := repo.List(ctx, &model.AppointmentFilters{Status: model.AppointmentStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	ranged, err := repo.List(ctx, &model.AppointmentFilters{StartDate: "2024-05-02", EndDate: "2024-05-03"})
	require.NoError(t, err)
	assert.Len(t, ranged, 2)

	mine, err := repo.List(ctx, &model.AppointmentFilters{UserID: employee})
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestServiceGetByIDs(t *testing.T) {
	repo := NewServiceRepository(newStore(t))
	ctx := context.Background()

	a := &model.Service{Name: "Wash", Price: 20, DurationMinutes: 30, Active: true}
	a.ID = uuid.New()
	b := &model.Service{Name: "Wax", Price: 35, DurationMinutes: 45, Active: true}
	b.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	services, err := repo.GetByIDs(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Wash", services[0].Name)

	services, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestVehicleFilters(t *testing.T) {
	repo := NewVehicleRepository(newStore(t))
	ctx := context.Background()

	owner := uuid.New()
	first := &model.Vehicle{ClientID: owner, Make: "Toyota", Model: "Yaris", LicensePlate: "CA1234BH"}
	first.ID = uuid.New()
	second := &model.Vehicle{ClientID: uuid.New(), Make: "Honda", Model: "Civic", LicensePlate: "CB5678AK"}
	second.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	mine, err := repo.List(ctx, &model.VehicleFilters{ClientID: owner})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Toyota", mine[0].Make)

	// Plate lookup ignores case.
	byPlate, err := repo.List(ctx, &model.VehicleFilters{LicensePlate: "cb5678ak"})
	require.NoError(t, err)
	require.Len(t, byPlate, 1)
	assert.Equal(t, "Honda", byPlate[0].Make)

	bySearch, err := repo.List(ctx, &model.VehicleFilters{SearchTerm: "civ"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 1)
}

func TestShiftListOrdersByDateAndStart(t *testing.T) {
	repo := NewShiftRepository(newStore(t))
	ctx := context.Background()

	employee := uuid.New()
	seed := func(date, start string, status model.ShiftStatus) {
		shift := &model.Shift{UserID: employee, Date: date, StartTime: start, Status: status}
		shift.ID = uuid.New()
		require.NoError(t, repo.Create(ctx, shift))
	}

	seed("2024-05-02", "08:00", model.ShiftStatusScheduled)
	seed("2024-05-01", "16:00", model.ShiftStatusCompleted)
	seed("2024-05-01", "08:00", model.ShiftStatusCompleted)

	shifts, err := repo.List(ctx, &model.ShiftFilters{UserID: employee})
	require.NoError(t, err)
	require.Len(t, shifts, 3)
	assert.Equal(t, "2024-05-01", shifts[0].Date)
	assert.Equal(t, "08:00", shifts[0].StartTime)
	assert.Equal(t, "16:00", shifts[1].StartTime)

	completed, err := repo.List(ctx, &model.ShiftFilters{Status: model.ShiftStatusCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestUserGetByEmail(t *testing.T) {
	repo := NewUserRepository(newStore(t))
	ctx := context.Background()

	user := &model.User{Name: "Anna", Email: "Anna@wash.test", Role: model.UserRoleEmployee}
	user.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.GetByEmail(ctx, "anna@wash.test")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "missing@wash.test")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestNotificationCleanupKeepsUnread(t *testing.T) {
	repo := NewNotificationRepository(newStore(t))
	ctx := context.Background()

	read := &model.Notification{UserID: uuid.New(), Type: model.NotificationTypeSystem, Message: "old news"}
	read.ID = uuid.New()
	unread := &model.Notification{UserID: uuid.New(), Type: model.NotificationTypeSystem, Message: "still pending"}
	unread.ID = uuid.New()
	require.NoError(t, repo.Create(ctx, read))
	require.NoError(t, repo.Create(ctx, unread))
	require.NoError(t, repo.MarkRead(ctx, read.ID))

	// Nothing predates a cutoff in the past.
	removed, err := repo.DeleteReadBefore(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = repo.DeleteReadBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, unread.ID, remaining[0].ID)
}
