package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
)

// All repository interfaces in one file
type (
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	}

	ClientRepository interface {
		Create(ctx context.Context, client *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		Update(ctx context.Context, client *model.Client) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ClientFilters) ([]*model.Client, error)
	}

	VehicleRepository interface {
		Create(ctx context.Context, vehicle *model.Vehicle) error
		Get(ctx context.Context, id uuid.UUID) (*model.Vehicle, error)
		Update(ctx context.Context, vehicle *model.Vehicle) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.VehicleFilters) ([]*model.Vehicle, error)
		ListByClient(ctx context.Context, clientID uuid.UUID) ([]*model.Vehicle, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, service *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Service, error)
		Update(ctx context.Context, service *model.Service) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ServiceFilters) ([]*model.Service, error)
	}

	ShiftRepository interface {
		Create(ctx context.Context, shift *model.Shift) error
		Get(ctx context.Context, id uuid.UUID) (*model.Shift, error)
		Update(ctx context.Context, shift *model.Shift) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment, services []*model.AppointmentService) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
		ListServices(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentService, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id uuid.UUID) (*model.Notification, error)
		List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, error)
		MarkRead(ctx context.Context, id uuid.UUID) error
		Delete(ctx context.Context, id uuid.UUID) error
		DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	}

	// OutboxRepository is backed by postgres only; with the bolt backend the
	// event service publishes straight to the broker instead.
	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		BeginTx(ctx context.Context) (*sql.Tx, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status model.OutboxStatus, errorMessage *string, retryAt *time.Time) error
		MoveToDeadLetter(ctx context.Context, tx *sql.Tx, event *model.OutboxEvent) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
