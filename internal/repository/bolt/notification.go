package bolt

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type notificationRepository struct {
	notifications collection[model.Notification]
}

func NewNotificationRepository(store *Store) repository.NotificationRepository {
	return &notificationRepository{
		notifications: newCollection[model.Notification](store.db, "notifications"),
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	notification.CreatedAt = time.Now()
	notification.UpdatedAt = time.Now()
	return r.notifications.put(notification.ID, notification)
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return r.notifications.get(id)
}

func (r *notificationRepository) List(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, error) {
	notifications, err := r.notifications.list(func(n *model.Notification) bool {
		if filters == nil {
			return true
		}
		if filters.UserID != uuid.Nil && n.UserID != filters.UserID {
			return false
		}
		if filters.Unread != nil && *filters.Unread && n.Read {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	notification, err := r.notifications.get(id)
	if err != nil {
		return err
	}
	notification.Read = true
	notification.UpdatedAt = time.Now()
	return r.notifications.update(id, notification)
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.notifications.delete(id)
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.notifications.deleteWhere(func(n *model.Notification) bool {
		return n.Read && n.CreatedAt.Before(cutoff)
	})
}
