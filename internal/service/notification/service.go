package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/washpoint/admin-api/internal/email"
	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

const emailSubject = "Washpoint update"

type Service struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	emailSvc email.Service
	logger   *zerolog.Logger
}

func NewService(repo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc email.Service, logger *zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		emailSvc: emailSvc,
		logger:   logger,
	}
}

// Notify writes an inbox entry for the user and mirrors it by email when a
// sender is configured. Delivery problems are logged and swallowed; the
// triggering operation must never fail because of them.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, notifType, message string) {
	notification := &model.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
	}
	notification.ID = uuid.New()

	if err := s.repo.Create(ctx, notification); err != nil {
		s.logger.Error().Err(err).
			Str("user_id", userID.String()).
			Str("type", notifType).
			Msg("failed to store notification")
		return
	}

	if s.emailSvc == nil {
		return
	}

	go func() {
		user, err := s.userRepo.Get(context.Background(), userID)
		if err != nil || user.Email == "" {
			return
		}
		if err := s.emailSvc.SendCustom(context.Background(), user.Email, emailSubject, message); err != nil {
			s.logger.Warn().Err(err).
				Str("user_id", userID.String()).
				Msg("failed to send notification email")
		}
	}()
}

func (s *Service) CreateNotification(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	if _, err := s.userRepo.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		UserID:  req.UserID,
		Type:    req.Type,
		Message: req.Message,
	}
	notification.ID = uuid.New()

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

func (s *Service) ListNotifications(ctx context.Context, filters *model.NotificationFilters) ([]*model.Notification, error) {
	notifications, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
