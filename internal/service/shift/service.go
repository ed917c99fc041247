package shift

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/service/notification"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type Service struct {
	repo     repository.ShiftRepository
	userRepo repository.UserRepository
	notifSvc *notification.Service
}

func NewService(repo repository.ShiftRepository, userRepo repository.UserRepository, notifSvc *notification.Service) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		notifSvc: notifSvc,
	}
}

func (s *Service) CreateShift(ctx context.Context, req *model.CreateShiftRequest) (*model.Shift, error) {
	if _, err := s.userRepo.Get(ctx, req.UserID); err != nil {
		return nil, err
	}

	shift := &model.Shift{
		UserID:    req.UserID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    model.ShiftStatusScheduled,
		Earnings:  req.Earnings,
	}
	shift.ID = uuid.New()

	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	s.notifSvc.Notify(ctx, shift.UserID, model.NotificationTypeShiftAssigned,
		fmt.Sprintf("You have a shift on %s starting at %s", shift.Date, shift.StartTime))

	return shift, nil
}

func (s *Service) GetShift(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateShift(ctx context.Context, id uuid.UUID, req *model.UpdateShiftRequest) (*model.Shift, error) {
	shift, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		shift.Date = *req.Date
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = req.EndTime
	}
	if req.Earnings != nil {
		shift.Earnings = *req.Earnings
	}

	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return shift, nil
}

// UpdateStatus applies a status change after checking it against the
// allowed transitions.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next model.ShiftStatus) (*model.Shift, error) {
	if !next.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown shift status %q", next), nil)
	}

	shift, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !shift.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot change shift status from %s to %s", shift.Status, next), nil)
	}

	shift.Status = next
	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("failed to update shift status: %w", err)
	}
	return shift, nil
}

func (s *Service) DeleteShift(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListShifts(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error) {
	shifts, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	return shifts, nil
}
