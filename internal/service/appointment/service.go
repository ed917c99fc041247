package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
	"github.com/washpoint/admin-api/internal/service/notification"
	apperrors "github.com/washpoint/admin-api/pkg/errors"
)

type Service struct {
	repo        repository.AppointmentRepository
	clientRepo  repository.ClientRepository
	vehicleRepo repository.VehicleRepository
	serviceRepo repository.ServiceRepository
	notifSvc    *notification.Service
}

func NewService(
	repo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	serviceRepo repository.ServiceRepository,
	notifSvc *notification.Service,
) *Service {
	return &Service{
		repo:        repo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		serviceRepo: serviceRepo,
		notifSvc:    notifSvc,
	}
}

// CreateAppointment books a wash. Service prices are snapshotted into line
// items at this moment; later catalog price changes never touch an existing
// booking. The end time is derived from the combined service durations.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.clientRepo.Get(ctx, req.ClientID); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.Get(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.ClientID != req.ClientID {
		return nil, apperrors.BadRequest("vehicle does not belong to client", nil)
	}

	services, err := s.serviceRepo.GetByIDs(ctx, req.ServiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve services: %w", err)
	}
	if len(services) != len(req.ServiceIDs) {
		return nil, apperrors.BadRequest("one or more services do not exist", nil)
	}

	var totalPrice float64
	var totalMinutes int
	for _, svc := range services {
		if !svc.Active {
			return nil, apperrors.BadRequest(fmt.Sprintf("service %s is not active", svc.Name), nil)
		}
		totalPrice += svc.Price
		totalMinutes += svc.DurationMinutes
	}

	appointment := &model.Appointment{
		ClientID:   req.ClientID,
		VehicleID:  req.VehicleID,
		UserID:     req.UserID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    computeEndTime(req.StartTime, totalMinutes),
		Status:     model.AppointmentStatusScheduled,
		TotalPrice: totalPrice,
		Notes:      req.Notes,
	}
	appointment.ID = uuid.New()

	lineItems := make([]*model.AppointmentService, 0, len(services))
	for _, svc := range services {
		lineItems = append(lineItems, &model.AppointmentService{
			ID:            uuid.New(),
			AppointmentID: appointment.ID,
			ServiceID:     svc.ID,
			Price:         svc.Price,
		})
	}

	if err := s.repo.Create(ctx, appointment, lineItems); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if appointment.UserID != nil {
		s.notifSvc.Notify(ctx, *appointment.UserID, model.NotificationTypeAppointmentAssigned,
			fmt.Sprintf("New appointment on %s at %s", appointment.Date, appointment.StartTime))
	}

	return appointment, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if appointment.Status.Terminal() {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot modify a %s appointment", appointment.Status), nil)
	}

	previousAssignee := appointment.UserID

	if req.VehicleID != nil {
		vehicle, err := s.vehicleRepo.Get(ctx, *req.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.ClientID != appointment.ClientID {
			return nil, apperrors.BadRequest("vehicle does not belong to client", nil)
		}
		appointment.VehicleID = *req.VehicleID
	}
	if req.UserID != nil {
		appointment.UserID = req.UserID
	}
	if req.Date != nil {
		appointment.Date = *req.Date
	}
	if req.StartTime != nil {
		appointment.StartTime = *req.StartTime
		appointment.EndTime = computeEndTime(*req.StartTime, s.bookedMinutes(ctx, appointment.ID))
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if appointment.UserID != nil && (previousAssignee == nil || *previousAssignee != *appointment.UserID) {
		s.notifSvc.Notify(ctx, *appointment.UserID, model.NotificationTypeAppointmentAssigned,
			fmt.Sprintf("Appointment on %s at %s was assigned to you", appointment.Date, appointment.StartTime))
	}

	return appointment, nil
}

// UpdateStatus applies a status change after checking it against the
// allowed transitions.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next model.AppointmentStatus) (*model.Appointment, error) {
	if !next.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("unknown appointment status %q", next), nil)
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appointment.Status.CanTransitionTo(next) {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot change appointment status from %s to %s", appointment.Status, next), nil)
	}

	appointment.Status = next
	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	if appointment.UserID != nil {
		s.notifSvc.Notify(ctx, *appointment.UserID, model.NotificationTypeAppointmentStatus,
			fmt.Sprintf("Appointment on %s at %s is now %s", appointment.Date, appointment.StartTime, next))
	}

	return appointment, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (s *Service) ListAppointmentServices(ctx context.Context, id uuid.UUID) ([]*model.AppointmentService, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListServices(ctx, id)
}

// bookedMinutes re-derives the duration from the snapshotted line items.
func (s *Service) bookedMinutes(ctx context.Context, id uuid.UUID) int {
	items, err := s.repo.ListServices(ctx, id)
	if err != nil {
		return 0
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ServiceID)
	}
	services, err := s.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		return 0
	}

	var minutes int
	for _, svc := range services {
		minutes += svc.DurationMinutes
	}
	return minutes
}

// computeEndTime adds the combined duration to an HH:MM start. A zero
// duration leaves the end open.
func computeEndTime(startTime string, minutes int) *string {
	if minutes <= 0 {
		return nil
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return nil
	}
	end := start.Add(time.Duration(minutes) * time.Minute).Format("15:04")
	return &end
}
