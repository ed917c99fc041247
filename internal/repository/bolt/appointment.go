package bolt

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type appointmentRepository struct {
	appointments collection[model.Appointment]
	services     collection[model.AppointmentService]
}

func NewAppointmentRepository(store *Store) repository.AppointmentRepository {
	return &appointmentRepository{
		appointments: newCollection[model.Appointment](store.db, "appointments"),
		services:     newCollection[model.AppointmentService](store.db, "appointment_services"),
	}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment, services []*model.AppointmentService) error {
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	if err := r.appointments.put(appointment.ID, appointment); err != nil {
		return err
	}
	for _, svc := range services {
		if err := r.services.put(svc.ID, svc); err != nil {
			return err
		}
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return r.appointments.get(id)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	appointment.UpdatedAt = time.Now()
	return r.appointments.update(appointment.ID, appointment)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.appointments.delete(id); err != nil {
		return err
	}
	_, err := r.services.deleteWhere(func(s *model.AppointmentService) bool {
		return s.AppointmentID == id
	})
	return err
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := r.appointments.list(func(a *model.Appointment) bool {
		if filters == nil {
			return true
		}
		if filters.ClientID != uuid.Nil && a.ClientID != filters.ClientID {
			return false
		}
		if filters.VehicleID != uuid.Nil && a.VehicleID != filters.VehicleID {
			return false
		}
		if filters.UserID != uuid.Nil && (a.UserID == nil || *a.UserID != filters.UserID) {
			return false
		}
		if filters.Status != "" && a.Status != filters.Status {
			return false
		}
		if filters.StartDate != "" && a.Date < filters.StartDate {
			return false
		}
		if filters.EndDate != "" && a.Date > filters.EndDate {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date < appointments[j].Date
		}
		return appointments[i].StartTime < appointments[j].StartTime
	})
	return appointments, nil
}

func (r *appointmentRepository) ListServices(ctx context.Context, appointmentID uuid.UUID) ([]*model.AppointmentService, error) {
	return r.services.list(func(s *model.AppointmentService) bool {
		return s.AppointmentID == appointmentID
	})
}
