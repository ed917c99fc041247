package bolt

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/washpoint/admin-api/internal/model"
	"github.com/washpoint/admin-api/internal/repository"
)

type shiftRepository struct {
	shifts collection[model.Shift]
}

func NewShiftRepository(store *Store) repository.ShiftRepository {
	return &shiftRepository{shifts: newCollection[model.Shift](store.db, "shifts")}
}

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	shift.CreatedAt = time.Now()
	shift.UpdatedAt = time.Now()
	return r.shifts.put(shift.ID, shift)
}

func (r *shiftRepository) Get(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	return r.shifts.get(id)
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	shift.UpdatedAt = time.Now()
	return r.shifts.update(shift.ID, shift)
}

func (r *shiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.shifts.delete(id)
}

func (r *shiftRepository) List(ctx context.Context, filters *model.ShiftFilters) ([]*model.Shift, error) {
	shifts, err := r.shifts.list(func(s *model.Shift) bool {
		if filters == nil {
			return true
		}
		if filters.UserID != uuid.Nil && s.UserID != filters.UserID {
			return false
		}
		if filters.Status != "" && s.Status != filters.Status {
			return false
		}
		if filters.StartDate != "" && s.Date < filters.StartDate {
			return false
		}
		if filters.EndDate != "" && s.Date > filters.EndDate {
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})
	return shifts, nil
}
