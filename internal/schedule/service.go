package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/martosdev/barbershop-backend/internal/barber"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

type CreateRequest struct {
	BarberID    string
	WorkDate    string
	EntryMinute timeslot.TimeOfDay
	ExitMinute  timeslot.TimeOfDay
}

type UpdateRequest struct {
	EntryMinute *timeslot.TimeOfDay
	ExitMinute  *timeslot.TimeOfDay
	IsActive    *bool
}

// BarberDirectory is the slice of the barber service this package needs.
type BarberDirectory interface {
	GetByID(ctx context.Context, id string) (*barber.Barber, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Schedule, error)
	GetByID(ctx context.Context, id string) (*Schedule, error)
	List(ctx context.Context, filter Filter) ([]*Schedule, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Schedule, error)
	Delete(ctx context.Context, id string) error

	// ResolveWindow is the working-window contract consumed by the
	// appointment module: the barber's active schedule for the date, or
	// ErrNoSchedule when the barber is simply not working that day.
	ResolveWindow(ctx context.Context, barberID, workDate string) (*Schedule, error)
}

type service struct {
	repo    Repository
	barbers BarberDirectory
}

func NewService(repo Repository, barbers BarberDirectory) Service {
	return &service{
		repo:    repo,
		barbers: barbers,
	}
}

// validateWindow applies the window invariants: entry inside the day, exit
// either the midnight sentinel or after entry.
func validateWindow(entry, exit timeslot.TimeOfDay) error {
	if !entry.Valid() {
		return ErrEntryOutOfDay
	}
	if !exit.Valid() {
		return ErrInvalidWindow
	}
	w := timeslot.Window{Entry: entry, Exit: exit}
	if w.Empty() {
		return ErrInvalidWindow.WithMessage(fmt.Sprintf(
			"entry time %s must be before the exit time %s",
			entry.Format12Hour(), w.EffectiveExit().Format12Hour(),
		))
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Schedule, error) {
	if err := validateWindow(req.EntryMinute, req.ExitMinute); err != nil {
		return nil, err
	}

	if _, err := s.barbers.GetByID(ctx, req.BarberID); err != nil {
		if errors.Is(err, barber.ErrNotFound) {
			return nil, ErrBarberNotFound
		}
		return nil, err
	}

	sched := &Schedule{
		BarberID:    req.BarberID,
		WorkDate:    req.WorkDate,
		EntryMinute: req.EntryMinute,
		ExitMinute:  req.ExitMinute,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Schedule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Schedule, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Schedule, error) {
	sched, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := sched.EntryMinute
	exit := sched.ExitMinute
	if req.EntryMinute != nil {
		entry = *req.EntryMinute
	}
	if req.ExitMinute != nil {
		exit = *req.ExitMinute
	}
	if err := validateWindow(entry, exit); err != nil {
		return nil, err
	}
	sched.EntryMinute = entry
	sched.ExitMinute = exit

	if req.IsActive != nil {
		sched.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, sched); err != nil {
		return nil, err
	}
	return sched, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ResolveWindow(ctx context.Context, barberID, workDate string) (*Schedule, error) {
	return s.repo.GetActive(ctx, barberID, workDate)
}
