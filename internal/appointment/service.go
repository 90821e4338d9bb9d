package appointment

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/martosdev/barbershop-backend/internal/barber"
	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	"github.com/martosdev/barbershop-backend/internal/schedule"
	"github.com/martosdev/barbershop-backend/internal/servicetype"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

type CreateRequest struct {
	BarberID      string
	ServiceTypeID string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Comments      string
	WorkDate      string
	StartMinute   timeslot.TimeOfDay
}

type RescheduleRequest struct {
	WorkDate    string
	StartMinute timeslot.TimeOfDay
}

// BarberAvailability is one barber's bookable day: the working window, every
// free slot start at the fixed granularity, and the ranges already taken.
type BarberAvailability struct {
	BarberID   string
	BarberName string
	WorkDate   string
	Window     timeslot.Window
	Slots      []timeslot.TimeOfDay
	Occupied   []timeslot.Interval
}

// ScheduleResolver is the slice of the schedule service this package needs:
// turning a barber and a date into a working window.
type ScheduleResolver interface {
	ResolveWindow(ctx context.Context, barberID, workDate string) (*schedule.Schedule, error)
}

// ServiceTypeCatalog looks up the service being booked.
type ServiceTypeCatalog interface {
	GetByID(ctx context.Context, id string) (*servicetype.ServiceType, error)
}

// BarberRoster exposes the shop's barbers for availability and booking.
type BarberRoster interface {
	GetByID(ctx context.Context, id string) (*barber.Barber, error)
	List(ctx context.Context, filter barber.Filter) ([]*barber.Barber, int, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	// ListForDay is the unpaginated day sheet for one barber, every status,
	// ordered by start time.
	ListForDay(ctx context.Context, barberID, workDate string) ([]*Appointment, error)

	// Reschedule moves an active appointment to a new date or start time.
	// The appointment's own slot is not counted as busy, so shifting a
	// booking a few minutes within its current range works.
	Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error)
	Confirm(ctx context.Context, id string) (*Appointment, error)
	Cancel(ctx context.Context, id string) (*Appointment, error)
	Complete(ctx context.Context, id string) (*Appointment, error)

	// Availability returns the free slots for one barber on one date, or
	// schedule.ErrNoSchedule when the barber is not working that day.
	Availability(ctx context.Context, barberID, workDate string) (*BarberAvailability, error)
	// DayAvailability returns the free slots of every active barber working
	// on the date. Barbers with no schedule for the day are omitted.
	DayAvailability(ctx context.Context, workDate string) ([]*BarberAvailability, error)
}

type service struct {
	repo         Repository
	schedules    ScheduleResolver
	serviceTypes ServiceTypeCatalog
	barbers      BarberRoster
}

func NewService(repo Repository, schedules ScheduleResolver, serviceTypes ServiceTypeCatalog, barbers BarberRoster) Service {
	return &service{
		repo:         repo,
		schedules:    schedules,
		serviceTypes: serviceTypes,
		barbers:      barbers,
	}
}

// occupiedFor collects the busy intervals of a barber-day, merged and with
// any stored overlap logged. Overlapping active rows should be impossible;
// merging keeps availability conservative while the data is repaired.
func (s *service) occupiedFor(ctx context.Context, barberID, workDate, excludeID string) ([]timeslot.Interval, error) {
	appointments, err := s.repo.ListForDay(ctx, barberID, workDate)
	if err != nil {
		return nil, err
	}

	occupied, conflict := timeslot.NormalizeIntervals(BuildOccupied(appointments, excludeID))
	if conflict {
		log.Printf("overlapping active appointments for barber %s on %s", barberID, workDate)
	}
	return occupied, nil
}

// placementError converts a fit-check failure into an HTTP-mapped error.
// A collision is a conflict; starting outside the window is a bad request.
func placementError(err error) error {
	var taken *timeslot.TakenError
	if errors.As(err, &taken) {
		return apperror.New(http.StatusConflict, err.Error())
	}
	return apperror.New(http.StatusBadRequest, err.Error())
}

func validateStart(start timeslot.TimeOfDay) error {
	if !start.Valid() {
		return ErrInvalidStart
	}
	if int(start)%timeslot.Granularity != 0 {
		return ErrUnalignedStart
	}
	return nil
}

// checkPlacement resolves the barber's window for the date and runs the
// authoritative fit check against the day's busy intervals.
func (s *service) checkPlacement(ctx context.Context, barberID, workDate string, start timeslot.TimeOfDay, durationMinutes int, excludeID string) error {
	sched, err := s.schedules.ResolveWindow(ctx, barberID, workDate)
	if err != nil {
		return err
	}

	occupied, err := s.occupiedFor(ctx, barberID, workDate, excludeID)
	if err != nil {
		return err
	}

	if err := timeslot.CanPlace(start, durationMinutes, sched.Window(), occupied); err != nil {
		return placementError(err)
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrCustomerRequired
	}
	if err := validateStart(req.StartMinute); err != nil {
		return nil, err
	}

	if err := s.requireActiveBarber(ctx, req.BarberID); err != nil {
		return nil, err
	}

	st, err := s.serviceTypes.GetByID(ctx, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, servicetype.ErrNotFound) {
			return nil, ErrServiceTypeNotFound
		}
		return nil, err
	}

	if err := s.checkPlacement(ctx, req.BarberID, req.WorkDate, req.StartMinute, st.DurationMinutes, ""); err != nil {
		return nil, err
	}

	a := &Appointment{
		BarberID:        req.BarberID,
		ServiceTypeID:   st.ID,
		ServiceName:     st.Name,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		Comments:        strings.TrimSpace(req.Comments),
		WorkDate:        req.WorkDate,
		StartMinute:     req.StartMinute,
		DurationMinutes: st.DurationMinutes,
		Price:           st.Price,
		Status:          StatusPending,
	}

	// The unique constraint is the last line of defence against a race
	// between the check above and this insert.
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListForDay(ctx context.Context, barberID, workDate string) ([]*Appointment, error) {
	return s.repo.ListForDay(ctx, barberID, workDate)
}

func (s *service) Reschedule(ctx context.Context, id string, req RescheduleRequest) (*Appointment, error) {
	if err := validateStart(req.StartMinute); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, ErrAlreadyClosed
	}

	if err := s.checkPlacement(ctx, a.BarberID, req.WorkDate, req.StartMinute, a.DurationMinutes, a.ID); err != nil {
		return nil, err
	}

	a.WorkDate = req.WorkDate
	a.StartMinute = req.StartMinute

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != StatusPending {
		return nil, ErrNotPending
	}

	a.Status = StatusConfirmed
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Appointment, error) {
	return s.close(ctx, id, StatusCancelled)
}

func (s *service) Complete(ctx context.Context, id string) (*Appointment, error) {
	return s.close(ctx, id, StatusCompleted)
}

// close moves an active appointment to a terminal status, freeing its slot.
func (s *service) close(ctx context.Context, id string, to Status) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status.Terminal() {
		return nil, ErrAlreadyClosed
	}

	a.Status = to
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// requireActiveBarber rejects bookings against barbers that are gone or
// deactivated. Their historical appointments stay readable.
func (s *service) requireActiveBarber(ctx context.Context, barberID string) error {
	b, err := s.barbers.GetByID(ctx, barberID)
	if err != nil {
		if errors.Is(err, barber.ErrNotFound) {
			return ErrBarberNotFound
		}
		return err
	}
	if !b.IsActive {
		return ErrBarberInactive
	}
	return nil
}

func (s *service) Availability(ctx context.Context, barberID, workDate string) (*BarberAvailability, error) {
	if err := s.requireActiveBarber(ctx, barberID); err != nil {
		return nil, err
	}

	sched, err := s.schedules.ResolveWindow(ctx, barberID, workDate)
	if err != nil {
		return nil, err
	}

	occupied, err := s.occupiedFor(ctx, barberID, workDate, "")
	if err != nil {
		return nil, err
	}

	w := sched.Window()
	return &BarberAvailability{
		BarberID:   sched.BarberID,
		BarberName: sched.BarberName,
		WorkDate:   workDate,
		Window:     w,
		Slots:      timeslot.AvailableSlots(w, occupied),
		Occupied:   occupied,
	}, nil
}

func (s *service) DayAvailability(ctx context.Context, workDate string) ([]*BarberAvailability, error) {
	barbers, _, err := s.barbers.List(ctx, barber.Filter{ActiveOnly: true, Page: 1, PageSize: allBarbersPageSize})
	if err != nil {
		return nil, err
	}

	availabilities := make([]*BarberAvailability, 0, len(barbers))
	for _, b := range barbers {
		av, err := s.Availability(ctx, b.ID, workDate)
		if err != nil {
			if errors.Is(err, schedule.ErrNoSchedule) || errors.Is(err, ErrBarberInactive) {
				continue
			}
			return nil, err
		}
		availabilities = append(availabilities, av)
	}
	return availabilities, nil
}

// A single-shop roster comfortably fits one page.
const allBarbersPageSize = 200
