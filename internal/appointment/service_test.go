package appointment

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martosdev/barbershop-backend/internal/barber"
	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	"github.com/martosdev/barbershop-backend/internal/schedule"
	"github.com/martosdev/barbershop-backend/internal/servicetype"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

const (
	testBarberID    = "5f0c271e-0df6-4e73-9a14-52c41f8d9d10"
	retiredBarberID = "11d2a7b4-3e5c-48f0-9d6a-7b8c9d0e1f22"
	testServiceID   = "9a4f7c9e-64b8-4f05-8f2a-1f3cf17f4a21"
	testDate        = "2026-03-14"
)

type fakeRepo struct {
	appointments map[string]*Appointment
	seq          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[string]*Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, a *Appointment) error {
	r.seq++
	a.ID = fmt.Sprintf("appt-%d", r.seq)
	c := *a
	r.appointments[a.ID] = &c
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *fakeRepo) ListForDay(_ context.Context, barberID, workDate string) ([]*Appointment, error) {
	var out []*Appointment
	for _, a := range r.appointments {
		if a.BarberID == barberID && a.WorkDate == workDate {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Appointment, int, error) {
	var out []*Appointment
	for _, a := range r.appointments {
		c := *a
		out = append(out, &c)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := r.appointments[a.ID]; !ok {
		return ErrNotFound
	}
	c := *a
	r.appointments[a.ID] = &c
	return nil
}

// fakeSchedules maps "barberID|date" to a working window.
type fakeSchedules struct {
	windows map[string]timeslot.Window
}

func (f *fakeSchedules) ResolveWindow(_ context.Context, barberID, workDate string) (*schedule.Schedule, error) {
	w, ok := f.windows[barberID+"|"+workDate]
	if !ok {
		return nil, schedule.ErrNoSchedule
	}
	return &schedule.Schedule{
		BarberID:    barberID,
		BarberName:  "Papu",
		WorkDate:    workDate,
		EntryMinute: w.Entry,
		ExitMinute:  w.Exit,
		IsActive:    true,
	}, nil
}

type fakeCatalog struct {
	types map[string]*servicetype.ServiceType
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*servicetype.ServiceType, error) {
	st, ok := f.types[id]
	if !ok {
		return nil, servicetype.ErrNotFound
	}
	return st, nil
}

type fakeRoster struct {
	barbers []*barber.Barber
}

func (f *fakeRoster) GetByID(_ context.Context, id string) (*barber.Barber, error) {
	for _, b := range f.barbers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, barber.ErrNotFound
}

func (f *fakeRoster) List(_ context.Context, _ barber.Filter) ([]*barber.Barber, int, error) {
	return f.barbers, len(f.barbers), nil
}

// newTestService wires a service over one barber working 09:00-18:00 on
// testDate, offering a single 30-minute cut.
func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	schedules := &fakeSchedules{windows: map[string]timeslot.Window{
		testBarberID + "|" + testDate: {Entry: 540, Exit: 1080},
	}}
	catalog := &fakeCatalog{types: map[string]*servicetype.ServiceType{
		testServiceID: {ID: testServiceID, Name: "Classic Cut", DurationMinutes: 30, Price: 15},
	}}
	roster := &fakeRoster{barbers: []*barber.Barber{
		{ID: testBarberID, Name: "Papu", IsActive: true},
		{ID: retiredBarberID, Name: "Don Ramón", IsActive: false},
	}}

	return NewService(repo, schedules, catalog, roster), repo
}

func createAt(t *testing.T, svc Service, start timeslot.TimeOfDay) *Appointment {
	t.Helper()

	a, err := svc.Create(context.Background(), CreateRequest{
		BarberID:      testBarberID,
		ServiceTypeID: testServiceID,
		CustomerName:  "Carlos",
		WorkDate:      testDate,
		StartMinute:   start,
	})
	require.NoError(t, err)
	return a
}

func TestCreateHappyPath(t *testing.T) {
	svc, _ := newTestService(t)

	a := createAt(t, svc, 600)

	assert.Equal(t, StatusPending, a.Status)
	assert.Equal(t, 30, a.DurationMinutes)
	assert.Equal(t, 15.0, a.Price)
	assert.Equal(t, "Classic Cut", a.ServiceName)
	assert.Equal(t, timeslot.Interval{Start: 600, End: 630}, a.Interval())
}

func TestCreateCollisions(t *testing.T) {
	svc, _ := newTestService(t)
	createAt(t, svc, 600) // 10:00-10:30

	tests := []struct {
		name     string
		start    timeslot.TimeOfDay
		wantCode int
	}{
		{"same start", 600, http.StatusConflict},
		{"inside existing", 615, http.StatusConflict},
		{"overlapping tail", 585, http.StatusConflict},
		{"before opening", 535, http.StatusBadRequest},
		{"past closing", 1075, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateRequest{
				BarberID:      testBarberID,
				ServiceTypeID: testServiceID,
				CustomerName:  "Carlos",
				WorkDate:      testDate,
				StartMinute:   tt.start,
			})
			require.Error(t, err)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestCreateTouchingAppointmentAllowed(t *testing.T) {
	svc, _ := newTestService(t)
	createAt(t, svc, 600) // 10:00-10:30

	// A service may begin the minute the previous one ends.
	a := createAt(t, svc, 630)
	assert.Equal(t, timeslot.TimeOfDay(630), a.StartMinute)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{
		BarberID:      testBarberID,
		ServiceTypeID: testServiceID,
		CustomerName:  "  ",
		WorkDate:      testDate,
		StartMinute:   600,
	})
	assert.ErrorIs(t, err, ErrCustomerRequired)

	_, err = svc.Create(context.Background(), CreateRequest{
		BarberID:      testBarberID,
		ServiceTypeID: testServiceID,
		CustomerName:  "Carlos",
		WorkDate:      testDate,
		StartMinute:   602,
	})
	assert.ErrorIs(t, err, ErrUnalignedStart)

	_, err = svc.Create(context.Background(), CreateRequest{
		BarberID:      testBarberID,
		ServiceTypeID: "b3f9d3c2-8a50-4f5e-9b7c-2d1e4f6a8c00",
		CustomerName:  "Carlos",
		WorkDate:      testDate,
		StartMinute:   600,
	})
	assert.ErrorIs(t, err, ErrServiceTypeNotFound)

	_, err = svc.Create(context.Background(), CreateRequest{
		BarberID:      testBarberID,
		ServiceTypeID: testServiceID,
		CustomerName:  "Carlos",
		WorkDate:      "2026-03-15", // no schedule that day
		StartMinute:   600,
	})
	assert.ErrorIs(t, err, schedule.ErrNoSchedule)
}

func TestCreateRejectsInactiveOrUnknownBarber(t *testing.T) {
	svc, _ := newTestService(t)

	req := CreateRequest{
		BarberID:      retiredBarberID,
		ServiceTypeID: testServiceID,
		CustomerName:  "Carlos",
		WorkDate:      testDate,
		StartMinute:   600,
	}
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrBarberInactive)

	req.BarberID = "c2d4e6f8-1a3b-4c5d-8e9f-0a1b2c3d4e5f"
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestAvailabilityHidesActiveAppointments(t *testing.T) {
	svc, _ := newTestService(t)
	createAt(t, svc, 600) // 10:00-10:30

	av, err := svc.Availability(context.Background(), testBarberID, testDate)
	require.NoError(t, err)

	assert.NotContains(t, av.Slots, timeslot.TimeOfDay(600))
	assert.NotContains(t, av.Slots, timeslot.TimeOfDay(625))
	// 09:55 stays listed and the end minute is free again.
	assert.Contains(t, av.Slots, timeslot.TimeOfDay(595))
	assert.Contains(t, av.Slots, timeslot.TimeOfDay(630))
}

func TestCancelledAppointmentFreesItsSlot(t *testing.T) {
	svc, _ := newTestService(t)
	a := createAt(t, svc, 600)

	av, err := svc.Availability(context.Background(), testBarberID, testDate)
	require.NoError(t, err)
	assert.NotContains(t, av.Slots, timeslot.TimeOfDay(600))

	cancelled, err := svc.Cancel(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	av, err = svc.Availability(context.Background(), testBarberID, testDate)
	require.NoError(t, err)
	assert.Contains(t, av.Slots, timeslot.TimeOfDay(600))

	// The freed slot is immediately bookable again.
	createAt(t, svc, 600)
}

func TestRescheduleExcludesOwnSlot(t *testing.T) {
	svc, _ := newTestService(t)
	a := createAt(t, svc, 600) // 10:00-10:30

	// Shifting five minutes overlaps the appointment's current range; it
	// must not collide with itself.
	moved, err := svc.Reschedule(context.Background(), a.ID, RescheduleRequest{
		WorkDate:    testDate,
		StartMinute: 605,
	})
	require.NoError(t, err)
	assert.Equal(t, timeslot.TimeOfDay(605), moved.StartMinute)
}

func TestRescheduleStillCollidesWithOthers(t *testing.T) {
	svc, _ := newTestService(t)
	a := createAt(t, svc, 600)
	createAt(t, svc, 660) // 11:00-11:30

	_, err := svc.Reschedule(context.Background(), a.ID, RescheduleRequest{
		WorkDate:    testDate,
		StartMinute: 645, // would run 10:45-11:15
	})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestStatusTransitions(t *testing.T) {
	svc, _ := newTestService(t)

	a := createAt(t, svc, 600)
	confirmed, err := svc.Confirm(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, confirmed.Status)

	_, err = svc.Confirm(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrNotPending)

	done, err := svc.Complete(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, done.Status)

	_, err = svc.Cancel(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	_, err = svc.Reschedule(context.Background(), a.ID, RescheduleRequest{WorkDate: testDate, StartMinute: 700})
	assert.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestDayAvailabilitySkipsBarbersWithoutSchedule(t *testing.T) {
	repo := newFakeRepo()
	schedules := &fakeSchedules{windows: map[string]timeslot.Window{
		testBarberID + "|" + testDate: {Entry: 540, Exit: 1080},
	}}
	catalog := &fakeCatalog{types: map[string]*servicetype.ServiceType{}}
	roster := &fakeRoster{barbers: []*barber.Barber{
		{ID: testBarberID, Name: "Papu", IsActive: true},
		{ID: "c2d4e6f8-1a3b-4c5d-8e9f-0a1b2c3d4e5f", Name: "Día Libre", IsActive: true},
	}}
	svc := NewService(repo, schedules, catalog, roster)

	availabilities, err := svc.DayAvailability(context.Background(), testDate)
	require.NoError(t, err)
	require.Len(t, availabilities, 1)
	assert.Equal(t, testBarberID, availabilities[0].BarberID)
	assert.Len(t, availabilities[0].Slots, 108)
}

func TestBuildOccupied(t *testing.T) {
	appointments := []*Appointment{
		{ID: "1", StartMinute: 600, DurationMinutes: 30, Status: StatusPending},
		{ID: "2", StartMinute: 660, DurationMinutes: 45, Status: StatusConfirmed},
		{ID: "3", StartMinute: 720, DurationMinutes: 30, Status: StatusCancelled},
		{ID: "4", StartMinute: 780, DurationMinutes: 30, Status: StatusCompleted},
	}

	occupied := BuildOccupied(appointments, "")
	assert.Equal(t, []timeslot.Interval{
		{Start: 600, End: 630},
		{Start: 660, End: 705},
	}, occupied)

	occupied = BuildOccupied(appointments, "2")
	assert.Equal(t, []timeslot.Interval{{Start: 600, End: 630}}, occupied)
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled", "completed"} {
		s, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, Status(valid), s)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
}
