package schedule

import (
	"net/http"
	"time"

	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "schedule not found")
	ErrNoSchedule     = apperror.New(http.StatusNotFound, "barber has no schedule for this date")
	ErrAlreadyExists  = apperror.New(http.StatusConflict, "barber already has a schedule for this date")
	ErrInvalidWindow  = apperror.New(http.StatusBadRequest, "entry time must be before the exit time")
	ErrEntryOutOfDay  = apperror.New(http.StatusBadRequest, "entry time must fall within the day")
	ErrBarberNotFound = apperror.New(http.StatusNotFound, "barber not found")
)

// Schedule is one barber's working window for one date. EntryMinute and
// ExitMinute are minutes since local midnight; an ExitMinute of zero is the
// stored midnight sentinel and means the shift runs to the end of the day.
type Schedule struct {
	ID          string // UUID
	BarberID    string
	BarberName  string
	WorkDate    string // plain local YYYY-MM-DD, never timezone-shifted
	EntryMinute timeslot.TimeOfDay
	ExitMinute  timeslot.TimeOfDay
	IsActive    bool
	CreatedAt   time.Time
}

// Window reduces the schedule to the core's working-window form.
func (s *Schedule) Window() timeslot.Window {
	return timeslot.Window{Entry: s.EntryMinute, Exit: s.ExitMinute}
}

// Filter defines parameters for listing schedules.
type Filter struct {
	BarberID   string
	WorkDate   string
	ActiveOnly bool
	Page       int
	PageSize   int
}
