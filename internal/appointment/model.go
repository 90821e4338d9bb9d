package appointment

import (
	"fmt"
	"net/http"
	"time"

	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "appointment not found")
	ErrBarberNotFound      = apperror.New(http.StatusNotFound, "barber not found")
	ErrServiceTypeNotFound = apperror.New(http.StatusNotFound, "service type not found")
	ErrCustomerRequired    = apperror.New(http.StatusBadRequest, "customer name is required")
	ErrUnalignedStart      = apperror.New(http.StatusBadRequest, fmt.Sprintf("start time must fall on a %d-minute boundary", timeslot.Granularity))
	ErrInvalidStart        = apperror.New(http.StatusBadRequest, "start time must fall within the day")
	ErrNotPending          = apperror.New(http.StatusConflict, "only a pending appointment can be confirmed")
	ErrBarberInactive      = apperror.New(http.StatusConflict, "barber is not taking appointments")
	ErrAlreadyClosed       = apperror.New(http.StatusConflict, "appointment is already cancelled or completed")

	// ErrSlotConflict is the write-time counterpart of the fit check: the
	// database unique constraint caught a concurrent booking that the
	// in-memory validation could not see.
	ErrSlotConflict = apperror.New(http.StatusConflict, "the time was just taken by another appointment")
)

// Status is the appointment lifecycle state. The set is closed: rows carrying
// any other value are a data bug and are rejected at scan time rather than
// silently treated as free or busy.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// ParseStatus validates a raw status value against the closed set.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return s, nil
	default:
		return "", fmt.Errorf("unknown appointment status %q", raw)
	}
}

// Occupies reports whether an appointment in this status blocks its slot.
// Cancelled and completed appointments free their time immediately.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment is one customer booking. Duration and price are snapshots taken
// when the booking is made, so later edits to the service type catalog do not
// retroactively change existing appointments.
type Appointment struct {
	ID              string // UUID
	BarberID        string
	BarberName      string
	ServiceTypeID   string
	ServiceName     string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Comments        string
	WorkDate        string // plain local YYYY-MM-DD, never timezone-shifted
	StartMinute     timeslot.TimeOfDay
	DurationMinutes int
	Price           float64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Interval is the half-open busy range this appointment covers.
func (a *Appointment) Interval() timeslot.Interval {
	return timeslot.Interval{
		Start: a.StartMinute,
		End:   a.StartMinute + timeslot.TimeOfDay(a.DurationMinutes),
	}
}

// BuildOccupied reduces one barber-day's appointments to busy intervals.
// Non-occupying statuses are skipped, as is the appointment identified by
// excludeID so a reschedule does not collide with its own current slot.
// Pass an empty excludeID when creating.
func BuildOccupied(appointments []*Appointment, excludeID string) []timeslot.Interval {
	var occupied []timeslot.Interval
	for _, a := range appointments {
		if !a.Status.Occupies() {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		occupied = append(occupied, a.Interval())
	}
	return occupied
}

// Filter defines parameters for listing appointments.
type Filter struct {
	BarberID string
	WorkDate string
	Status   Status
	Page     int
	PageSize int
}
