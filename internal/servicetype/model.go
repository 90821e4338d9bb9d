package servicetype

import (
	"net/http"
	"time"

	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service type not found")
	ErrNameRequired    = apperror.New(http.StatusBadRequest, "service type name is required")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrNegativePrice   = apperror.New(http.StatusBadRequest, "price cannot be negative")
	ErrDurationTooLong = apperror.New(http.StatusBadRequest, "duration cannot exceed a full day")
	ErrInUse           = apperror.New(http.StatusConflict, "service type is still referenced by appointments")
)

// ServiceType is an offered service (e.g. classic cut, fade, beard trim).
// DurationMinutes drives the appointment fit check.
type ServiceType struct {
	ID              string // UUID
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing service types.
type Filter struct {
	Page     int
	PageSize int
}
