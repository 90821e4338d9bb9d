package barber

import (
	"net/http"
	"time"

	"github.com/martosdev/barbershop-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "barber not found")
	ErrNameRequired = apperror.New(http.StatusBadRequest, "barber name is required")
	ErrNoPhoto      = apperror.New(http.StatusNotFound, "barber has no photo")
	ErrBadPhoto     = apperror.New(http.StatusBadRequest, "photo must be a decodable image")
	ErrInUse        = apperror.New(http.StatusConflict, "barber still has schedules or appointments")
)

// Barber is a member of staff customers can book appointments with.
type Barber struct {
	ID          string // UUID
	Name        string
	Description string
	PhotoPath   string // relative path in storage, empty when no photo uploaded
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing barbers.
type Filter struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
