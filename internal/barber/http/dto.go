package http

import (
	"time"

	"github.com/martosdev/barbershop-backend/internal/barber"
)

type BarberResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HasPhoto    bool      `json:"has_photo"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBarberResponse(b *barber.Barber) BarberResponse {
	return BarberResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		HasPhoto:    b.PhotoPath != "",
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BarberTag holds minimal barber info for embedding in other responses.
type BarberTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateBarberRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateBarberRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
