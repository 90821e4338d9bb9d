package http

import (
	"time"

	"github.com/martosdev/barbershop-backend/internal/servicetype"
)

type ServiceTypeResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceTypeResponse(st *servicetype.ServiceType) ServiceTypeResponse {
	return ServiceTypeResponse{
		ID:              st.ID,
		Name:            st.Name,
		Description:     st.Description,
		DurationMinutes: st.DurationMinutes,
		Price:           st.Price,
		CreatedAt:       st.CreatedAt,
		UpdatedAt:       st.UpdatedAt,
	}
}

// ServiceTypeTag holds minimal service type info for embedding in other responses.
type ServiceTypeTag struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CreateServiceTypeRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"gte=0"`
}

type UpdateServiceTypeRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
}
