package servicetype

import (
	"context"
	"strings"

	"github.com/martosdev/barbershop-backend/internal/timeslot"
)

type CreateRequest struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

type UpdateRequest struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ServiceType, error)
	GetByID(ctx context.Context, id string) (*ServiceType, error)
	List(ctx context.Context, filter Filter) ([]*ServiceType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*ServiceType, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateDuration(minutes int) error {
	if minutes <= 0 {
		return ErrInvalidDuration
	}
	if minutes > timeslot.MinutesPerDay {
		return ErrDurationTooLong
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ServiceType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := validateDuration(req.DurationMinutes); err != nil {
		return nil, err
	}
	if req.Price < 0 {
		return nil, ErrNegativePrice
	}

	st := &ServiceType{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}

	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ServiceType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*ServiceType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*ServiceType, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		st.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		st.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if err := validateDuration(*req.DurationMinutes); err != nil {
			return nil, err
		}
		st.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrNegativePrice
		}
		st.Price = *req.Price
	}

	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
