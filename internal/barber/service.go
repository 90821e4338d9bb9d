package barber

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/martosdev/barbershop-backend/internal/pkg/storage"
)

const (
	photoMaxWidth  = 512
	photoMaxHeight = 512
)

type CreateRequest struct {
	Name        string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Barber, error)
	GetByID(ctx context.Context, id string) (*Barber, error)
	List(ctx context.Context, filter Filter) ([]*Barber, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Barber, error)
	Delete(ctx context.Context, id string) error

	// UploadPhoto stores a resized copy of the uploaded image and records its
	// path on the barber. A previous photo, if any, is removed.
	UploadPhoto(ctx context.Context, id string, content io.Reader) (*Barber, error)
	// Photo streams the stored photo for the barber.
	Photo(ctx context.Context, id string) (io.ReadCloser, error)
}

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Barber, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	b := &Barber{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Barber, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Barber, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Barber, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Remove the row first: a barber still referenced by schedules or
	// appointments must keep its photo.
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if b.PhotoPath != "" {
		if err := s.store.Delete(ctx, b.PhotoPath); err != nil {
			log.Printf("failed to delete photo %s of removed barber %s: %v", b.PhotoPath, id, err)
		}
	}
	return nil
}

func (s *service) UploadPhoto(ctx context.Context, id string, content io.Reader) (*Barber, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	thumb, err := s.processor.GenerateThumbnail(content, photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, ErrBadPhoto
	}

	path := fmt.Sprintf("barbers/%s/%s.jpg", b.ID, uuid.NewString())
	if err := s.store.Save(ctx, path, thumb); err != nil {
		return nil, fmt.Errorf("save barber photo failed: %w", err)
	}

	oldPath := b.PhotoPath
	b.PhotoPath = path
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	if oldPath != "" {
		if err := s.store.Delete(ctx, oldPath); err != nil {
			// The new photo is already in place; losing the cleanup is harmless.
			log.Printf("failed to delete previous photo %s: %v", oldPath, err)
		}
	}

	return b, nil
}

func (s *service) Photo(ctx context.Context, id string) (io.ReadCloser, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.PhotoPath == "" {
		return nil, ErrNoPhoto
	}
	return s.store.Get(ctx, b.PhotoPath)
}
