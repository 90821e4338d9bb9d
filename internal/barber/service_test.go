package barber

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martosdev/barbershop-backend/internal/pkg/storage"
)

type fakeRepo struct {
	barbers map[string]*Barber
	inUse   map[string]bool
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		barbers: make(map[string]*Barber),
		inUse:   make(map[string]bool),
	}
}

func (r *fakeRepo) Create(_ context.Context, b *Barber) error {
	r.nextID++
	b.ID = fmt.Sprintf("barber-%d", r.nextID)
	stored := *b
	r.barbers[b.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Barber, error) {
	b, ok := r.barbers[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Barber, int, error) {
	var out []*Barber
	for _, b := range r.barbers {
		if filter.ActiveOnly && !b.IsActive {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Barber) error {
	if _, ok := r.barbers[b.ID]; !ok {
		return ErrNotFound
	}
	stored := *b
	r.barbers[b.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.barbers[id]; !ok {
		return ErrNotFound
	}
	if r.inUse[id] {
		return ErrInUse
	}
	delete(r.barbers, id)
	return nil
}

type fakeStore struct {
	files map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: make(map[string]bool)}
}

func (s *fakeStore) Save(_ context.Context, path string, _ io.Reader) error {
	s.files[path] = true
	return nil
}

func (s *fakeStore) Get(_ context.Context, path string) (io.ReadCloser, error) {
	if !s.files[path] {
		return nil, fmt.Errorf("no file at %s", path)
	}
	return io.NopCloser(strings.NewReader("jpeg bytes")), nil
}

func (s *fakeStore) Delete(_ context.Context, path string) error {
	if !s.files[path] {
		return fmt.Errorf("no file at %s", path)
	}
	delete(s.files, path)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeStore) {
	t.Helper()
	repo := newFakeRepo()
	store := newFakeStore()
	return NewService(repo, store, storage.NewImageProcessor()), repo, store
}

func seedBarberWithPhoto(t *testing.T, repo *fakeRepo, store *fakeStore) *Barber {
	t.Helper()
	b := &Barber{Name: "Papu", IsActive: true, PhotoPath: "barbers/papu/photo.jpg"}
	require.NoError(t, repo.Create(context.Background(), b))
	store.files[b.PhotoPath] = true
	return b
}

func TestDeleteRemovesBarberAndPhoto(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t)
	b := seedBarberWithPhoto(t, repo, store)

	require.NoError(t, svc.Delete(ctx, b.ID))

	_, err := repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, store.files[b.PhotoPath])
}

func TestDeleteKeepsPhotoWhenBarberInUse(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t)
	b := seedBarberWithPhoto(t, repo, store)
	repo.inUse[b.ID] = true

	err := svc.Delete(ctx, b.ID)
	require.ErrorIs(t, err, ErrInUse)

	// The refused delete must leave the barber intact, photo included.
	kept, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.PhotoPath, kept.PhotoPath)
	assert.True(t, store.files[b.PhotoPath])

	photo, err := svc.Photo(ctx, b.ID)
	require.NoError(t, err)
	photo.Close()
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}
