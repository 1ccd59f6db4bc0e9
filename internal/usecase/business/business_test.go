package business

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/studiobook/internal/db/dbtest"
	"github.com/BruksfildServices01/studiobook/internal/infra/repository"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
)

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, folder string, data []byte) (string, error) {
	args := m.Called(ctx, folder, data)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Delete(ctx context.Context, url string) {
	m.Called(ctx, url)
}

func str(s string) *string { return &s }

func newService(t *testing.T) (*Service, *MockImageStore) {
	t.Helper()
	images := new(MockImageStore)
	repo := repository.NewBusinessGormRepository(dbtest.Open(t))
	return NewService(repo, images, nil), images
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	b, err := svc.Create(ctx, "owner-1", Input{Name: str("Corte Fino"), Address: str("Rua A, 1")})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", b.OwnerID)
	assert.Equal(t, "America/Sao_Paulo", b.Timezone)
	assert.True(t, b.IsActive)

	_, err = svc.Create(ctx, "owner-2", Input{Name: str("Corte Fino"), Address: str("Rua A, 1")})
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Equal(t, "Business already exists at this address", err.Error())

	_, err = svc.Create(ctx, "owner-1", Input{Name: str("Other")})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.Create(ctx, "owner-1", Input{Name: str("Other"), Address: str("Rua B"), Timezone: str("Moon/Base")})
	assert.ErrorIs(t, err, ErrInvalidTimezone)

	page, err := svc.List(ctx, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)
}

func TestUpdateAndDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	b, err := svc.Create(ctx, "owner-1", Input{Name: str("Corte Fino"), Address: str("Rua A, 1")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", b.ID, Input{Phone: str("123")})
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := svc.Update(ctx, "owner-1", b.ID, Input{Phone: str("123"), Timezone: str("UTC")})
	require.NoError(t, err)
	assert.Equal(t, "123", *got.Phone)
	assert.Equal(t, "UTC", got.Timezone)

	assert.ErrorIs(t, svc.Delete(ctx, "intruder", b.ID), ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, "owner-1", b.ID))

	_, err = svc.Get(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestSetHours(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	b, err := svc.Create(ctx, "owner-1", Input{Name: str("Corte Fino"), Address: str("Rua A, 1")})
	require.NoError(t, err)

	hours, err := svc.SetHours(ctx, "owner-1", b.ID, []HourInput{
		{Weekday: 1, OpeningTime: "09:00", ClosingTime: "18:00", IsOpen: true},
		{Weekday: 0, IsOpen: false},
	})
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, 0, hours[0].Weekday)

	_, err = svc.SetHours(ctx, "owner-1", b.ID, []HourInput{{Weekday: 2, OpeningTime: "18:00", ClosingTime: "09:00", IsOpen: true}})
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = svc.SetHours(ctx, "owner-1", b.ID, []HourInput{{Weekday: 7, IsOpen: false}})
	assert.ErrorIs(t, err, ErrInvalidHours)

	_, err = svc.SetHours(ctx, "intruder", b.ID, nil)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUploadCover_DeletesPrevious(t *testing.T) {
	ctx := context.Background()
	svc, images := newService(t)

	b, err := svc.Create(ctx, "owner-1", Input{Name: str("Corte Fino"), Address: str("Rua A, 1")})
	require.NoError(t, err)

	images.On("Save", ctx, "covers", []byte("a")).Return("https://cdn/covers/a.webp", nil).Once()
	images.On("Save", ctx, "covers", []byte("b")).Return("https://cdn/covers/b.webp", nil).Once()
	images.On("Delete", ctx, "https://cdn/covers/a.webp").Return().Once()

	_, err = svc.UploadCover(ctx, "owner-1", b.ID, []byte("a"))
	require.NoError(t, err)
	got, err := svc.UploadCover(ctx, "owner-1", b.ID, []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/covers/b.webp", *got.CoverImage)

	images.AssertExpectations(t)
}
