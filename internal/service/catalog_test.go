package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	require.NoError(t, r.Migrate())
	return r
}

func validFish() models.Fish {
	return models.Fish{
		Name:    "Salmon",
		Weight:  2.4,
		Length:  60,
		Type:    "freshwater",
		Price:   12.5,
		DietUse: "grill",
		Image:   "salmon.jpg",
	}
}

func TestCatalogService_CreateFish_Validation(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.Fish)
	}{
		{name: "missing name", mutate: func(f *models.Fish) { f.Name = "" }},
		{name: "missing type", mutate: func(f *models.Fish) { f.Type = "" }},
		{name: "missing price", mutate: func(f *models.Fish) { f.Price = 0 }},
		{name: "negative price", mutate: func(f *models.Fish) { f.Price = -1 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fish := validFish()
			tt.mutate(&fish)

			err := svc.CreateFish(ctx, &fish)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_CreateAndGet(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	fish := validFish()
	require.NoError(t, svc.CreateFish(ctx, &fish))
	require.NotZero(t, fish.ID)

	got, err := svc.GetFish(ctx, fish.ID)
	require.NoError(t, err)
	assert.Equal(t, "Salmon", got.Name)
	assert.Equal(t, "salmon.jpg", got.Image)
}

func TestCatalogService_GetFish_NotFound(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}

	_, err := svc.GetFish(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_UpdateFish_KeepsImageWithoutNewUpload(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	fish := validFish()
	require.NoError(t, svc.CreateFish(ctx, &fish))

	req := validFish()
	req.Name = "Atlantic Salmon"
	req.Image = ""

	updated, err := svc.UpdateFish(ctx, fish.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Atlantic Salmon", updated.Name)
	assert.Equal(t, "salmon.jpg", updated.Image, "stored image kept when no new upload")
}

func TestCatalogService_UpdateFish_ReplacesImage(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	fish := validFish()
	require.NoError(t, svc.CreateFish(ctx, &fish))

	req := validFish()
	req.Image = "1700000000_salmon.jpg"

	updated, err := svc.UpdateFish(ctx, fish.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "1700000000_salmon.jpg", updated.Image)
}

func TestCatalogService_UpdateFish_NotFound(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}

	_, err := svc.UpdateFish(context.Background(), 42, validFish())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_DeleteFish(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	fish := validFish()
	require.NoError(t, svc.CreateFish(ctx, &fish))

	require.NoError(t, svc.DeleteFish(ctx, fish.ID))

	_, err := svc.GetFish(ctx, fish.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an id that never existed is surfaced, not swallowed
	err = svc.DeleteFish(ctx, fish.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_SearchFish_SQLFallback(t *testing.T) {
	t.Parallel()

	svc := &CatalogService{Repo: newTestRepo(t)}
	ctx := context.Background()

	salmon := validFish()
	require.NoError(t, svc.CreateFish(ctx, &salmon))
	tuna := validFish()
	tuna.Name = "Tuna"
	tuna.Type = "saltwater"
	require.NoError(t, svc.CreateFish(ctx, &tuna))

	items, err := svc.SearchFish(ctx, "Tuna")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tuna", items[0].Name)
}
