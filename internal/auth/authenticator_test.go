package auth

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
	"github.com/mkravtsov/fishshop/pkg/hash"
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

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	require.NoError(t, r.DB.Create(&models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		PasswordDigest: hash.Digest("correct horse"),
		Address:        "1 Fish St",
		Contact:        "555-0100",
		Role:           models.RoleAdmin,
	}).Error)

	a := &Authenticator{Repo: r}
	ctx := context.Background()

	t.Run("matching credentials return the stored record", func(t *testing.T) {
		id, err := a.Authenticate(ctx, "alice@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "alice", id.Username)
		assert.Equal(t, "alice@example.com", id.Email)
		assert.Equal(t, models.RoleAdmin, id.Role)
		assert.NotZero(t, id.UserID)
	})

	t.Run("one changed character fails", func(t *testing.T) {
		id, err := a.Authenticate(ctx, "alice@example.com", "correct horsf")
		assert.Nil(t, id)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails", func(t *testing.T) {
		id, err := a.Authenticate(ctx, "nobody@example.com", "correct horse")
		assert.Nil(t, id)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty inputs are rejected before the lookup", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "", "correct horse")
		assert.ErrorIs(t, err, ErrValidation)

		_, err = a.Authenticate(ctx, "alice@example.com", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
