package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/pkg/hash"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

var (
	ErrValidation         = errors.New("validation")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity is the session-held copy of the authenticated user.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Authenticator struct {
	Repo *repo.GormRepo
}

// Authenticate matches (email, digest(password)) against the credential
// store. Installing the returned identity into the session is the caller's
// job.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	l := logging.FromContext(ctx).With("svc", "auth.authenticate", "email", email)

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password required: %w", ErrValidation)
	}

	user, err := a.Repo.UserByCredentials(ctx, email, hash.Digest(password))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login_failed", "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	return IdentityOf(user), nil
}

func IdentityOf(u *models.User) *Identity {
	return &Identity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
