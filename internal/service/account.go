package service

import (
	"context"
	"fmt"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/mykafka"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/pkg/hash"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

const minPasswordLen = 6

type AccountService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

type RegisterParams struct {
	Username string
	Email    string
	Password string
	Address  string
	Contact  string
}

func (p RegisterParams) validate() error {
	required := []struct{ name, value string }{
		{"username", p.Username},
		{"email", p.Email},
		{"password", p.Password},
		{"address", p.Address},
		{"contact", p.Contact},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%s is required: %w", f.name, ErrValidation)
		}
	}
	if len(p.Password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	}
	return nil
}

// Register creates a user with role "user". Accounts are immutable once
// created; there is no profile editing surface.
func (s *AccountService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "account.register", "email", p.Email)

	if err := p.validate(); err != nil {
		return nil, err
	}

	user := models.User{
		Username:       p.Username,
		Email:          p.Email,
		PasswordDigest: hash.Digest(p.Password),
		Address:        p.Address,
		Contact:        p.Contact,
		Role:           models.RoleUser,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		l.Warn("register_failed", "error", err)
		return nil, err
	}

	if s.Producer != nil {
		event := map[string]interface{}{
			"type":   "user_registered",
			"userID": user.ID,
			"email":  user.Email,
		}
		key := fmt.Sprintf("user-%d", user.ID)
		if err := s.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, key, event); err != nil {
			l.Warn("kafka_publish_failed", "type", "user_registered", "error", err)
		}
	}

	l.Info("user_registered", "user_id", user.ID)
	return &user, nil
}
