package repo

import (
	"context"
	"errors"

	"github.com/mkravtsov/fishshop/internal/models"
)

var ErrEmailTaken = errors.New("email already taken")

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", u.Email).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrEmailTaken
	}
	return nil
}

// UserByCredentials matches (email, digest) exactly. If the store ever holds
// two rows with the same email the first returned row wins; the unique index
// on email is what actually prevents that.
func (r *GormRepo) UserByCredentials(ctx context.Context, email, digest string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Where("email = ? AND password = ?", email, digest).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
