package repo

import (
	"context"
	"time"

	"github.com/mkravtsov/fishshop/internal/models"
)

func (r *GormRepo) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) SaveSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) DeleteSession(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
}

func (r *GormRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
