package repo

import (
	"github.com/mkravtsov/fishshop/internal/models"
	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate() error {
	return r.DB.AutoMigrate(&models.User{}, &models.Fish{}, &models.Session{})
}
