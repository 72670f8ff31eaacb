package repo

import (
	"context"

	"github.com/mkravtsov/fishshop/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) GetFish(ctx context.Context, id uint) (*models.Fish, error) {
	fish := models.Fish{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&fish).Error; err != nil {
		return nil, err
	}
	return &fish, nil
}

func (r *GormRepo) GetAllFish(ctx context.Context) ([]models.Fish, error) {
	var items []models.Fish
	if err := r.DB.WithContext(ctx).Model(&models.Fish{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FishByIDs is the batch lookup used by cart hydration. Ids that no longer
// exist are simply absent from the result.
func (r *GormRepo) FishByIDs(ctx context.Context, ids []uint) ([]models.Fish, error) {
	var items []models.Fish
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateFish(ctx context.Context, fish *models.Fish) error {
	return r.DB.WithContext(ctx).Create(fish).Error
}

func (r *GormRepo) SaveFish(ctx context.Context, fish *models.Fish) error {
	return r.DB.WithContext(ctx).Save(fish).Error
}

func (r *GormRepo) DeleteFish(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Fish{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormRepo) SearchFish(ctx context.Context, q string) ([]models.Fish, error) {
	var items []models.Fish
	pattern := "%" + q + "%"
	if err := r.DB.WithContext(ctx).
		Where("name LIKE ? OR type LIKE ? OR diet_use LIKE ?", pattern, pattern, pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
