package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/mkravtsov/fishshop/internal/models"
	"github.com/mkravtsov/fishshop/internal/mykafka"
	"github.com/mkravtsov/fishshop/internal/repo"
	"github.com/mkravtsov/fishshop/internal/search"
	"github.com/mkravtsov/fishshop/pkg/logging"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

func validateFish(fish *models.Fish) error {
	if fish.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if fish.Type == "" {
		return fmt.Errorf("type is required: %w", ErrValidation)
	}
	if fish.Price <= 0 {
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) GetFish(ctx context.Context, id uint) (*models.Fish, error) {
	fish, err := s.Repo.GetFish(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fish %d: %w", id, ErrNotFound)
	}
	return fish, err
}

func (s *CatalogService) ListFish(ctx context.Context) ([]models.Fish, error) {
	return s.Repo.GetAllFish(ctx)
}

func (s *CatalogService) CreateFish(ctx context.Context, fish *models.Fish) error {
	if err := validateFish(fish); err != nil {
		return err
	}

	if err := s.Repo.CreateFish(ctx, fish); err != nil {
		return err
	}

	s.publish(ctx, "fish_created", fish)
	s.index(ctx, fish)
	return nil
}

// UpdateFish overwrites the stored record with req. When req.Image is empty
// the previously stored filename is kept, matching the "no new upload" form
// flow.
func (s *CatalogService) UpdateFish(ctx context.Context, id uint, req models.Fish) (*models.Fish, error) {
	fish, err := s.Repo.GetFish(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fish %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	fish.Name = req.Name
	fish.Weight = req.Weight
	fish.Length = req.Length
	fish.Type = req.Type
	fish.Price = req.Price
	fish.DietUse = req.DietUse
	if req.Image != "" {
		fish.Image = req.Image
	}

	if err := validateFish(fish); err != nil {
		return nil, err
	}

	if err := s.Repo.SaveFish(ctx, fish); err != nil {
		return nil, err
	}

	s.publish(ctx, "fish_updated", fish)
	s.index(ctx, fish)
	return fish, nil
}

func (s *CatalogService) DeleteFish(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteFish(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("fish %d: %w", id, ErrNotFound)
		}
		return err
	}

	s.publish(ctx, "fish_deleted", &models.Fish{ID: id})
	if s.ES != nil {
		if err := search.Delete(ctx, s.ES, s.ESIndex, id); err != nil {
			logging.FromContext(ctx).Warn("es_delete_failed", "fish_id", id, "error", err)
		}
	}
	return nil
}

// SearchFish uses the Elasticsearch index when configured and falls back to
// a LIKE query against the store otherwise.
func (s *CatalogService) SearchFish(ctx context.Context, q string) ([]models.Fish, error) {
	if s.ES == nil {
		return s.Repo.SearchFish(ctx, q)
	}
	return search.Search(ctx, s.ES, s.ESIndex, q)
}

func (s *CatalogService) publish(ctx context.Context, eventType string, fish *models.Fish) {
	if s.Producer == nil {
		return
	}
	event := map[string]interface{}{
		"type":   eventType,
		"fishID": fish.ID,
		"name":   fish.Name,
	}
	key := fmt.Sprintf("fish-%d", fish.ID)
	if err := s.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Warn("kafka_publish_failed", "type", eventType, "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, fish *models.Fish) {
	if s.ES == nil {
		return
	}
	if err := search.Index(ctx, s.ES, s.ESIndex, fish); err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "fish_id", fish.ID, "error", err)
	}
}
