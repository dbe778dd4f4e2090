package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
)

// EventConfigStore abstracts per-title configuration persistence.
type EventConfigStore interface {
	List(ctx context.Context) ([]models.EventConfig, error)
	Get(ctx context.Context, title string) (*models.EventConfig, error)
	Upsert(ctx context.Context, cfg *models.EventConfig) error
	Delete(ctx context.Context, title string) error
}

// EventConfigService manages per-title event configuration. Every write
// invalidates the schedule view cache since scoring inputs changed.
type EventConfigService struct {
	repo   EventConfigStore
	cache  *CacheService
	logger *zap.Logger
}

// NewEventConfigService constructs the service.
func NewEventConfigService(repo EventConfigStore, cache *CacheService, logger *zap.Logger) *EventConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventConfigService{repo: repo, cache: cache, logger: logger}
}

// List returns every configuration.
func (s *EventConfigService) List(ctx context.Context) ([]models.EventConfig, error) {
	return s.repo.List(ctx)
}

// Get returns the configuration for one exact title.
func (s *EventConfigService) Get(ctx context.Context, title string) (*models.EventConfig, error) {
	return s.repo.Get(ctx, title)
}

// Upsert creates or replaces a title's configuration.
func (s *EventConfigService) Upsert(ctx context.Context, req dto.EventConfigRequest) (*models.EventConfig, error) {
	cfg := req.ToModel()
	if err := s.repo.Upsert(ctx, &cfg); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	s.logger.Info("event config upserted",
		zap.String("title", cfg.Title),
		zap.Float64("base_difficulty", cfg.BaseDifficulty))
	return &cfg, nil
}

// Delete removes a title's configuration.
func (s *EventConfigService) Delete(ctx context.Context, title string) error {
	if err := s.repo.Delete(ctx, title); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	s.logger.Info("event config deleted", zap.String("title", title))
	return nil
}

func (s *EventConfigService) invalidateViews(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, scheduleCacheKeyPattern); err != nil {
		s.logger.Warn("schedule view cache invalidation failed", zap.Error(err))
	}
}
