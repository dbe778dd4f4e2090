package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

// scheduleCacheKeyPattern matches every cached schedule view. Any write to
// ranges or event configs changes scoring, so the whole view cache goes.
const scheduleCacheKeyPattern = "sched:view:*"

// RangeStore abstracts time range persistence.
type RangeStore interface {
	List(ctx context.Context) ([]models.TimeRangeDefinition, error)
	Get(ctx context.Context, id string) (*models.TimeRangeDefinition, error)
	Create(ctx context.Context, def *models.TimeRangeDefinition) error
	Update(ctx context.Context, def *models.TimeRangeDefinition) error
	Delete(ctx context.Context, id string) error
}

// RangeService manages time range definitions and keeps the schedule view
// cache coherent across writes.
type RangeService struct {
	repo      RangeStore
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRangeService constructs the service.
func NewRangeService(repo RangeStore, cache *CacheService, logger *zap.Logger) *RangeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RangeService{repo: repo, cache: cache, validator: validator.New(), logger: logger}
}

// List returns all definitions.
func (s *RangeService) List(ctx context.Context) ([]models.TimeRangeDefinition, error) {
	return s.repo.List(ctx)
}

// Get returns one definition by ID.
func (s *RangeService) Get(ctx context.Context, id string) (*models.TimeRangeDefinition, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new definition.
func (s *RangeService) Create(ctx context.Context, req dto.TimeRangeRequest) (*models.TimeRangeDefinition, error) {
	def := req.ToModel()
	if err := s.validateRange(def); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &def); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	s.logger.Info("time range created", zap.String("id", def.ID), zap.String("title", def.Title))
	return &def, nil
}

// Update replaces an existing definition.
func (s *RangeService) Update(ctx context.Context, id string, req dto.TimeRangeRequest) (*models.TimeRangeDefinition, error) {
	def := req.ToModel()
	def.ID = id
	if err := s.validateRange(def); err != nil {
		return nil, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	def.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, &def); err != nil {
		return nil, err
	}
	s.invalidateViews(ctx)
	s.logger.Info("time range updated", zap.String("id", id))
	return &def, nil
}

// Delete removes a definition.
func (s *RangeService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateViews(ctx)
	s.logger.Info("time range deleted", zap.String("id", id))
	return nil
}

func (s *RangeService) invalidateViews(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, scheduleCacheKeyPattern); err != nil {
		s.logger.Warn("schedule view cache invalidation failed", zap.Error(err))
	}
}

func (s *RangeService) validateRange(def models.TimeRangeDefinition) error {
	// A window with identical start and end has zero length, which the slot
	// finder and coverage math treat as empty. Reject it outright.
	if def.Start == def.End {
		return appErrors.New(appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"range start and end must differ")
	}
	if err := s.validator.Var(def.Days, "required,min=1,dive,min=0,max=6"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
			"range days must be weekday numbers 0-6")
	}
	return nil
}
