package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aiinbox/dayflow-api/internal/dto"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

func newEventConfigService(store *fakeConfigStore, cacheRepo *memCacheRepo) *EventConfigService {
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	return NewEventConfigService(store, cacheSvc, zap.NewNop())
}

func TestEventConfigServiceUpsertInvalidatesViewCache(t *testing.T) {
	cacheRepo := newMemCacheRepo()
	require.NoError(t, cacheRepo.Set(context.Background(), "sched:view:2024-11-11:2024-11-12", "stale", time.Minute))
	svc := newEventConfigService(&fakeConfigStore{}, cacheRepo)

	cfg, err := svc.Upsert(context.Background(), dto.EventConfigRequest{
		Title:          "Deep Work",
		BaseDifficulty: 3,
		TypeTag:        "Focus",
	})

	require.NoError(t, err)
	assert.Equal(t, "Deep Work", cfg.Title)
	assert.Equal(t, 1, cacheRepo.deletes)
}

func TestEventConfigServiceGetUnknownTitle(t *testing.T) {
	svc := newEventConfigService(&fakeConfigStore{}, newMemCacheRepo())

	_, err := svc.Get(context.Background(), "Unknown")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEventConfigServiceDeleteInvalidatesViewCache(t *testing.T) {
	cacheRepo := newMemCacheRepo()
	require.NoError(t, cacheRepo.Set(context.Background(), "sched:view:2024-11-11:2024-11-12", "stale", time.Minute))
	svc := newEventConfigService(&fakeConfigStore{}, cacheRepo)

	require.NoError(t, svc.Delete(context.Background(), "Standup"))
	assert.Equal(t, 1, cacheRepo.deletes)
}
