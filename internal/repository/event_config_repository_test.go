package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

func eventConfigRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"title", "base_difficulty", "type_tag", "color",
		"is_english", "movable", "skippable", "need_prep", "completable",
		"created_at", "updated_at",
	})
}

func TestEventConfigRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventConfigRepository(db)

	rows := eventConfigRows().
		AddRow("Standup", 1.0, "Meeting", "#00FF00", false, false, true, false, false, time.Now(), time.Now()).
		AddRow("English Class", 2.0, "Learning", "", true, false, false, true, false, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM event_configs ORDER BY title").
		WillReturnRows(rows)

	result, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Standup", result[0].Title)
	assert.True(t, result[0].Skippable)
	assert.True(t, result[1].IsEnglish)
}

func TestEventConfigRepositoryGet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventConfigRepository(db)

	rows := eventConfigRows().
		AddRow("Standup", 1.0, "Meeting", "", false, true, false, false, false, time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM event_configs WHERE title").
		WithArgs("Standup").
		WillReturnRows(rows)

	cfg, err := repo.Get(context.Background(), "Standup")
	require.NoError(t, err)
	assert.Equal(t, 1.0, cfg.BaseDifficulty)
	assert.True(t, cfg.Movable)
}

func TestEventConfigRepositoryGetNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventConfigRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM event_configs WHERE title").
		WithArgs("Unknown").
		WillReturnRows(eventConfigRows())

	_, err := repo.Get(context.Background(), "Unknown")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEventConfigRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventConfigRepository(db)

	mock.ExpectExec("INSERT INTO event_configs").
		WillReturnResult(sqlmock.NewResult(1, 1))

	cfg := &models.EventConfig{
		Title:          "Standup",
		BaseDifficulty: 1,
		TypeTag:        "Meeting",
		EventFlags:     models.EventFlags{Skippable: true},
	}
	require.NoError(t, repo.Upsert(context.Background(), cfg))
	assert.False(t, cfg.UpdatedAt.IsZero())
}

func TestEventConfigRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEventConfigRepository(db)

	mock.ExpectExec("DELETE FROM event_configs").
		WithArgs("Unknown").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "Unknown"), appErrors.ErrNotFound)
}
