package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

// EventConfigRepository persists per-title event configuration. Title is the
// natural key; there is no surrogate ID.
type EventConfigRepository struct {
	db *sqlx.DB
}

// NewEventConfigRepository constructs the repository.
func NewEventConfigRepository(db *sqlx.DB) *EventConfigRepository {
	return &EventConfigRepository{db: db}
}

const eventConfigColumns = `title, base_difficulty, type_tag, color, is_english, movable, skippable, need_prep, completable, created_at, updated_at`

// List returns all event configurations ordered by title.
func (r *EventConfigRepository) List(ctx context.Context) ([]models.EventConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_configs ORDER BY title ASC`, eventConfigColumns)
	var configs []models.EventConfig
	if err := r.db.SelectContext(ctx, &configs, query); err != nil {
		return nil, fmt.Errorf("list event configs: %w", err)
	}
	return configs, nil
}

// Get fetches the configuration for one exact title.
func (r *EventConfigRepository) Get(ctx context.Context, title string) (*models.EventConfig, error) {
	query := fmt.Sprintf(`SELECT %s FROM event_configs WHERE title = $1`, eventConfigColumns)
	var cfg models.EventConfig
	if err := r.db.GetContext(ctx, &cfg, query, title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get event config %q: %w", title, err)
	}
	return &cfg, nil
}

// Upsert inserts or updates the configuration for a title.
func (r *EventConfigRepository) Upsert(ctx context.Context, cfg *models.EventConfig) error {
	const query = `INSERT INTO event_configs (title, base_difficulty, type_tag, color, is_english, movable, skippable, need_prep, completable, created_at, updated_at)
VALUES (:title, :base_difficulty, :type_tag, :color, :is_english, :movable, :skippable, :need_prep, :completable, :created_at, :updated_at)
ON CONFLICT (title)
DO UPDATE SET base_difficulty = EXCLUDED.base_difficulty, type_tag = EXCLUDED.type_tag,
              color = EXCLUDED.color, is_english = EXCLUDED.is_english, movable = EXCLUDED.movable,
              skippable = EXCLUDED.skippable, need_prep = EXCLUDED.need_prep,
              completable = EXCLUDED.completable, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert event config %q: %w", cfg.Title, err)
	}
	return nil
}

// Delete removes the configuration for a title.
func (r *EventConfigRepository) Delete(ctx context.Context, title string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_configs WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("delete event config %q: %w", title, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
