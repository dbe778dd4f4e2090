// Package repository holds the persistence layer: Postgres access through
// sqlx and Redis-backed caching.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aiinbox/dayflow-api/internal/models"
	appErrors "github.com/aiinbox/dayflow-api/pkg/errors"
)

// RangeRepository persists time range definitions.
type RangeRepository struct {
	db *sqlx.DB
}

// NewRangeRepository constructs the repository.
func NewRangeRepository(db *sqlx.DB) *RangeRepository {
	return &RangeRepository{db: db}
}

const rangeColumns = `id, title, start_hour, start_minute, end_hour, end_minute, days, color, is_enabled, is_work, is_visible, created_at, updated_at`

// List returns every time range definition ordered by title.
func (r *RangeRepository) List(ctx context.Context) ([]models.TimeRangeDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM time_ranges ORDER BY title ASC`, rangeColumns)
	var ranges []models.TimeRangeDefinition
	if err := r.db.SelectContext(ctx, &ranges, query); err != nil {
		return nil, fmt.Errorf("list time ranges: %w", err)
	}
	for i := range ranges {
		ranges[i].SyncClock()
	}
	return ranges, nil
}

// Get fetches one time range definition by ID.
func (r *RangeRepository) Get(ctx context.Context, id string) (*models.TimeRangeDefinition, error) {
	query := fmt.Sprintf(`SELECT %s FROM time_ranges WHERE id = $1`, rangeColumns)
	var def models.TimeRangeDefinition
	if err := r.db.GetContext(ctx, &def, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("get time range %s: %w", id, err)
	}
	def.SyncClock()
	return &def, nil
}

// Create inserts a new time range definition, assigning it a fresh ID.
func (r *RangeRepository) Create(ctx context.Context, def *models.TimeRangeDefinition) error {
	def.ID = uuid.NewString()
	def.SyncColumns()
	now := time.Now().UTC()
	def.CreatedAt = now
	def.UpdatedAt = now

	const query = `INSERT INTO time_ranges (id, title, start_hour, start_minute, end_hour, end_minute, days, color, is_enabled, is_work, is_visible, created_at, updated_at)
VALUES (:id, :title, :start_hour, :start_minute, :end_hour, :end_minute, :days, :color, :is_enabled, :is_work, :is_visible, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, def); err != nil {
		return fmt.Errorf("create time range: %w", err)
	}
	return nil
}

// Update overwrites an existing time range definition.
func (r *RangeRepository) Update(ctx context.Context, def *models.TimeRangeDefinition) error {
	def.SyncColumns()
	def.UpdatedAt = time.Now().UTC()

	const query = `UPDATE time_ranges
SET title = :title, start_hour = :start_hour, start_minute = :start_minute,
    end_hour = :end_hour, end_minute = :end_minute, days = :days, color = :color,
    is_enabled = :is_enabled, is_work = :is_work, is_visible = :is_visible, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, def)
	if err != nil {
		return fmt.Errorf("update time range %s: %w", def.ID, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}

// Delete removes a time range definition.
func (r *RangeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_ranges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete time range %s: %w", id, err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return appErrors.ErrNotFound
	}
	return nil
}
