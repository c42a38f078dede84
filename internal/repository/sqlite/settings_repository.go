package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	center_longitude REAL NOT NULL,
	center_latitude REAL NOT NULL,
	zoom INTEGER NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &SettingsRepository{db: db}
}

// Init creates the settings table and seeds the singleton row, so every
// later Get finds exactly one row.
func (r *SettingsRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSettingsTable); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO settings (id, center_longitude, center_latitude, zoom, updated_at)
VALUES (1, ?, ?, ?, ?)`,
		domain.DefaultCenterLongitude,
		domain.DefaultCenterLatitude,
		domain.DefaultZoom,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("seed settings row: %w", err)
	}
	return nil
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, `
SELECT center_longitude, center_latitude, zoom, updated_at
FROM settings
WHERE id = 1`,
	).Scan(&s.CenterLongitude, &s.CenterLatitude, &s.Zoom, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("settings row missing: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings domain.Settings) error {
	if _, err := r.db.ExecContext(ctx, `
UPDATE settings
SET center_longitude = ?, center_latitude = ?, zoom = ?, updated_at = ?
WHERE id = 1`,
		settings.CenterLongitude,
		settings.CenterLatitude,
		settings.Zoom,
		time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}
