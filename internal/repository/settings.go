package repository

import (
	"context"

	"pinmap/internal/domain"
)

// SettingsRepository manages the singleton map-view configuration row.
type SettingsRepository interface {
	// Init creates the table and seeds the singleton row with defaults
	// if it does not exist yet.
	Init(ctx context.Context) error
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) error
}
