package service

import (
	"context"

	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

// SettingsService reads and updates the singleton map-view configuration.
type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Update(ctx context.Context, centerLongitude, centerLatitude float64, zoom int) (*domain.Settings, error)
}

type settingsService struct {
	settings repository.SettingsRepository
}

func NewSettingsService(settings repository.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *settingsService) Update(ctx context.Context, centerLongitude, centerLatitude float64, zoom int) (*domain.Settings, error) {
	if centerLongitude < -180 || centerLongitude > 180 {
		return nil, domain.NewValidationError("center_lng", "a value between -180 and 180")
	}
	if centerLatitude < -90 || centerLatitude > 90 {
		return nil, domain.NewValidationError("center_lat", "a value between -90 and 90")
	}
	if zoom < 0 || zoom > 22 {
		return nil, domain.NewValidationError("zoom", "a value between 0 and 22")
	}

	updated := domain.Settings{
		CenterLongitude: centerLongitude,
		CenterLatitude:  centerLatitude,
		Zoom:            zoom,
	}
	if err := s.settings.Update(ctx, updated); err != nil {
		return nil, err
	}
	return s.settings.Get(ctx)
}
