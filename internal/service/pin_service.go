package service

import (
	"context"
	"strings"

	"pinmap/internal/domain"
	"pinmap/internal/filter"
	"pinmap/internal/repository"
)

// PinService coordinates pin creation and filtered retrieval.
type PinService interface {
	CreatePin(ctx context.Context, title, description string, longitude, latitude float64) (*domain.Pin, error)
	// ListPins returns matching pins newest-first.
	ListPins(ctx context.Context, f *filter.Filter) ([]domain.Pin, error)
	// ExportPins returns matching pins in stable chronological (ascending id) order.
	ExportPins(ctx context.Context, f *filter.Filter) ([]domain.Pin, error)
}

type pinService struct {
	pins repository.PinRepository
}

func NewPinService(pins repository.PinRepository) PinService {
	return &pinService{pins: pins}
}

func (s *pinService) CreatePin(ctx context.Context, title, description string, longitude, latitude float64) (*domain.Pin, error) {
	if longitude < -180 || longitude > 180 {
		return nil, domain.NewValidationError("longitude", "a value between -180 and 180")
	}
	if latitude < -90 || latitude > 90 {
		return nil, domain.NewValidationError("latitude", "a value between -90 and 90")
	}

	pin := &domain.Pin{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Longitude:   longitude,
		Latitude:    latitude,
	}
	if _, err := s.pins.Create(ctx, pin); err != nil {
		return nil, err
	}
	return pin, nil
}

func (s *pinService) ListPins(ctx context.Context, f *filter.Filter) ([]domain.Pin, error) {
	return s.matching(ctx, f, repository.OrderDescending)
}

func (s *pinService) ExportPins(ctx context.Context, f *filter.Filter) ([]domain.Pin, error) {
	return s.matching(ctx, f, repository.OrderAscending)
}

func (s *pinService) matching(ctx context.Context, f *filter.Filter, order repository.Order) ([]domain.Pin, error) {
	pins, err := s.pins.List(ctx, order)
	if err != nil {
		return nil, err
	}
	if f == nil || f.IsEmpty() {
		return pins, nil
	}

	matched := pins[:0]
	for _, pin := range pins {
		if f.Matches(pin.CreatedAt) {
			matched = append(matched, pin)
		}
	}
	return matched, nil
}
