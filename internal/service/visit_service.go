package service

import (
	"context"
	"strings"

	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

// VisitService records visitor check-ins and lists them for export.
type VisitService interface {
	RecordVisit(ctx context.Context, visitorHash, name string, age int, date, deviceHint string) (*domain.Visit, error)
	ExportVisits(ctx context.Context) ([]domain.Visit, error)
}

type visitService struct {
	visits repository.VisitRepository
}

func NewVisitService(visits repository.VisitRepository) VisitService {
	return &visitService{visits: visits}
}

func (s *visitService) RecordVisit(ctx context.Context, visitorHash, name string, age int, date, deviceHint string) (*domain.Visit, error) {
	visitorHash = strings.TrimSpace(visitorHash)
	if visitorHash == "" {
		return nil, domain.NewValidationError("user_hash", "a non-empty visitor hash")
	}
	if age < 0 {
		return nil, domain.NewValidationError("age", "a non-negative number")
	}

	visit := &domain.Visit{
		VisitorHash: visitorHash,
		Name:        strings.TrimSpace(name),
		Age:         age,
		Date:        strings.TrimSpace(date),
		DeviceHint:  strings.TrimSpace(deviceHint),
	}
	if _, err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

func (s *visitService) ExportVisits(ctx context.Context) ([]domain.Visit, error) {
	return s.visits.List(ctx, repository.OrderAscending)
}
