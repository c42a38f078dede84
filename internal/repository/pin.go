package repository

import (
	"context"

	"pinmap/internal/domain"
)

// Order selects the id ordering of listed rows. Listings for human browsing
// use descending order, exports use ascending order.
type Order int

const (
	OrderDescending Order = iota
	OrderAscending
)

// PinRepository exposes persistence operations for Pin entities.
type PinRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, pin *domain.Pin) (int64, error)
	List(ctx context.Context, order Order) ([]domain.Pin, error)
}

// VisitRepository exposes persistence operations for Visit entities.
type VisitRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, visit *domain.Visit) (int64, error)
	List(ctx context.Context, order Order) ([]domain.Visit, error)
}
