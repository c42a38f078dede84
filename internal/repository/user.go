package repository

import (
	"context"

	"pinmap/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	// CreateBootstrapAdmin inserts an admin account only while zero admin
	// accounts exist. The check and the insert run in one transaction;
	// a lost race returns domain.ErrAdminExists.
	CreateBootstrapAdmin(ctx context.Context, user *domain.User) (int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
