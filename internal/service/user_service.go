package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pinmap/internal/auth"
	"pinmap/internal/domain"
	"pinmap/internal/repository"
)

// UserService describes account lifecycle and credential verification.
//
// Register enforces the bootstrap rule: while zero admin accounts exist an
// admin may be created without credentials; afterwards every registration
// requires a verified admin actor. The zero-admins check is re-run
// atomically with the insert, so concurrent first registrations yield
// exactly one admin.
type UserService interface {
	Register(ctx context.Context, username, password string, role domain.Role, actor *auth.Claims) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, username, password string, role domain.Role, actor *auth.Claims) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, domain.NewValidationError("username", "a non-empty username")
	}
	if password == "" {
		return nil, domain.NewValidationError("password", "a non-empty password")
	}
	if len(password) < 8 {
		return nil, domain.NewValidationError("password", "at least 8 characters")
	}
	if role == "" {
		role = domain.RoleUser
	}
	if role != domain.RoleAdmin && role != domain.RoleUser {
		return nil, domain.NewValidationError("role", "admin or user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if role == domain.RoleAdmin {
		admins, err := s.users.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if admins == 0 {
			_, err := s.users.CreateBootstrapAdmin(ctx, user)
			if err == nil {
				return sanitizeUser(user), nil
			}
			// lost the bootstrap race, fall through to the gated path
			if !errors.Is(err, domain.ErrAdminExists) {
				return nil, err
			}
		}
	}

	if actor == nil {
		return nil, domain.ErrUnauthorized
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
