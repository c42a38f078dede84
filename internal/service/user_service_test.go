package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"pinmap/internal/auth"
	"pinmap/internal/domain"
	"pinmap/internal/repository/sqlite"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewUserService(repo)
}

func adminClaims() *auth.Claims {
	return &auth.Claims{
		UserID:   1,
		Username: "root",
		Role:     domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestRegister_Bootstrap(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	t.Run("first admin needs no credentials", func(t *testing.T) {
		user, err := svc.Register(ctx, "root", "password123", domain.RoleAdmin, nil)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
		require.Empty(t, user.PasswordHash, "sanitized user must not leak the hash")
	})

	t.Run("second unauthenticated admin is rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "intruder", "password123", domain.RoleAdmin, nil)
		require.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("second admin with admin capability succeeds", func(t *testing.T) {
		user, err := svc.Register(ctx, "backup", "password123", domain.RoleAdmin, adminClaims())
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, user.Role)
	})

	t.Run("non-admin actor cannot create accounts", func(t *testing.T) {
		claims := adminClaims()
		claims.Role = domain.RoleUser
		_, err := svc.Register(ctx, "nobody", "password123", domain.RoleUser, claims)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestRegister_Validation(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	var verr *domain.ValidationError

	_, err := svc.Register(ctx, "  ", "password123", domain.RoleAdmin, nil)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "username", verr.Field)

	_, err = svc.Register(ctx, "ana", "short", domain.RoleAdmin, nil)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "password", verr.Field)

	_, err = svc.Register(ctx, "ana", "password123", domain.Role("owner"), nil)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "role", verr.Field)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "root", "password123", domain.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "root", "password456", domain.RoleUser, adminClaims())
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "root", "password123", domain.RoleAdmin, nil)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(ctx, "root", "password123")
		require.NoError(t, err)
		require.Equal(t, "root", user.Username)
		require.Equal(t, domain.RoleAdmin, user.Role)
		require.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password and unknown user fail identically", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "root", "wrong-password")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "ghost", "password123")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("usernames are case sensitive", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "Root", "password123")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
