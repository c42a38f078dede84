package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pinmap/internal/domain"
	"pinmap/internal/repository/sqlite"
)

func newSettingsService(t *testing.T) SettingsService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewSettingsRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewSettingsService(repo)
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	s, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultZoom, s.Zoom)

	updated, err := svc.Update(ctx, -99.13, 19.43, 12)
	require.NoError(t, err)
	require.Equal(t, -99.13, updated.CenterLongitude)
	require.Equal(t, 19.43, updated.CenterLatitude)
	require.Equal(t, 12, updated.Zoom)

	again, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, *updated, *again)
}

func TestSettings_UpdateValidation(t *testing.T) {
	svc := newSettingsService(t)
	ctx := context.Background()

	var verr *domain.ValidationError

	_, err := svc.Update(ctx, 181, 0, 5)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "center_lng", verr.Field)

	_, err = svc.Update(ctx, 0, 91, 5)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "center_lat", verr.Field)

	_, err = svc.Update(ctx, 0, 0, 23)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "zoom", verr.Field)

	// rejected updates leave the row untouched
	s, err := svc.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultZoom, s.Zoom)
}
