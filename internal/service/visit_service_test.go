package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pinmap/internal/domain"
	"pinmap/internal/repository/sqlite"
)

func newVisitService(t *testing.T) VisitService {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "visits.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewVisitRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return NewVisitService(repo)
}

func TestRecordVisit(t *testing.T) {
	svc := newVisitService(t)
	ctx := context.Background()

	visit, err := svc.RecordVisit(ctx, " h1 ", " Ana ", 30, "2024-03-15", "mobile")
	require.NoError(t, err)
	require.NotZero(t, visit.ID)
	require.Equal(t, "h1", visit.VisitorHash)
	require.Equal(t, "Ana", visit.Name)

	visits, err := svc.ExportVisits(ctx)
	require.NoError(t, err)
	require.Len(t, visits, 1)
}

func TestRecordVisit_Validation(t *testing.T) {
	svc := newVisitService(t)
	ctx := context.Background()

	var verr *domain.ValidationError

	_, err := svc.RecordVisit(ctx, "  ", "Ana", 30, "", "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "user_hash", verr.Field)

	_, err = svc.RecordVisit(ctx, "h1", "Ana", -1, "", "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "age", verr.Field)
}
