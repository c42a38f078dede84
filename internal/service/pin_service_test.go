package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pinmap/internal/domain"
	"pinmap/internal/filter"
	"pinmap/internal/repository"
)

type fakePinRepo struct {
	pins    []domain.Pin
	listErr error
}

func (f *fakePinRepo) Init(ctx context.Context) error { return nil }

func (f *fakePinRepo) Create(ctx context.Context, pin *domain.Pin) (int64, error) {
	pin.ID = int64(len(f.pins) + 1)
	if pin.CreatedAt.IsZero() {
		pin.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	f.pins = append(f.pins, *pin)
	return pin.ID, nil
}

func (f *fakePinRepo) List(ctx context.Context, order repository.Order) ([]domain.Pin, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Pin, len(f.pins))
	copy(out, f.pins)
	sort.Slice(out, func(i, j int) bool {
		if order == repository.OrderAscending {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func seedPins(repo *fakePinRepo, days ...time.Time) {
	for i, d := range days {
		repo.pins = append(repo.pins, domain.Pin{ID: int64(i + 1), CreatedAt: d})
	}
}

func mustFilter(t *testing.T, p filter.Params) *filter.Filter {
	t.Helper()
	f, err := filter.Parse(p)
	require.NoError(t, err)
	return f
}

func TestCreatePin_Validation(t *testing.T) {
	svc := NewPinService(&fakePinRepo{})
	ctx := context.Background()

	_, err := svc.CreatePin(ctx, "t", "d", 200, 0)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "longitude", verr.Field)

	_, err = svc.CreatePin(ctx, "t", "d", 0, -91)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "latitude", verr.Field)
}

func TestCreatePin_TrimsText(t *testing.T) {
	svc := NewPinService(&fakePinRepo{})

	pin, err := svc.CreatePin(context.Background(), "  A  ", " desc ", -99.1, 19.4)
	require.NoError(t, err)
	require.Equal(t, "A", pin.Title)
	require.Equal(t, "desc", pin.Description)
	require.NotZero(t, pin.ID)
}

func TestListPins_OrderAndFilter(t *testing.T) {
	repo := &fakePinRepo{}
	seedPins(repo,
		time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
	)
	svc := NewPinService(repo)
	ctx := context.Background()

	t.Run("no filter lists newest first", func(t *testing.T) {
		pins, err := svc.ListPins(ctx, mustFilter(t, filter.Params{}))
		require.NoError(t, err)
		require.Len(t, pins, 3)
		require.Equal(t, int64(3), pins[0].ID)
		require.Equal(t, int64(1), pins[2].ID)
	})

	t.Run("month filter keeps only matching pins", func(t *testing.T) {
		pins, err := svc.ListPins(ctx, mustFilter(t, filter.Params{Month: "2024-03"}))
		require.NoError(t, err)
		require.Len(t, pins, 2)
		for _, pin := range pins {
			require.Equal(t, time.March, pin.CreatedAt.Month())
		}
	})

	t.Run("export is ascending", func(t *testing.T) {
		pins, err := svc.ExportPins(ctx, mustFilter(t, filter.Params{Year: "2024"}))
		require.NoError(t, err)
		require.Len(t, pins, 3)
		require.Equal(t, int64(1), pins[0].ID)
		require.Equal(t, int64(3), pins[2].ID)
	})

	t.Run("result is a subset satisfying every predicate", func(t *testing.T) {
		f := mustFilter(t, filter.Params{Month: "2024-03", Start: "2024-03-16"})
		pins, err := svc.ListPins(ctx, f)
		require.NoError(t, err)
		require.Len(t, pins, 1)
		require.True(t, f.Matches(pins[0].CreatedAt))
	})

	t.Run("nil filter matches all", func(t *testing.T) {
		pins, err := svc.ListPins(ctx, nil)
		require.NoError(t, err)
		require.Len(t, pins, 3)
	})
}

func TestListPins_StoreFailure(t *testing.T) {
	storeErr := errors.New("disk gone")
	svc := NewPinService(&fakePinRepo{listErr: storeErr})

	_, err := svc.ListPins(context.Background(), nil)
	require.ErrorIs(t, err, storeErr)
}
