package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/database/viewmarkers"
	"github.com/mrlokans/folio/internal/metrics"
)

type failingPurger struct{}

func (failingPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestPurgeViewMarkersTaskConfig(t *testing.T) {
	cfg := PurgeViewMarkersTask{}.Config()

	assert.Equal(t, "purge_view_markers", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestPurgeViewMarkersProcessor(t *testing.T) {
	db := dbtest.Open(t)
	repo := viewmarkers.NewRepository(db)
	ctx := context.Background()
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Saga")

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := repo.MarkSeenAndIncrement(ctx, "expired", book.ID, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.MarkSeenAndIncrement(ctx, "live", book.ID, now.Add(time.Hour))
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.ViewMarkersPurged)
	process := PurgeViewMarkersProcessor(repo, func() time.Time { return now })
	require.NoError(t, process(ctx, PurgeViewMarkersTask{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ViewMarkersPurged)-before)

	seen, err := repo.IsSeen(ctx, "expired", book.ID)
	require.NoError(t, err)
	assert.False(t, seen)
	seen, err = repo.IsSeen(ctx, "live", book.ID)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestPurgeViewMarkersProcessor_Errors(t *testing.T) {
	err := PurgeViewMarkersProcessor(nil, nil)(context.Background(), PurgeViewMarkersTask{})
	assert.Error(t, err)

	err = PurgeViewMarkersProcessor(failingPurger{}, nil)(context.Background(), PurgeViewMarkersTask{})
	assert.ErrorContains(t, err, "database is locked")
}
