package viewmarkers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/folio/internal/database/dbtest"
)

func TestRepository_MarkSeenAndIncrement(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune", dbtest.WithViews(5))
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	counted, err := repo.MarkSeenAndIncrement(ctx, "session-a", book.ID, expires)
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = repo.MarkSeenAndIncrement(ctx, "session-a", book.ID, expires)
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = repo.MarkSeenAndIncrement(ctx, "session-b", book.ID, expires)
	require.NoError(t, err)
	assert.True(t, counted)

	assert.Equal(t, int64(7), dbtest.ViewCount(t, db, book.ID))

	seen, err := repo.IsSeen(ctx, "session-a", book.ID)
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = repo.IsSeen(ctx, "session-c", book.ID)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestRepository_MarkSeenAndIncrement_Concurrent(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	expires := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.MarkSeenAndIncrement(context.Background(), "same-session", book.ID, expires)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), dbtest.ViewCount(t, db, book.ID))
}

func TestRepository_PurgeExpired(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	ctx := context.Background()
	now := time.Now()

	_, err := repo.MarkSeenAndIncrement(ctx, "old", book.ID, now.Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.MarkSeenAndIncrement(ctx, "fresh", book.ID, now.Add(time.Hour))
	require.NoError(t, err)

	purged, err := repo.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	seen, err := repo.IsSeen(ctx, "old", book.ID)
	require.NoError(t, err)
	assert.False(t, seen)

	// Purging never rolls the counter back.
	assert.Equal(t, int64(2), dbtest.ViewCount(t, db, book.ID))
}
