package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/database/viewmarkers"
	"github.com/mrlokans/folio/internal/entities"
)

func TestCounter_RecordView_OncePerSession(t *testing.T) {
	db := dbtest.Open(t)
	counter := NewCounter(viewmarkers.NewRepository(db), time.Hour)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	ch1 := dbtest.CreateChapter(t, db, book, 1, entities.ChapterStatusPublished)
	ch2 := dbtest.CreateChapter(t, db, book, 2, entities.ChapterStatusPublished)
	ctx := context.Background()

	counted, err := counter.RecordView(ctx, "s1", book.ID, ch1)
	require.NoError(t, err)
	assert.True(t, counted)

	// Another chapter of the same book in the same session is not counted again.
	counted, err = counter.RecordView(ctx, "s1", book.ID, ch2)
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = counter.RecordView(ctx, "s2", book.ID, ch2)
	require.NoError(t, err)
	assert.True(t, counted)

	assert.Equal(t, int64(2), dbtest.ViewCount(t, db, book.ID))

	viewed, err := counter.HasViewed(ctx, "s1", book.ID)
	require.NoError(t, err)
	assert.True(t, viewed)
}

func TestCounter_RecordView_Skips(t *testing.T) {
	db := dbtest.Open(t)
	counter := NewCounter(viewmarkers.NewRepository(db), time.Hour)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	other := dbtest.CreateBook(t, db, author, "Emma")
	draft := dbtest.CreateChapter(t, db, book, 1, entities.ChapterStatusDraft)
	foreign := dbtest.CreateChapter(t, db, other, 1, entities.ChapterStatusPublished)
	ctx := context.Background()

	tests := []struct {
		name    string
		chapter *entities.Chapter
	}{
		{name: "draft chapter", chapter: draft},
		{name: "chapter of another book", chapter: foreign},
		{name: "no chapter", chapter: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counted, err := counter.RecordView(ctx, "s1", book.ID, tt.chapter)
			require.NoError(t, err)
			assert.False(t, counted)
		})
	}

	assert.Zero(t, dbtest.ViewCount(t, db, book.ID))
	viewed, err := counter.HasViewed(ctx, "s1", book.ID)
	require.NoError(t, err)
	assert.False(t, viewed, "skipped views leave no marker")
}

func TestCounter_RecordView_EmptySession(t *testing.T) {
	db := dbtest.Open(t)
	counter := NewCounter(viewmarkers.NewRepository(db), time.Hour)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	ch := dbtest.CreateChapter(t, db, book, 1, entities.ChapterStatusPublished)

	_, err := counter.RecordView(context.Background(), "", book.ID, ch)
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))
}

func TestCounter_RecordView_ConcurrentSameSession(t *testing.T) {
	db := dbtest.Open(t)
	counter := NewCounter(viewmarkers.NewRepository(db), time.Hour)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune", dbtest.WithViews(10))
	ch := dbtest.CreateChapter(t, db, book, 1, entities.ChapterStatusPublished)

	const n = 16
	var wg sync.WaitGroup
	results := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counted, err := counter.RecordView(context.Background(), "shared", book.ID, ch)
			assert.NoError(t, err)
			results <- counted
		}()
	}
	wg.Wait()
	close(results)

	countedTimes := 0
	for counted := range results {
		if counted {
			countedTimes++
		}
	}
	assert.Equal(t, 1, countedTimes)
	assert.Equal(t, int64(11), dbtest.ViewCount(t, db, book.ID))
}

func TestCounter_RecordView_ConcurrentDistinctSessions(t *testing.T) {
	db := dbtest.Open(t)
	counter := NewCounter(viewmarkers.NewRepository(db), time.Hour)
	author := dbtest.CreateUser(t, db, "Ann")
	book := dbtest.CreateBook(t, db, author, "Dune")
	ch := dbtest.CreateChapter(t, db, book, 1, entities.ChapterStatusPublished)

	sessions := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			_, err := counter.RecordView(context.Background(), session, book.ID, ch)
			assert.NoError(t, err)
		}(s)
	}
	wg.Wait()

	assert.Equal(t, int64(len(sessions)), dbtest.ViewCount(t, db, book.ID))
}
