package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/entities"
)

func TestEngine_TopGenres_FullCreditPerGenre(t *testing.T) {
	db := dbtest.Open(t)
	engine := NewEngine(books.NewRepository(db))
	author := dbtest.CreateUser(t, db, "Ann")

	dbtest.CreateBook(t, db, author, "Both", dbtest.WithViews(50), dbtest.WithGenres("Fiction", "Drama"))
	dbtest.CreateBook(t, db, author, "Hidden", dbtest.WithViews(500), dbtest.WithGenres("Horror"),
		dbtest.WithStatus(entities.BookStatusPrivate))

	rows, err := engine.TopGenres(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, GenreViews{Genre: "Drama", TotalViews: 50}, rows[0])
	assert.Equal(t, GenreViews{Genre: "Fiction", TotalViews: 50}, rows[1])
}

func TestEngine_TopBooksAndAuthors_Defaults(t *testing.T) {
	db := dbtest.Open(t)
	engine := NewEngine(books.NewRepository(db))

	for i := 0; i < 9; i++ {
		author := dbtest.CreateUser(t, db, "Author")
		dbtest.CreateBook(t, db, author, "Book", dbtest.WithViews(int64(i)))
		dbtest.CreateBook(t, db, author, "Book", dbtest.WithViews(int64(i)))
	}

	top, err := engine.TopBooks(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, top, DefaultBooksLimit)
	assert.Equal(t, int64(8), top[0].ViewCount)

	authors, err := engine.TopAuthors(context.Background(), -1)
	require.NoError(t, err)
	assert.Len(t, authors, DefaultAuthorsLimit)
	assert.Equal(t, int64(16), authors[0].TotalViews)

	limited, err := engine.TopBooks(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestAggregateGenres(t *testing.T) {
	sets := []books.GenreSet{
		{ID: 1, Genres: []string{"Fantasy", "Romance"}, ViewCount: 10},
		{ID: 2, Genres: []string{"Fantasy"}, ViewCount: 5},
		{ID: 3, Genres: []string{"Romance", "Romance", ""}, ViewCount: 3},
		{ID: 4, Genres: nil, ViewCount: 100},
		{ID: 5, Genres: []string{"Western"}, ViewCount: 0},
	}

	rows := aggregateGenres(sets, 10)
	assert.Equal(t, []GenreViews{
		{Genre: "Fantasy", TotalViews: 15},
		{Genre: "Romance", TotalViews: 13},
		{Genre: "Western", TotalViews: 0},
	}, rows)

	assert.Len(t, aggregateGenres(sets, 1), 1)
	assert.Empty(t, aggregateGenres(nil, 10))
}
