package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
)

func setupBrowser(t *testing.T) (*gorm.DB, *Browser) {
	db := dbtest.Open(t)
	return db, NewBrowser(books.NewRepository(db))
}

func titles(page pagination.Page[entities.Book]) []string {
	out := make([]string, len(page.Results))
	for i, b := range page.Results {
		out[i] = b.Title
	}
	return out
}

func TestBrowser_Search_Blank(t *testing.T) {
	db, browser := setupBrowser(t)
	author := dbtest.CreateUser(t, db, "Ann")
	dbtest.CreateBook(t, db, author, "Anything")

	page, err := browser.Search(context.Background(), "   ", pagination.NewParams(1, 0, pagination.DefaultLimits()))
	require.NoError(t, err)
	assert.Zero(t, page.Count)
	assert.Empty(t, page.Results)
	assert.Equal(t, 1, page.TotalPages)
}

func TestBrowser_Search_Paginates(t *testing.T) {
	db, browser := setupBrowser(t)
	author := dbtest.CreateUser(t, db, "Ann")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		dbtest.CreateBook(t, db, author, "Dragon "+string(rune('A'+i)), dbtest.CreatedAt(base.Add(time.Duration(i)*time.Minute)))
	}

	page, err := browser.Search(context.Background(), "DRAGON", pagination.NewParams(2, 2, pagination.DefaultLimits()))
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Count)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []string{"Dragon C", "Dragon B"}, titles(page))
	require.NotNil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, 3, *page.Next)
	assert.Equal(t, 1, *page.Previous)

	past, err := browser.Search(context.Background(), "dragon", pagination.NewParams(9, 2, pagination.DefaultLimits()))
	require.NoError(t, err)
	assert.Empty(t, past.Results)
	assert.Equal(t, int64(5), past.Count)
}

func TestBrowser_Search_NonASCIITitle(t *testing.T) {
	db, browser := setupBrowser(t)
	author := dbtest.CreateUser(t, db, "Ann")
	dbtest.CreateBook(t, db, author, "ÉTÉ ÉTERNEL")

	for _, query := range []string{"ÉTÉ", "été", "Éternel"} {
		page, err := browser.Search(context.Background(), query, pagination.NewParams(1, 0, pagination.DefaultLimits()))
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Count, "query %q", query)
		assert.Equal(t, []string{"ÉTÉ ÉTERNEL"}, titles(page))
	}
}

func TestBrowser_ListByGenre(t *testing.T) {
	db, browser := setupBrowser(t)
	author := dbtest.CreateUser(t, db, "Ann")
	canonical := dbtest.CreateBook(t, db, author, "Canonical", dbtest.WithGenres("Sci-Fi"))
	legacy := dbtest.CreateBook(t, db, author, "Legacy", dbtest.WithGenres("Sci-fi"))
	dbtest.CreateBook(t, db, author, "Private", dbtest.WithGenres("Sci-Fi"), dbtest.WithStatus(entities.BookStatusPrivate))
	dbtest.CreateBook(t, db, author, "Other", dbtest.WithGenres("Romance"))

	page, err := browser.ListByGenre(context.Background(), "sci-fi", pagination.NewParams(1, 0, pagination.DefaultLimits()))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, canonical.ID, page.Results[0].ID)
	assert.Equal(t, legacy.ID, page.Results[1].ID)

	empty, err := browser.ListByGenre(context.Background(), "-", pagination.NewParams(1, 0, pagination.DefaultLimits()))
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
}

func TestBrowser_ListBooks(t *testing.T) {
	db, browser := setupBrowser(t)
	ann := dbtest.CreateUser(t, db, "Ann")
	ben := dbtest.CreateUser(t, db, "Ben")
	base := time.Now().Add(-time.Hour)
	dbtest.CreateBook(t, db, ann, "Ann Public", dbtest.WithGenres("Fantasy"), dbtest.CreatedAt(base))
	dbtest.CreateBook(t, db, ann, "Ann Private", dbtest.WithStatus(entities.BookStatusPrivate), dbtest.CreatedAt(base.Add(time.Minute)))
	dbtest.CreateBook(t, db, ben, "Ben Public", dbtest.WithGenres("Dark Fantasy"), dbtest.CreatedAt(base.Add(2*time.Minute)))
	params := pagination.NewParams(1, 0, pagination.DefaultLimits())
	ctx := context.Background()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "default public newest first", filter: Filter{}, want: []string{"Ben Public", "Ann Public"}},
		{name: "own books include private", filter: Filter{AuthorID: ann.ID, ViewerID: ann.ID}, want: []string{"Ann Private", "Ann Public"}},
		{name: "other author public only", filter: Filter{AuthorID: ann.ID, ViewerID: ben.ID}, want: []string{"Ann Public"}},
		{name: "anonymous author filter", filter: Filter{AuthorID: ann.ID}, want: []string{"Ann Public"}},
		{name: "genre filter", filter: Filter{Genre: "dark-fantasy"}, want: []string{"Ben Public"}},
		{name: "author wins over genre", filter: Filter{AuthorID: ben.ID, Genre: "fantasy"}, want: []string{"Ben Public"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := browser.ListBooks(ctx, tt.filter, params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page))
		})
	}
}
