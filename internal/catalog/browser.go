// Package catalog serves the read side of the book catalogue: title search,
// genre browsing and the filtered public listing. All results are paginated
// and only ever contain public books, except an author's own listing.
package catalog

import (
	"context"
	"strings"

	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/genres"
	"github.com/mrlokans/folio/internal/pagination"
)

// BookLister provides the paginated book queries.
type BookLister interface {
	ListPublic(ctx context.Context, p pagination.Params) ([]entities.Book, int64, error)
	ListByAuthor(ctx context.Context, authorID uint, includePrivate bool, p pagination.Params) ([]entities.Book, int64, error)
	ListByGenres(ctx context.Context, forms []string, order string, p pagination.Params) ([]entities.Book, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]entities.Book, int64, error)
}

// Filter narrows ListBooks. AuthorID takes precedence over Genre.
type Filter struct {
	AuthorID uint
	Genre    string
	ViewerID uint // 0 for anonymous callers
}

// Browser is the catalogue read service.
type Browser struct {
	books BookLister
}

// NewBrowser creates a Browser.
func NewBrowser(books BookLister) *Browser {
	return &Browser{books: books}
}

// Search matches the query against title, author name and description.
// A blank query returns an empty page without touching storage.
func (b *Browser) Search(ctx context.Context, query string, p pagination.Params) (pagination.Page[entities.Book], error) {
	if strings.TrimSpace(query) == "" {
		return pagination.Empty[entities.Book](p), nil
	}
	items, total, err := b.books.Search(ctx, query, p)
	if err != nil {
		return pagination.Page[entities.Book]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// ListByGenre lists public books tagged with the genre named by a URL token,
// including rows stored under the legacy capitalization. Results are ordered
// by id.
func (b *Browser) ListByGenre(ctx context.Context, token string, p pagination.Params) (pagination.Page[entities.Book], error) {
	return b.listGenre(ctx, token, books.OrderIDAscending, p)
}

// ListBooks is the general listing, newest first. With an author filter the
// author sees all of their own books and everyone else sees the public ones.
func (b *Browser) ListBooks(ctx context.Context, f Filter, p pagination.Params) (pagination.Page[entities.Book], error) {
	if strings.TrimSpace(f.Genre) != "" && f.AuthorID == 0 {
		return b.listGenre(ctx, f.Genre, books.OrderNewestFirst, p)
	}

	var (
		items []entities.Book
		total int64
		err   error
	)
	if f.AuthorID != 0 {
		own := f.ViewerID != 0 && f.ViewerID == f.AuthorID
		items, total, err = b.books.ListByAuthor(ctx, f.AuthorID, own, p)
	} else {
		items, total, err = b.books.ListPublic(ctx, p)
	}
	if err != nil {
		return pagination.Page[entities.Book]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

func (b *Browser) listGenre(ctx context.Context, token, order string, p pagination.Params) (pagination.Page[entities.Book], error) {
	forms := genres.MatchForms(token)
	if len(forms) == 0 {
		return pagination.Empty[entities.Book](p), nil
	}
	items, total, err := b.books.ListByGenres(ctx, forms, order, p)
	if err != nil {
		return pagination.Page[entities.Book]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}
