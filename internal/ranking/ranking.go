// Package ranking builds the public leaderboards: most viewed books, authors
// and genres. Only public books contribute.
package ranking

import (
	"context"
	"sort"

	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/entities"
)

// Default leaderboard sizes.
const (
	DefaultBooksLimit   = 10
	DefaultAuthorsLimit = 7
	DefaultGenresLimit  = 10
)

// Source provides the aggregation inputs.
type Source interface {
	TopBooks(ctx context.Context, limit int) ([]entities.Book, error)
	TopAuthors(ctx context.Context, limit int) ([]books.AuthorViews, error)
	PublicGenreSets(ctx context.Context) ([]books.GenreSet, error)
}

// GenreViews is one row of the genre leaderboard.
type GenreViews struct {
	Genre      string
	TotalViews int64
}

// Engine computes leaderboards.
type Engine struct {
	source Source
}

// NewEngine creates an Engine.
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// TopBooks returns public books by view count, ties broken by id.
func (e *Engine) TopBooks(ctx context.Context, limit int) ([]entities.Book, error) {
	return e.source.TopBooks(ctx, orDefault(limit, DefaultBooksLimit))
}

// TopAuthors returns authors by the summed views of their public books.
func (e *Engine) TopAuthors(ctx context.Context, limit int) ([]books.AuthorViews, error) {
	return e.source.TopAuthors(ctx, orDefault(limit, DefaultAuthorsLimit))
}

// TopGenres credits each public book's full view count to every genre it
// lists, then orders by total descending and genre name ascending.
func (e *Engine) TopGenres(ctx context.Context, limit int) ([]GenreViews, error) {
	sets, err := e.source.PublicGenreSets(ctx)
	if err != nil {
		return nil, err
	}
	return aggregateGenres(sets, orDefault(limit, DefaultGenresLimit)), nil
}

func aggregateGenres(sets []books.GenreSet, limit int) []GenreViews {
	totals := make(map[string]int64)
	for _, set := range sets {
		seen := make(map[string]struct{}, len(set.Genres))
		for _, g := range set.Genres {
			if g == "" {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			totals[g] += set.ViewCount
		}
	}

	rows := make([]GenreViews, 0, len(totals))
	for g, total := range totals {
		rows = append(rows, GenreViews{Genre: g, TotalViews: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalViews != rows[j].TotalViews {
			return rows[i].TotalViews > rows[j].TotalViews
		}
		return rows[i].Genre < rows[j].Genre
	})

	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func orDefault(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return limit
}
