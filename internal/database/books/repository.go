// Package books provides read and aggregation queries over the books table:
// public listings, genre containment, search and the leaderboard sources.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	items, total, err := repo.Search(ctx, "dragon", pagination.NewParams(1, 0, limits))
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
)

// Orderings used by the listings.
const (
	OrderNewestFirst = "books.created_at DESC, books.id DESC"
	OrderIDAscending = "books.id ASC"
)

// AuthorViews is one row of the per-author view aggregation.
type AuthorViews struct {
	AuthorID   uint
	AuthorName string
	TotalViews int64
}

// GenreSet is the projection used for genre leaderboards.
type GenreSet struct {
	ID        uint
	Genres    []string
	ViewCount int64
}

// Repository handles book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateBookWithChapter inserts a book and its opening chapter in one
// transaction. The chapter's BookID is filled in from the new book.
func (r *Repository) CreateBookWithChapter(ctx context.Context, book *entities.Book, chapter *entities.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		chapter.BookID = book.ID
		if err := tx.Create(chapter).Error; err != nil {
			return fmt.Errorf("create first chapter: %w", err)
		}
		return nil
	})
}

// GetBookByID retrieves a book regardless of status.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("book", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// BookExists reports whether a book with the ID exists.
func (r *Repository) BookExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check book %d: %w", id, err)
	}
	return count > 0, nil
}

// UpdateStatus changes a book's visibility.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, status entities.BookStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.Book{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update book %d status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("book", id)
	}
	return nil
}

// ListPublic returns public books, newest first.
func (r *Repository) ListPublic(ctx context.Context, p pagination.Params) ([]entities.Book, int64, error) {
	return r.page(ctx, publicOnly, OrderNewestFirst, p)
}

// ListByAuthor returns an author's books, newest first. Private books are
// included only when includePrivate is set (the author browsing their own).
func (r *Repository) ListByAuthor(ctx context.Context, authorID uint, includePrivate bool, p pagination.Params) ([]entities.Book, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("books.author_id = ?", authorID)
		if !includePrivate {
			db = publicOnly(db)
		}
		return db
	}
	return r.page(ctx, scope, OrderNewestFirst, p)
}

// ListByGenres returns public books whose genre set contains any of forms.
func (r *Repository) ListByGenres(ctx context.Context, forms []string, order string, p pagination.Params) ([]entities.Book, int64, error) {
	if len(forms) == 0 {
		return []entities.Book{}, 0, nil
	}
	scope := func(db *gorm.DB) *gorm.DB {
		return publicOnly(db).Where(
			"EXISTS (SELECT 1 FROM json_each(books.genres) WHERE json_each.value IN ?)", forms)
	}
	return r.page(ctx, scope, order, p)
}

// Search does a case-insensitive substring match on title, author name and
// description over public books, newest first. Blank queries match nothing.
func (r *Repository) Search(ctx context.Context, query string, p pagination.Params) ([]entities.Book, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entities.Book{}, 0, nil
	}
	pattern := "%" + escapeLike(database.Fold(query)) + "%"
	scope := func(db *gorm.DB) *gorm.DB {
		return publicOnly(db).Where(
			`(fold(books.title) LIKE ? ESCAPE '\' OR fold(books.author_name) LIKE ? ESCAPE '\' OR fold(COALESCE(books.description, '')) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern)
	}
	return r.page(ctx, scope, OrderNewestFirst, p)
}

// TopBooks returns the most viewed public books, ties broken by ID.
func (r *Repository) TopBooks(ctx context.Context, limit int) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Scopes(publicOnly).
		Order("books.view_count DESC, books.id ASC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("top books: %w", err)
	}
	return books, nil
}

// TopAuthors sums public book views per author and joins the author's first
// name, ties broken by author ID.
func (r *Repository) TopAuthors(ctx context.Context, limit int) ([]AuthorViews, error) {
	var rows []AuthorViews
	err := r.db.WithContext(ctx).
		Table("books").
		Select("books.author_id AS author_id, users.first_name AS author_name, SUM(books.view_count) AS total_views").
		Joins("JOIN users ON users.id = books.author_id").
		Where("books.status = ?", entities.BookStatusPublic).
		Group("books.author_id, users.first_name").
		Order("total_views DESC, books.author_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top authors: %w", err)
	}
	return rows, nil
}

// PublicGenreSets returns the genre set and view count of every public book.
func (r *Repository) PublicGenreSets(ctx context.Context) ([]GenreSet, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).
		Scopes(publicOnly).
		Select("id", "genres", "view_count").
		Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("public genre sets: %w", err)
	}

	sets := make([]GenreSet, len(books))
	for i, b := range books {
		sets[i] = GenreSet{ID: b.ID, Genres: b.Genres, ViewCount: b.ViewCount}
	}
	return sets, nil
}

func (r *Repository) page(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string, p pagination.Params) ([]entities.Book, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}
	if total == 0 {
		return []entities.Book{}, 0, nil
	}

	var books []entities.Book
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order(order).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return books, total, nil
}

func publicOnly(db *gorm.DB) *gorm.DB {
	return db.Where("books.status = ?", entities.BookStatusPublic)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
