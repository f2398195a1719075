// Package favourites stores the user -> book favourite edges.
//
// Edges are unique per (user, book). Add is insert-or-ignore, so concurrent
// adds of the same pair produce exactly one row and exactly one caller sees
// created == true.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	created, err := repo.Add(ctx, userID, bookID)
package favourites

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add creates the favourite edge. It reports false when the edge already existed.
func (r *Repository) Add(ctx context.Context, userID, bookID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Favourite{UserID: userID, BookID: bookID})
	if res.Error != nil {
		return false, fmt.Errorf("add favourite (user %d, book %d): %w", userID, bookID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Remove deletes the favourite edge. It reports false when there was none.
func (r *Repository) Remove(ctx context.Context, userID, bookID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Favourite{})
	if res.Error != nil {
		return false, fmt.Errorf("remove favourite (user %d, book %d): %w", userID, bookID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether the user has favourited the book.
func (r *Repository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Favourite{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check favourite: %w", err)
	}
	return count > 0, nil
}

// ListPublicBooks returns the user's favourited books that are currently
// public, ordered by book id. Edges to private books are kept but hidden.
func (r *Repository) ListPublicBooks(ctx context.Context, userID uint, p pagination.Params) ([]entities.Book, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN favourites ON favourites.book_id = books.id").
			Where("favourites.user_id = ? AND books.status = ?", userID, entities.BookStatusPublic)
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count favourite books: %w", err)
	}
	if total == 0 {
		return []entities.Book{}, 0, nil
	}

	var books []entities.Book
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("books.id ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list favourite books: %w", err)
	}
	return books, total, nil
}
