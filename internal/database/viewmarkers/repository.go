// Package viewmarkers persists the per-session "already counted" markers used
// by view counting. A marker row and the counter bump it guards are written in
// the same transaction, so a book's view_count only ever moves together with
// a freshly inserted marker.
package viewmarkers

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/folio/internal/entities"
)

// Repository handles view marker database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new view marker repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// MarkSeenAndIncrement inserts the (session, book) marker and, only if it was
// not present, increments the book's view counter. It reports whether the
// counter moved.
func (r *Repository) MarkSeenAndIncrement(ctx context.Context, sessionID string, bookID uint, expiresAt time.Time) (bool, error) {
	var counted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entities.ViewMarker{SessionID: sessionID, BookID: bookID, ExpiresAt: expiresAt})
		if res.Error != nil {
			return fmt.Errorf("insert view marker: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		upd := tx.Model(&entities.Book{}).
			Where("id = ?", bookID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if upd.Error != nil {
			return fmt.Errorf("increment view count for book %d: %w", bookID, upd.Error)
		}
		counted = upd.RowsAffected == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return counted, nil
}

// IsSeen reports whether the session already has a marker for the book.
func (r *Repository) IsSeen(ctx context.Context, sessionID string, bookID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.ViewMarker{}).
		Where("session_id = ? AND book_id = ?", sessionID, bookID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check view marker: %w", err)
	}
	return count > 0, nil
}

// PurgeExpired deletes markers whose session has expired and returns how
// many rows were removed.
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&entities.ViewMarker{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge expired view markers: %w", res.Error)
	}
	return res.RowsAffected, nil
}
