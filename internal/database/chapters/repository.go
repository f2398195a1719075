// Package chapters provides database operations for chapters. The engagement
// core only reads a chapter's status and book to gate view counting; creation
// and status changes exist for the content endpoints.
package chapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/entities"
)

// Repository handles chapter database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new chapters repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendChapter inserts the chapter as the book's next number (max + 1).
// Numbering and insert share one transaction so concurrent appends cannot
// pick the same number.
func (r *Repository) AppendChapter(ctx context.Context, chapter *entities.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Model(&entities.Chapter{}).
			Where("book_id = ?", chapter.BookID).
			Select("COALESCE(MAX(number), 0)").
			Scan(&last).Error
		if err != nil {
			return fmt.Errorf("next chapter number for book %d: %w", chapter.BookID, err)
		}

		chapter.Number = last + 1
		if err := tx.Create(chapter).Error; err != nil {
			return fmt.Errorf("create chapter: %w", err)
		}
		return nil
	})
}

// GetChapter retrieves a chapter that belongs to bookID.
func (r *Repository) GetChapter(ctx context.Context, bookID, chapterID uint) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.WithContext(ctx).
		Where("id = ? AND book_id = ?", chapterID, bookID).
		First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("chapter", chapterID)
	}
	if err != nil {
		return nil, fmt.Errorf("get chapter %d: %w", chapterID, err)
	}
	return &chapter, nil
}

// ListChapters returns a book's chapters in reading order.
func (r *Repository) ListChapters(ctx context.Context, bookID uint, publishedOnly bool) ([]entities.Chapter, error) {
	query := r.db.WithContext(ctx).Where("book_id = ?", bookID)
	if publishedOnly {
		query = query.Where("status = ?", entities.ChapterStatusPublished)
	}

	var chapters []entities.Chapter
	if err := query.Order("number ASC").Find(&chapters).Error; err != nil {
		return nil, fmt.Errorf("list chapters for book %d: %w", bookID, err)
	}
	return chapters, nil
}

// UpdateStatus publishes or unpublishes a chapter.
func (r *Repository) UpdateStatus(ctx context.Context, bookID, chapterID uint, status entities.ChapterStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.Chapter{}).
		Where("id = ? AND book_id = ?", chapterID, bookID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update chapter %d status: %w", chapterID, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("chapter", chapterID)
	}
	return nil
}
