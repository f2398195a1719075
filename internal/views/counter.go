// Package views counts chapter reads once per view session and book.
package views

import (
	"context"
	"time"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/metrics"
)

// MarkerStore performs the atomic test-and-set of a (session, book) marker
// together with the relative counter bump.
type MarkerStore interface {
	MarkSeenAndIncrement(ctx context.Context, sessionID string, bookID uint, expiresAt time.Time) (bool, error)
	IsSeen(ctx context.Context, sessionID string, bookID uint) (bool, error)
}

// Counter records chapter views.
type Counter struct {
	markers  MarkerStore
	lifetime time.Duration
	now      func() time.Time
}

// NewCounter creates a Counter whose markers live as long as a view session.
func NewCounter(markers MarkerStore, sessionLifetime time.Duration) *Counter {
	return &Counter{markers: markers, lifetime: sessionLifetime, now: time.Now}
}

// RecordView counts a read of chapter for bookID by the given view session.
// Draft chapters and chapters of another book are ignored. It reports whether
// the book's counter moved.
func (c *Counter) RecordView(ctx context.Context, sessionID string, bookID uint, chapter *entities.Chapter) (bool, error) {
	if chapter == nil || !chapter.IsPublished() || chapter.BookID != bookID {
		metrics.RecordView(metrics.ViewSkipped)
		return false, nil
	}
	if sessionID == "" {
		return false, apperr.Invalid("view session id is required")
	}

	counted, err := c.markers.MarkSeenAndIncrement(ctx, sessionID, bookID, c.now().Add(c.lifetime))
	if err != nil {
		return false, err
	}

	if counted {
		metrics.RecordView(metrics.ViewCounted)
		logging.Debug().Uint("book_id", bookID).Uint("chapter_id", chapter.ID).Msg("view counted")
	} else {
		metrics.RecordView(metrics.ViewDuplicate)
	}
	return counted, nil
}

// HasViewed reports whether the session's view of the book was already counted.
func (c *Counter) HasViewed(ctx context.Context, sessionID string, bookID uint) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	return c.markers.IsSeen(ctx, sessionID, bookID)
}
