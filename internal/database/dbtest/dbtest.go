// Package dbtest provides throw-away databases and seed helpers for tests.
package dbtest

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/entities"
)

var seq atomic.Int64

// Open creates a migrated SQLite database in the test's temp dir. It is closed
// automatically when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db.DB
}

// CreateUser inserts a user with a unique email.
func CreateUser(t testing.TB, db *gorm.DB, firstName string) *entities.User {
	t.Helper()

	n := seq.Add(1)
	user := &entities.User{
		Email:     fmt.Sprintf("%s.%d@example.com", firstName, n),
		FirstName: firstName,
		LastName:  "Tester",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// BookOption customises a seeded book.
type BookOption func(*entities.Book)

func WithStatus(s entities.BookStatus) BookOption {
	return func(b *entities.Book) { b.Status = s }
}

func WithViews(n int64) BookOption {
	return func(b *entities.Book) { b.ViewCount = n }
}

func WithGenres(g ...string) BookOption {
	return func(b *entities.Book) { b.Genres = g }
}

func WithDescription(d string) BookOption {
	return func(b *entities.Book) { b.Description = d }
}

// CreatedAt pins the creation timestamp, for ordering tests.
func CreatedAt(ts time.Time) BookOption {
	return func(b *entities.Book) { b.CreatedAt = ts }
}

// CreateBook inserts a public book by author unless options say otherwise.
func CreateBook(t testing.TB, db *gorm.DB, author *entities.User, title string, opts ...BookOption) *entities.Book {
	t.Helper()

	book := &entities.Book{
		Title:      title,
		AuthorID:   author.ID,
		AuthorName: author.FirstName,
		Status:     entities.BookStatusPublic,
		Genres:     []string{},
	}
	for _, opt := range opts {
		opt(book)
	}
	require.NoError(t, db.Create(book).Error)
	return book
}

// CreateChapter inserts a chapter with the given number and status.
func CreateChapter(t testing.TB, db *gorm.DB, book *entities.Book, number int, status entities.ChapterStatus) *entities.Chapter {
	t.Helper()

	chapter := &entities.Chapter{
		BookID:  book.ID,
		Number:  number,
		Content: "Once upon a time.",
		Status:  status,
	}
	require.NoError(t, db.Create(chapter).Error)
	return chapter
}

// ViewCount reads a book's current counter straight from storage.
func ViewCount(t testing.TB, db *gorm.DB, bookID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&entities.Book{}).Where("id = ?", bookID).Pluck("view_count", &count).Error)
	return count
}
