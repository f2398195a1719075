// Package content is the minimal authoring side of the catalogue: creating
// books and chapters, publishing them, and reading a chapter (which records a
// view). Only the author may change a book or its chapters.
package content

import (
	"context"
	"strings"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/genres"
	"github.com/mrlokans/folio/internal/logging"
)

const firstChapterTitle = "Chapter 1"

// BookStore persists books.
type BookStore interface {
	CreateBookWithChapter(ctx context.Context, book *entities.Book, chapter *entities.Chapter) error
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	UpdateStatus(ctx context.Context, id uint, status entities.BookStatus) error
}

// ChapterStore persists chapters.
type ChapterStore interface {
	AppendChapter(ctx context.Context, chapter *entities.Chapter) error
	GetChapter(ctx context.Context, bookID, chapterID uint) (*entities.Chapter, error)
	ListChapters(ctx context.Context, bookID uint, publishedOnly bool) ([]entities.Chapter, error)
	UpdateStatus(ctx context.Context, bookID, chapterID uint, status entities.ChapterStatus) error
}

// UserGetter resolves the author of a new book.
type UserGetter interface {
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// ViewRecorder counts a chapter read.
type ViewRecorder interface {
	RecordView(ctx context.Context, sessionID string, bookID uint, chapter *entities.Chapter) (bool, error)
}

// BookInput is the payload for a new book.
type BookInput struct {
	Title       string
	Description string
	Genres      []string
	Language    string
	Mature      bool
	Status      entities.BookStatus
}

// ChapterInput is the payload for a new chapter.
type ChapterInput struct {
	Title   *string
	Content string
	Status  entities.ChapterStatus
}

// Service implements book and chapter authoring.
type Service struct {
	books    BookStore
	chapters ChapterStore
	users    UserGetter
	views    ViewRecorder
}

// NewService creates a content Service.
func NewService(books BookStore, chapters ChapterStore, users UserGetter, views ViewRecorder) *Service {
	return &Service{books: books, chapters: chapters, users: users, views: views}
}

// CreateBook creates a book owned by authorID together with a draft
// "Chapter 1". Genres are stored canonicalized and the author's first name is
// cached on the book.
func (s *Service) CreateBook(ctx context.Context, authorID uint, in BookInput) (*entities.Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Invalid("title is required")
	}
	status := in.Status
	if status == "" {
		status = entities.BookStatusPrivate
	}
	if !validBookStatus(status) {
		return nil, apperr.Invalid("unknown book status %q", status)
	}

	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		Title:       title,
		Description: in.Description,
		Genres:      genres.CanonicalizeAll(in.Genres),
		Language:    in.Language,
		Mature:      in.Mature,
		AuthorID:    author.ID,
		AuthorName:  author.FirstName,
		Status:      status,
	}
	chapterTitle := firstChapterTitle
	chapter := &entities.Chapter{
		Number:  1,
		Title:   &chapterTitle,
		Content: " ",
		Status:  entities.ChapterStatusDraft,
	}
	if err := s.books.CreateBookWithChapter(ctx, book, chapter); err != nil {
		return nil, err
	}

	logging.Info().Uint("book_id", book.ID).Uint("author_id", author.ID).Msg("book created")
	return book, nil
}

// GetBook returns a book visible to viewerID: public books, or the viewer's
// own private ones. Other private books are reported as not found.
func (s *Service) GetBook(ctx context.Context, viewerID, bookID uint) (*entities.Book, error) {
	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.IsPublic() && book.AuthorID != viewerID {
		return nil, apperr.NotFound("book", bookID)
	}
	return book, nil
}

// UpdateBookStatus publishes or hides a book. Only the author may do so.
func (s *Service) UpdateBookStatus(ctx context.Context, userID, bookID uint, status entities.BookStatus) (*entities.Book, error) {
	if !validBookStatus(status) {
		return nil, apperr.Invalid("unknown book status %q", status)
	}
	book, err := s.ownedBook(ctx, userID, bookID, "update")
	if err != nil {
		return nil, err
	}
	if err := s.books.UpdateStatus(ctx, bookID, status); err != nil {
		return nil, err
	}
	book.Status = status
	return book, nil
}

// CreateChapter appends a chapter to the author's book, numbered after the
// current last chapter.
func (s *Service) CreateChapter(ctx context.Context, userID, bookID uint, in ChapterInput) (*entities.Chapter, error) {
	status := in.Status
	if status == "" {
		status = entities.ChapterStatusDraft
	}
	if !validChapterStatus(status) {
		return nil, apperr.Invalid("unknown chapter status %q", status)
	}
	if _, err := s.ownedBook(ctx, userID, bookID, "add chapter to"); err != nil {
		return nil, err
	}

	chapter := &entities.Chapter{
		BookID:  bookID,
		Title:   in.Title,
		Content: in.Content,
		Status:  status,
	}
	if err := s.chapters.AppendChapter(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// UpdateChapterStatus publishes or unpublishes a chapter of the author's book.
func (s *Service) UpdateChapterStatus(ctx context.Context, userID, bookID, chapterID uint, status entities.ChapterStatus) (*entities.Chapter, error) {
	if !validChapterStatus(status) {
		return nil, apperr.Invalid("unknown chapter status %q", status)
	}
	if _, err := s.ownedBook(ctx, userID, bookID, "update"); err != nil {
		return nil, err
	}
	if err := s.chapters.UpdateStatus(ctx, bookID, chapterID, status); err != nil {
		return nil, err
	}
	return s.chapters.GetChapter(ctx, bookID, chapterID)
}

// ListChapters returns a book's chapters in order. Readers other than the
// author only see published chapters.
func (s *Service) ListChapters(ctx context.Context, viewerID, bookID uint) ([]entities.Chapter, error) {
	book, err := s.GetBook(ctx, viewerID, bookID)
	if err != nil {
		return nil, err
	}
	return s.chapters.ListChapters(ctx, bookID, book.AuthorID != viewerID)
}

// ReadChapter returns a chapter and records the view for the session. Drafts
// are visible to the author only. The returned flag reports whether the
// book's view counter moved.
func (s *Service) ReadChapter(ctx context.Context, viewerID uint, sessionID string, bookID, chapterID uint) (*entities.Chapter, bool, error) {
	book, err := s.GetBook(ctx, viewerID, bookID)
	if err != nil {
		return nil, false, err
	}
	chapter, err := s.chapters.GetChapter(ctx, bookID, chapterID)
	if err != nil {
		return nil, false, err
	}
	if !chapter.IsPublished() && book.AuthorID != viewerID {
		return nil, false, apperr.NotFound("chapter", chapterID)
	}

	counted, err := s.views.RecordView(ctx, sessionID, bookID, chapter)
	if err != nil {
		return nil, false, err
	}
	return chapter, counted, nil
}

func (s *Service) ownedBook(ctx context.Context, userID, bookID uint, action string) (*entities.Book, error) {
	book, err := s.books.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book.AuthorID != userID {
		return nil, apperr.Forbidden(action, "book", bookID)
	}
	return book, nil
}

func validBookStatus(s entities.BookStatus) bool {
	return s == entities.BookStatusPublic || s == entities.BookStatusPrivate
}

func validChapterStatus(s entities.ChapterStatus) bool {
	return s == entities.ChapterStatusDraft || s == entities.ChapterStatusPublished
}
