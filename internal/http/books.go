package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/content"
	"github.com/mrlokans/folio/internal/entities"
)

// ContentService authors and reads books and chapters.
type ContentService interface {
	CreateBook(ctx context.Context, authorID uint, in content.BookInput) (*entities.Book, error)
	GetBook(ctx context.Context, viewerID, bookID uint) (*entities.Book, error)
	UpdateBookStatus(ctx context.Context, userID, bookID uint, status entities.BookStatus) (*entities.Book, error)
	CreateChapter(ctx context.Context, userID, bookID uint, in content.ChapterInput) (*entities.Chapter, error)
	UpdateChapterStatus(ctx context.Context, userID, bookID, chapterID uint, status entities.ChapterStatus) (*entities.Chapter, error)
	ListChapters(ctx context.Context, viewerID, bookID uint) ([]entities.Chapter, error)
	ReadChapter(ctx context.Context, viewerID uint, sessionID string, bookID, chapterID uint) (*entities.Chapter, bool, error)
}

// ViewSessions hands out the per-client view session identifier.
type ViewSessions interface {
	ViewSessionID(ctx context.Context) string
}

type BooksController struct {
	content  ContentService
	sessions ViewSessions
}

func NewBooksController(content ContentService, sessions ViewSessions) *BooksController {
	return &BooksController{content: content, sessions: sessions}
}

type createBookRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Language    string   `json:"language" binding:"max=50"`
	Mature      bool     `json:"mature"`
	Status      string   `json:"status" binding:"omitempty,oneof=public private"`
}

type bookStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=public private"`
}

type createChapterRequest struct {
	Title   *string `json:"chapter_title" binding:"omitempty,max=255"`
	Content string  `json:"chapter_content"`
	Status  string  `json:"chapter_status" binding:"omitempty,oneof=draft published"`
}

type chapterStatusRequest struct {
	Status string `json:"chapter_status" binding:"required,oneof=draft published"`
}

// CreateBook creates a book owned by the caller.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := bc.content.CreateBook(c.Request.Context(), GetUserID(c), content.BookInput{
		Title:       req.Title,
		Description: req.Description,
		Genres:      req.Genres,
		Language:    req.Language,
		Mature:      req.Mature,
		Status:      entities.BookStatus(req.Status),
	})
	if err != nil {
		respondError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, newBookResponse(*book))
}

// GetBook returns a public book or one of the caller's own.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.content.GetBook(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(*book))
}

// UpdateBookStatus publishes or hides one of the caller's books.
// PATCH /api/books/:id/status
func (bc *BooksController) UpdateBookStatus(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book, err := bc.content.UpdateBookStatus(c.Request.Context(), GetUserID(c), bookID, entities.BookStatus(req.Status))
	if err != nil {
		respondError(c, err, "update book status")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(*book))
}

// ListChapters lists the chapters visible to the caller.
// GET /api/books/:id/chapters
func (bc *BooksController) ListChapters(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	chapters, err := bc.content.ListChapters(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "list chapters")
		return
	}
	out := make([]ChapterResponse, len(chapters))
	for i, ch := range chapters {
		out[i] = newChapterResponse(ch)
	}
	c.JSON(http.StatusOK, out)
}

// CreateChapter appends a chapter to one of the caller's books.
// POST /api/books/:id/chapters
func (bc *BooksController) CreateChapter(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req createChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	chapter, err := bc.content.CreateChapter(c.Request.Context(), GetUserID(c), bookID, content.ChapterInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  entities.ChapterStatus(req.Status),
	})
	if err != nil {
		respondError(c, err, "create chapter")
		return
	}
	c.JSON(http.StatusCreated, newChapterResponse(*chapter))
}

// UpdateChapterStatus publishes or unpublishes a chapter.
// PATCH /api/books/:id/chapters/:chapterId/status
func (bc *BooksController) UpdateChapterStatus(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	chapterID, ok := parseIDParam(c, "chapterId")
	if !ok {
		return
	}
	var req chapterStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	chapter, err := bc.content.UpdateChapterStatus(c.Request.Context(), GetUserID(c), bookID, chapterID, entities.ChapterStatus(req.Status))
	if err != nil {
		respondError(c, err, "update chapter status")
		return
	}
	c.JSON(http.StatusOK, newChapterResponse(*chapter))
}

// ReadChapter returns a chapter and counts the view once per view session.
// GET /api/books/:id/chapters/:chapterId
func (bc *BooksController) ReadChapter(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	chapterID, ok := parseIDParam(c, "chapterId")
	if !ok {
		return
	}

	sessionID := bc.sessions.ViewSessionID(c.Request.Context())
	chapter, _, err := bc.content.ReadChapter(c.Request.Context(), GetUserID(c), sessionID, bookID, chapterID)
	if err != nil {
		respondError(c, err, "read chapter")
		return
	}
	c.JSON(http.StatusOK, newChapterResponse(*chapter))
}
