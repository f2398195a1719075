package http

import (
	"time"

	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/follows"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/ranking"
)

// BookResponse is the public representation of a book.
type BookResponse struct {
	BookID      uint      `json:"book_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Genres      []string  `json:"genres"`
	Language    string    `json:"language"`
	Mature      bool      `json:"mature"`
	Author      uint      `json:"author"`
	AuthorName  string    `json:"author_name"`
	Status      string    `json:"status"`
	ViewCount   int64     `json:"view_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func newBookResponse(b entities.Book) BookResponse {
	genres := []string(b.Genres)
	if genres == nil {
		genres = []string{}
	}
	return BookResponse{
		BookID:      b.ID,
		Title:       b.Title,
		Description: b.Description,
		Genres:      genres,
		Language:    b.Language,
		Mature:      b.Mature,
		Author:      b.AuthorID,
		AuthorName:  b.AuthorName,
		Status:      string(b.Status),
		ViewCount:   b.ViewCount,
		CreatedAt:   b.CreatedAt,
	}
}

func newBookResponses(list []entities.Book) []BookResponse {
	out := make([]BookResponse, len(list))
	for i, b := range list {
		out[i] = newBookResponse(b)
	}
	return out
}

// ChapterResponse is the public representation of a chapter.
type ChapterResponse struct {
	ChapterID uint    `json:"chapter_id"`
	Title     *string `json:"chapter_title"`
	Number    int     `json:"chapter_number"`
	Content   string  `json:"chapter_content"`
	Status    string  `json:"chapter_status"`
	Book      uint    `json:"book"`
}

func newChapterResponse(c entities.Chapter) ChapterResponse {
	return ChapterResponse{
		ChapterID: c.ID,
		Title:     c.Title,
		Number:    c.Number,
		Content:   c.Content,
		Status:    string(c.Status),
		Book:      c.BookID,
	}
}

// UserSummaryResponse describes a user in follower listings.
type UserSummaryResponse struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newUserSummaries(list []follows.UserSummary) []UserSummaryResponse {
	out := make([]UserSummaryResponse, len(list))
	for i, u := range list {
		out[i] = UserSummaryResponse(u)
	}
	return out
}

// AuthorRankResponse is one row of the author leaderboard.
type AuthorRankResponse struct {
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	TotalViews int64  `json:"total_views"`
}

func newAuthorRanks(list []books.AuthorViews) []AuthorRankResponse {
	out := make([]AuthorRankResponse, len(list))
	for i, a := range list {
		out[i] = AuthorRankResponse(a)
	}
	return out
}

// GenreRankResponse is one row of the genre leaderboard.
type GenreRankResponse struct {
	Genre string `json:"genre"`
	Views int64  `json:"views"`
}

func newGenreRanks(list []ranking.GenreViews) []GenreRankResponse {
	out := make([]GenreRankResponse, len(list))
	for i, g := range list {
		out[i] = GenreRankResponse{Genre: g.Genre, Views: g.TotalViews}
	}
	return out
}
