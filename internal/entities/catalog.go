package entities

import (
	"time"

	"gorm.io/datatypes"
)

type BookStatus string

const (
	BookStatusPublic  BookStatus = "public"
	BookStatusPrivate BookStatus = "private"
)

type ChapterStatus string

const (
	ChapterStatusDraft     ChapterStatus = "draft"
	ChapterStatusPublished ChapterStatus = "published"
)

// User is the identity collaborator's record. The core references users by ID
// and reads email and names for summaries.
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"uniqueIndex;size:255;not null"`
	FirstName    string     `gorm:"size:100"`
	LastName     string     `gorm:"size:100"`
	DateOfBirth  *time.Time `gorm:"type:date"`
	PasswordHash string     `gorm:"size:255"`
	TokenHash    string     `gorm:"index;size:64"` // SHA-256 of the API token
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Book struct {
	ID          uint                        `gorm:"primaryKey"`
	Title       string                      `gorm:"index;size:255;not null"`
	Description string                      `gorm:"type:text"`
	Genres      datatypes.JSONSlice[string] `gorm:"type:json"`
	Language    string                      `gorm:"size:50"`
	Mature      bool                        `gorm:"default:false"`
	AuthorID    uint                        `gorm:"index;not null"`
	AuthorName  string                      `gorm:"size:100"` // cached author first name
	Status      BookStatus                  `gorm:"index;size:10;default:'private'"`
	ViewCount   int64                       `gorm:"not null;default:0"`
	CreatedAt   time.Time                   `gorm:"index"`
	UpdatedAt   time.Time
}

// IsPublic reports whether the book is visible to everyone.
func (b *Book) IsPublic() bool {
	return b.Status == BookStatusPublic
}

type Chapter struct {
	ID        uint          `gorm:"primaryKey"`
	BookID    uint          `gorm:"not null;uniqueIndex:idx_chapters_book_number"`
	Number    int           `gorm:"not null;uniqueIndex:idx_chapters_book_number"`
	Title     *string       `gorm:"size:255"`
	Content   string        `gorm:"type:text"`
	Status    ChapterStatus `gorm:"size:10;default:'draft'"`
	CreatedAt time.Time
	UpdatedAt time.Time // last modified
}

// IsPublished reports whether the chapter counts towards book views.
func (c *Chapter) IsPublished() bool {
	return c.Status == ChapterStatusPublished
}
