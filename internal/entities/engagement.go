package entities

import "time"

// Favourite is a user's bookmark of a book, unique per (user, book).
type Favourite struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_favourites_user_book"`
	BookID    uint `gorm:"not null;index;uniqueIndex:idx_favourites_user_book"`
	CreatedAt time.Time
}

// Follow is a directed edge from follower to followed, unique per pair.
type Follow struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"not null;index;uniqueIndex:idx_follows_pair"`
	FollowedID uint `gorm:"not null;index;uniqueIndex:idx_follows_pair;check:chk_follows_not_self,follower_id <> followed_id"`
	CreatedAt  time.Time
}

// ViewMarker records that a view session has already been counted for a
// book. Rows expire with the session and are purged in the background.
type ViewMarker struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID string    `gorm:"size:64;not null;uniqueIndex:idx_view_markers_session_book"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_view_markers_session_book"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
