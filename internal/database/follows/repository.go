// Package follows stores the directed follower -> followed edges between
// users. A self-edge is rejected by a CHECK constraint; callers are expected
// to refuse it earlier with a domain error.
package follows

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/folio/internal/entities"
)

// UserSummary is the public projection of a user in follow listings.
type UserSummary struct {
	UserID    uint
	Email     string
	FirstName string
	LastName  string
}

// Repository handles follow edge database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new follows repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Follow creates the edge. It reports false when the edge already existed.
func (r *Repository) Follow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entities.Follow{FollowerID: followerID, FollowedID: followedID})
	if res.Error != nil {
		return false, fmt.Errorf("follow (%d -> %d): %w", followerID, followedID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Unfollow deletes the edge. It reports false when there was none.
func (r *Repository) Unfollow(ctx context.Context, followerID, followedID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&entities.Follow{})
	if res.Error != nil {
		return false, fmt.Errorf("unfollow (%d -> %d): %w", followerID, followedID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Exists reports whether followerID follows followedID.
func (r *Repository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return count > 0, nil
}

// Followers lists the users following userID, oldest edge first.
func (r *Repository) Followers(ctx context.Context, userID uint) ([]UserSummary, error) {
	return r.summaries(ctx, "follows.follower_id", "follows.followed_id", userID)
}

// Following lists the users userID follows, oldest edge first.
func (r *Repository) Following(ctx context.Context, userID uint) ([]UserSummary, error) {
	return r.summaries(ctx, "follows.followed_id", "follows.follower_id", userID)
}

func (r *Repository) summaries(ctx context.Context, joinColumn, filterColumn string, userID uint) ([]UserSummary, error) {
	summaries := []UserSummary{}
	err := r.db.WithContext(ctx).
		Table("follows").
		Select("users.id AS user_id, users.email, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = "+joinColumn).
		Where(filterColumn+" = ?", userID).
		Order("follows.created_at ASC, follows.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("list follow edges for user %d: %w", userID, err)
	}
	return summaries, nil
}
