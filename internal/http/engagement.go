package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/engagement"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
)

// EngagementService is the favourite and follow ledger used by the controller.
type EngagementService interface {
	AddFavourite(ctx context.Context, userID, bookID uint) (bool, error)
	RemoveFavourite(ctx context.Context, userID, bookID uint) (bool, error)
	IsFavourite(ctx context.Context, userID, bookID uint) (bool, error)
	ListFavourites(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[entities.Book], error)
	Follow(ctx context.Context, followerID, targetID uint) (engagement.FollowResult, error)
	Unfollow(ctx context.Context, followerID, targetID uint) (engagement.FollowResult, error)
	FollowStatus(ctx context.Context, followerID, targetID uint) (bool, error)
	ListFollowers(ctx context.Context, userID uint) (engagement.UserList, error)
	ListFollowing(ctx context.Context, userID uint) (engagement.UserList, error)
}

type EngagementController struct {
	ledger EngagementService
	limits pagination.Limits
}

func NewEngagementController(ledger EngagementService, limits pagination.Limits) *EngagementController {
	return &EngagementController{ledger: ledger, limits: limits}
}

// FavouriteStatus reports whether the caller favourited a book.
// GET /api/books/:id/favourite
func (ec *EngagementController) FavouriteStatus(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fav, err := ec.ledger.IsFavourite(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "check favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favourite": fav})
}

// AddFavourite favourites a book for the caller.
// POST /api/books/:id/favourite
func (ec *EngagementController) AddFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	created, err := ec.ledger.AddFavourite(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "add favourite")
		return
	}

	status := "added"
	if !created {
		status = "already_exists"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// RemoveFavourite removes a book from the caller's favourites.
// DELETE /api/books/:id/favourite
func (ec *EngagementController) RemoveFavourite(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := ec.ledger.RemoveFavourite(c.Request.Context(), GetUserID(c), bookID)
	if err != nil {
		respondError(c, err, "remove favourite")
		return
	}

	status := "removed"
	if !removed {
		status = "not_found"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListFavourites pages through the caller's public favourites.
// GET /api/favourites
func (ec *EngagementController) ListFavourites(c *gin.Context) {
	p := pageParams(c, ec.limits)
	page, err := ec.ledger.ListFavourites(c.Request.Context(), GetUserID(c), p)
	if err != nil {
		respondError(c, err, "list favourites")
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, newBookResponse))
}

// Follow makes the caller follow a user.
// POST /api/users/:id/follow
func (ec *EngagementController) Follow(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res, err := ec.ledger.Follow(c.Request.Context(), GetUserID(c), targetID)
	if err != nil {
		respondError(c, err, "follow")
		return
	}
	c.JSON(http.StatusCreated, DetailResponse{Detail: fmt.Sprintf("Successfully followed %s", res.Target.Email)})
}

// Unfollow removes the caller's follow of a user.
// DELETE /api/users/:id/follow
func (ec *EngagementController) Unfollow(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	res, err := ec.ledger.Unfollow(c.Request.Context(), GetUserID(c), targetID)
	if err != nil {
		respondError(c, err, "unfollow")
		return
	}
	if !res.Changed {
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "You were not following this user."})
		return
	}
	c.JSON(http.StatusOK, DetailResponse{Detail: fmt.Sprintf("Successfully unfollowed %s", res.Target.Email)})
}

// FollowStatus reports whether the caller follows a user.
// GET /api/users/:id/follow
func (ec *EngagementController) FollowStatus(c *gin.Context) {
	targetID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	following, err := ec.ledger.FollowStatus(c.Request.Context(), GetUserID(c), targetID)
	if err != nil {
		respondError(c, err, "follow status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_following": following, "target_user_id": targetID})
}

// Followers lists who follows a user.
// GET /api/users/:id/followers
func (ec *EngagementController) Followers(c *gin.Context) {
	ec.listUsers(c, "followers", ec.ledger.ListFollowers)
}

// Following lists whom a user follows.
// GET /api/users/:id/following
func (ec *EngagementController) Following(c *gin.Context) {
	ec.listUsers(c, "following", ec.ledger.ListFollowing)
}

func (ec *EngagementController) listUsers(c *gin.Context, key string, fetch func(context.Context, uint) (engagement.UserList, error)) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	list, err := fetch(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "list "+key)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": list.Count, key: newUserSummaries(list.Users)})
}
