// Package engagement implements the favourite and follow ledger.
//
// The ledger validates the referenced book or user, then delegates the edge
// mutation to a store that performs it as a single insert-or-ignore or delete
// statement. Uniqueness is enforced by the storage indexes, so concurrent
// identical requests converge to one edge.
package engagement

import (
	"context"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/database/follows"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/metrics"
	"github.com/mrlokans/folio/internal/pagination"
)

// BookChecker reports whether a book exists.
type BookChecker interface {
	BookExists(ctx context.Context, id uint) (bool, error)
}

// UserGetter resolves users by id.
type UserGetter interface {
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// FavouriteStore persists favourite edges.
type FavouriteStore interface {
	Add(ctx context.Context, userID, bookID uint) (bool, error)
	Remove(ctx context.Context, userID, bookID uint) (bool, error)
	Exists(ctx context.Context, userID, bookID uint) (bool, error)
	ListPublicBooks(ctx context.Context, userID uint, p pagination.Params) ([]entities.Book, int64, error)
}

// FollowStore persists follow edges.
type FollowStore interface {
	Follow(ctx context.Context, followerID, followedID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID uint) (bool, error)
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	Followers(ctx context.Context, userID uint) ([]follows.UserSummary, error)
	Following(ctx context.Context, userID uint) ([]follows.UserSummary, error)
}

// FollowResult describes the outcome of Follow and Unfollow.
type FollowResult struct {
	Changed bool
	Target  *entities.User
}

// UserList is a follower or following listing.
type UserList struct {
	Count int
	Users []follows.UserSummary
}

// Ledger is the favourite and follow service.
type Ledger struct {
	books      BookChecker
	users      UserGetter
	favourites FavouriteStore
	follows    FollowStore
}

// NewLedger creates a Ledger.
func NewLedger(books BookChecker, users UserGetter, favourites FavouriteStore, follows FollowStore) *Ledger {
	return &Ledger{books: books, users: users, favourites: favourites, follows: follows}
}

// AddFavourite favourites the book for the user. It reports false when the
// book was already a favourite.
func (l *Ledger) AddFavourite(ctx context.Context, userID, bookID uint) (bool, error) {
	if err := l.requireBook(ctx, bookID); err != nil {
		return false, err
	}

	created, err := l.favourites.Add(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	metrics.RecordEdge("favourite", "added", created)
	logging.Debug().Uint("user_id", userID).Uint("book_id", bookID).Bool("created", created).Msg("favourite added")
	return created, nil
}

// RemoveFavourite removes the favourite. It reports false when there was none.
func (l *Ledger) RemoveFavourite(ctx context.Context, userID, bookID uint) (bool, error) {
	removed, err := l.favourites.Remove(ctx, userID, bookID)
	if err != nil {
		return false, err
	}
	metrics.RecordEdge("favourite", "removed", removed)
	return removed, nil
}

// IsFavourite reports whether the user has favourited the book.
func (l *Ledger) IsFavourite(ctx context.Context, userID, bookID uint) (bool, error) {
	return l.favourites.Exists(ctx, userID, bookID)
}

// ListFavourites pages through the user's favourited books that are
// currently public.
func (l *Ledger) ListFavourites(ctx context.Context, userID uint, p pagination.Params) (pagination.Page[entities.Book], error) {
	books, total, err := l.favourites.ListPublicBooks(ctx, userID, p)
	if err != nil {
		return pagination.Page[entities.Book]{}, err
	}
	return pagination.NewPage(books, total, p), nil
}

// Follow makes followerID follow targetID. Following yourself fails with
// apperr.ErrSelfFollow before anything is looked up.
func (l *Ledger) Follow(ctx context.Context, followerID, targetID uint) (FollowResult, error) {
	if followerID == targetID {
		return FollowResult{}, apperr.ErrSelfFollow
	}

	target, err := l.users.GetUserByID(ctx, targetID)
	if err != nil {
		return FollowResult{}, err
	}

	created, err := l.follows.Follow(ctx, followerID, targetID)
	if err != nil {
		return FollowResult{}, err
	}
	metrics.RecordEdge("follow", "added", created)
	logging.Debug().Uint("follower_id", followerID).Uint("followed_id", targetID).Bool("created", created).Msg("follow")
	return FollowResult{Changed: created, Target: target}, nil
}

// Unfollow removes the follow edge, reporting Changed == false when
// followerID was not following targetID.
func (l *Ledger) Unfollow(ctx context.Context, followerID, targetID uint) (FollowResult, error) {
	target, err := l.users.GetUserByID(ctx, targetID)
	if err != nil {
		return FollowResult{}, err
	}

	removed, err := l.follows.Unfollow(ctx, followerID, targetID)
	if err != nil {
		return FollowResult{}, err
	}
	metrics.RecordEdge("follow", "removed", removed)
	return FollowResult{Changed: removed, Target: target}, nil
}

// FollowStatus reports whether followerID follows targetID.
func (l *Ledger) FollowStatus(ctx context.Context, followerID, targetID uint) (bool, error) {
	if _, err := l.users.GetUserByID(ctx, targetID); err != nil {
		return false, err
	}
	return l.follows.Exists(ctx, followerID, targetID)
}

// ListFollowers lists the users following userID.
func (l *Ledger) ListFollowers(ctx context.Context, userID uint) (UserList, error) {
	return l.list(ctx, userID, l.follows.Followers)
}

// ListFollowing lists the users userID follows.
func (l *Ledger) ListFollowing(ctx context.Context, userID uint) (UserList, error) {
	return l.list(ctx, userID, l.follows.Following)
}

func (l *Ledger) list(ctx context.Context, userID uint, fetch func(context.Context, uint) ([]follows.UserSummary, error)) (UserList, error) {
	if _, err := l.users.GetUserByID(ctx, userID); err != nil {
		return UserList{}, err
	}

	users, err := fetch(ctx, userID)
	if err != nil {
		return UserList{}, err
	}
	return UserList{Count: len(users), Users: users}, nil
}

func (l *Ledger) requireBook(ctx context.Context, bookID uint) error {
	exists, err := l.books.BookExists(ctx, bookID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("book", bookID)
	}
	return nil
}
