package http

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/folio/internal/database/dbtest"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
)

func TestEngagement_FavouriteLifecycle(t *testing.T) {
	s := newTestServer(t)
	reader := s.user("reader@example.com", "Reader")
	author := dbtest.CreateUser(t, s.db, "Ann")
	book := dbtest.CreateBook(t, s.db, author, "Dragons")
	path := fmt.Sprintf("/api/books/%d/favourite", book.ID)

	w := s.do(http.MethodGet, path, nil, withToken(reader.Token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]any](t, w)["is_favourite"])

	w = s.do(http.MethodPost, path, nil, withToken(reader.Token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "added", decode[map[string]string](t, w)["status"])

	w = s.do(http.MethodPost, path, nil, withToken(reader.Token))
	assert.Equal(t, "already_exists", decode[map[string]string](t, w)["status"])

	w = s.do(http.MethodGet, path, nil, withToken(reader.Token))
	assert.Equal(t, true, decode[map[string]any](t, w)["is_favourite"])

	w = s.do(http.MethodDelete, path, nil, withToken(reader.Token))
	assert.Equal(t, "removed", decode[map[string]string](t, w)["status"])

	w = s.do(http.MethodDelete, path, nil, withToken(reader.Token))
	assert.Equal(t, "not_found", decode[map[string]string](t, w)["status"])
}

func TestEngagement_FavouriteMissingBook(t *testing.T) {
	s := newTestServer(t)
	reader := s.user("reader@example.com", "Reader")

	w := s.do(http.MethodPost, "/api/books/9999/favourite", nil, withToken(reader.Token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/books/abc/favourite", nil, withToken(reader.Token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEngagement_ConcurrentFavouritesCreateOneEdge(t *testing.T) {
	s := newTestServer(t)
	reader := s.user("reader@example.com", "Reader")
	author := dbtest.CreateUser(t, s.db, "Ann")
	book := dbtest.CreateBook(t, s.db, author, "Dragons")
	path := fmt.Sprintf("/api/books/%d/favourite", book.ID)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts = map[string]int{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := s.do(http.MethodPost, path, nil, withToken(reader.Token))
			var body map[string]string
			if w.Code == http.StatusOK {
				body = decode[map[string]string](t, w)
			}
			mu.Lock()
			counts[body["status"]]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, counts["added"])
	assert.Equal(t, 7, counts["already_exists"])

	var edges int64
	require.NoError(t, s.db.Model(&entities.Favourite{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)
}

func TestEngagement_ListFavouritesHidesPrivateBooks(t *testing.T) {
	s := newTestServer(t)
	reader := s.user("reader@example.com", "Reader")
	author := dbtest.CreateUser(t, s.db, "Ann")
	first := dbtest.CreateBook(t, s.db, author, "First")
	second := dbtest.CreateBook(t, s.db, author, "Second")

	for _, b := range []*entities.Book{first, second} {
		w := s.do(http.MethodPost, fmt.Sprintf("/api/books/%d/favourite", b.ID), nil, withToken(reader.Token))
		require.Equal(t, http.StatusOK, w.Code)
	}
	require.NoError(t, s.db.Model(second).Update("status", entities.BookStatusPrivate).Error)

	w := s.do(http.MethodGet, "/api/favourites", nil, withToken(reader.Token))
	require.Equal(t, http.StatusOK, w.Code)

	page := decode[pagination.Page[BookResponse]](t, w)
	assert.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)
	assert.Equal(t, first.ID, page.Results[0].BookID)
	assert.Nil(t, page.Next)
	assert.Nil(t, page.Previous)
}

func TestEngagement_FollowLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.user("alice@example.com", "Alice")
	bob := s.user("bob@example.com", "Bob")
	path := fmt.Sprintf("/api/users/%d/follow", bob.ID)

	w := s.do(http.MethodPost, path, nil, withToken(alice.Token))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Successfully followed bob@example.com", decode[DetailResponse](t, w).Detail)

	w = s.do(http.MethodGet, path, nil, withToken(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[map[string]any](t, w)
	assert.Equal(t, true, status["is_following"])
	assert.EqualValues(t, bob.ID, status["target_user_id"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/followers", bob.ID), nil, withToken(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)
	followers := decode[struct {
		Count     int                   `json:"count"`
		Followers []UserSummaryResponse `json:"followers"`
	}](t, w)
	assert.Equal(t, 1, followers.Count)
	require.Len(t, followers.Followers, 1)
	assert.Equal(t, UserSummaryResponse{UserID: alice.ID, Email: "alice@example.com", FirstName: "Alice", LastName: "Tester"}, followers.Followers[0])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/following", alice.ID), nil, withToken(bob.Token))
	require.Equal(t, http.StatusOK, w.Code)
	following := decode[struct {
		Count     int                   `json:"count"`
		Following []UserSummaryResponse `json:"following"`
	}](t, w)
	assert.Equal(t, 1, following.Count)

	w = s.do(http.MethodDelete, path, nil, withToken(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully unfollowed bob@example.com", decode[DetailResponse](t, w).Detail)

	w = s.do(http.MethodDelete, path, nil, withToken(alice.Token))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You were not following this user.", decode[DetailResponse](t, w).Detail)
}

func TestEngagement_SelfFollow(t *testing.T) {
	s := newTestServer(t)
	alice := s.user("alice@example.com", "Alice")

	w := s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/follow", alice.ID), nil, withToken(alice.Token))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot follow yourself.", decode[DetailResponse](t, w).Detail)
}

func TestEngagement_FollowUnknownUser(t *testing.T) {
	s := newTestServer(t)
	alice := s.user("alice@example.com", "Alice")

	for _, method := range []string{http.MethodPost, http.MethodDelete, http.MethodGet} {
		w := s.do(method, "/api/users/4242/follow", nil, withToken(alice.Token))
		assert.Equal(t, http.StatusNotFound, w.Code, method)
	}
	w := s.do(http.MethodGet, "/api/users/4242/followers", nil, withToken(alice.Token))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
