package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/catalog"
	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/pagination"
	"github.com/mrlokans/folio/internal/ranking"
)

// CatalogService answers the browsing queries.
type CatalogService interface {
	Search(ctx context.Context, query string, p pagination.Params) (pagination.Page[entities.Book], error)
	ListByGenre(ctx context.Context, token string, p pagination.Params) (pagination.Page[entities.Book], error)
	ListBooks(ctx context.Context, f catalog.Filter, p pagination.Params) (pagination.Page[entities.Book], error)
}

// RankingService builds the leaderboards.
type RankingService interface {
	TopBooks(ctx context.Context, limit int) ([]entities.Book, error)
	TopAuthors(ctx context.Context, limit int) ([]books.AuthorViews, error)
	TopGenres(ctx context.Context, limit int) ([]ranking.GenreViews, error)
}

type CatalogController struct {
	catalog  CatalogService
	rankings RankingService
	limits   pagination.Limits
	maxLimit int
}

func NewCatalogController(catalog CatalogService, rankings RankingService, limits pagination.Limits, maxRankingLimit int) *CatalogController {
	return &CatalogController{catalog: catalog, rankings: rankings, limits: limits, maxLimit: maxRankingLimit}
}

// Search finds public books by title, author name or description.
// GET /api/books/search?q=
func (cc *CatalogController) Search(c *gin.Context) {
	page, err := cc.catalog.Search(c.Request.Context(), c.Query("q"), pageParams(c, cc.limits))
	if err != nil {
		respondError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, newBookResponse))
}

// ListByGenre lists public books of a genre. The page may come from the path
// or the query string.
// GET /api/genres/:genre/books
// GET /api/genres/:genre/books/:page
func (cc *CatalogController) ListByGenre(c *gin.Context) {
	pageRaw := c.Param("page")
	if pageRaw == "" {
		pageRaw = c.Query("page")
	}
	p := pagination.Parse(pageRaw, c.Query("page_size"), cc.limits)

	page, err := cc.catalog.ListByGenre(c.Request.Context(), c.Param("genre"), p)
	if err != nil {
		respondError(c, err, "list genre")
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, newBookResponse))
}

// ListBooks is the filtered book listing.
// GET /api/books?author_id=&genre=
func (cc *CatalogController) ListBooks(c *gin.Context) {
	authorID, ok := parseOptionalQueryID(c, "author_id")
	if !ok {
		return
	}
	filter := catalog.Filter{
		AuthorID: authorID,
		Genre:    c.Query("genre"),
		ViewerID: GetUserID(c),
	}

	page, err := cc.catalog.ListBooks(c.Request.Context(), filter, pageParams(c, cc.limits))
	if err != nil {
		respondError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, newBookResponse))
}

// TopBooks returns the most viewed public books.
// GET /api/rankings/books
func (cc *CatalogController) TopBooks(c *gin.Context) {
	list, err := cc.rankings.TopBooks(c.Request.Context(), limitParam(c, cc.maxLimit))
	if err != nil {
		respondError(c, err, "top books")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}

// TopAuthors returns authors ranked by the views of their public books.
// GET /api/rankings/authors
func (cc *CatalogController) TopAuthors(c *gin.Context) {
	list, err := cc.rankings.TopAuthors(c.Request.Context(), limitParam(c, cc.maxLimit))
	if err != nil {
		respondError(c, err, "top authors")
		return
	}
	c.JSON(http.StatusOK, newAuthorRanks(list))
}

// TopGenres returns genres ranked by the views of their public books.
// GET /api/rankings/genres
func (cc *CatalogController) TopGenres(c *gin.Context) {
	list, err := cc.rankings.TopGenres(c.Request.Context(), limitParam(c, cc.maxLimit))
	if err != nil {
		respondError(c, err, "top genres")
		return
	}
	c.JSON(http.StatusOK, newGenreRanks(list))
}
