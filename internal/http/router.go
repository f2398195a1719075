package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/folio/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger())
	router.Use(gin.Recovery())
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)
	if cfg.EnableMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	api.Use(cfg.SessionManager.SessionLoadSave())
	api.Use(cfg.AuthMiddleware.Handler())
	requireAuth := cfg.AuthMiddleware.RequireAuth()

	engagement := NewEngagementController(cfg.Engagement, cfg.PageLimits)
	catalog := NewCatalogController(cfg.Catalog, cfg.Rankings, cfg.PageLimits, cfg.RankingMaxLimit)
	books := NewBooksController(cfg.Content, cfg.SessionManager)

	// Public browsing
	api.GET("/books", catalog.ListBooks)
	api.GET("/books/search", catalog.Search)
	api.GET("/books/:id", books.GetBook)
	api.GET("/books/:id/chapters", books.ListChapters)
	api.GET("/books/:id/chapters/:chapterId", books.ReadChapter)

	rankings := api.Group("/rankings")
	{
		rankings.GET("/books", catalog.TopBooks)
		rankings.GET("/authors", catalog.TopAuthors)
		rankings.GET("/genres", catalog.TopGenres)
	}

	// Authenticated
	authed := api.Group("", requireAuth)
	{
		authed.GET("/genres/:genre/books", catalog.ListByGenre)
		authed.GET("/genres/:genre/books/:page", catalog.ListByGenre)

		authed.POST("/books", books.CreateBook)
		authed.PATCH("/books/:id/status", books.UpdateBookStatus)
		authed.POST("/books/:id/chapters", books.CreateChapter)
		authed.PATCH("/books/:id/chapters/:chapterId/status", books.UpdateChapterStatus)

		authed.GET("/books/:id/favourite", engagement.FavouriteStatus)
		authed.POST("/books/:id/favourite", engagement.AddFavourite)
		authed.DELETE("/books/:id/favourite", engagement.RemoveFavourite)
		authed.GET("/favourites", engagement.ListFavourites)

		authed.GET("/users/:id/follow", engagement.FollowStatus)
		authed.POST("/users/:id/follow", engagement.Follow)
		authed.DELETE("/users/:id/follow", engagement.Unfollow)
		authed.GET("/users/:id/followers", engagement.Followers)
		authed.GET("/users/:id/following", engagement.Following)
	}

	return router
}
