package http

import (
	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/pagination"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Services
	Engagement EngagementService
	Catalog    CatalogService
	Rankings   RankingService
	Content    ContentService

	// Health
	Database Pinger
	Version  string

	// Authentication and sessions
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager

	// Listing limits
	PageLimits      pagination.Limits
	RankingMaxLimit int

	// Add HSTS headers (only when served over TLS)
	SecureCookies bool

	// Expose Prometheus metrics at /metrics
	EnableMetrics bool
}
