package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/catalog"
	"github.com/mrlokans/folio/internal/content"
	"github.com/mrlokans/folio/internal/database"
	"github.com/mrlokans/folio/internal/database/books"
	"github.com/mrlokans/folio/internal/database/chapters"
	"github.com/mrlokans/folio/internal/database/favourites"
	"github.com/mrlokans/folio/internal/database/follows"
	"github.com/mrlokans/folio/internal/database/users"
	"github.com/mrlokans/folio/internal/database/viewmarkers"
	"github.com/mrlokans/folio/internal/engagement"
	"github.com/mrlokans/folio/internal/http"
	"github.com/mrlokans/folio/internal/ranking"
	"github.com/mrlokans/folio/internal/scheduler"
	"github.com/mrlokans/folio/internal/tasks"
	"github.com/mrlokans/folio/internal/views"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// Books
var _ catalog.BookLister = (*books.Repository)(nil)
var _ content.BookStore = (*books.Repository)(nil)
var _ ranking.Source = (*books.Repository)(nil)
var _ engagement.BookChecker = (*books.Repository)(nil)

// Chapters
var _ content.ChapterStore = (*chapters.Repository)(nil)

// Users
var _ auth.UserStore = (*users.Repository)(nil)
var _ engagement.UserGetter = (*users.Repository)(nil)
var _ content.UserGetter = (*users.Repository)(nil)

// Engagement edges
var _ engagement.FavouriteStore = (*favourites.Repository)(nil)
var _ engagement.FollowStore = (*follows.Repository)(nil)

// View markers
var _ views.MarkerStore = (*viewmarkers.Repository)(nil)
var _ tasks.ViewMarkerPurger = (*viewmarkers.Repository)(nil)

// Health
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Services consumed by HTTP controllers
// =============================================================================

var _ http.EngagementService = (*engagement.Ledger)(nil)
var _ http.CatalogService = (*catalog.Browser)(nil)
var _ http.RankingService = (*ranking.Engine)(nil)
var _ http.ContentService = (*content.Service)(nil)
var _ http.ViewSessions = (*auth.SessionManager)(nil)
var _ content.ViewRecorder = (*views.Counter)(nil)

// =============================================================================
// Background work
// =============================================================================

var _ scheduler.Enqueuer = (*tasks.Client)(nil)
