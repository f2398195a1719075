// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interfaces they need next to the code that uses
// them; this package only asserts, at compile time, that the concrete types
// wired in the entrypoint satisfy them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - catalog.BookLister, content.BookStore, ranking.Source,
//     engagement.BookChecker: implemented by database/books.Repository
//   - content.ChapterStore: database/chapters.Repository
//   - engagement.FavouriteStore, engagement.FollowStore: database/favourites
//     and database/follows repositories
//   - views.MarkerStore, tasks.ViewMarkerPurger: database/viewmarkers.Repository
//   - auth.UserStore, engagement.UserGetter, content.UserGetter:
//     database/users.Repository
//
// ## Service Interfaces (consumed by internal/http)
//
//   - EngagementService: favourites and follows (engagement.Ledger)
//   - CatalogService: search and filtered listings (catalog.Browser)
//   - RankingService: leaderboards (ranking.Engine)
//   - ContentService: books and chapters (content.Service)
//   - ViewSessions: per-client view session ids (auth.SessionManager)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., bookmarks):
//
//  1. Create sub-package: internal/database/bookmarks/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the entity in database.Migrate
//
//  4. Declare the interface in the consuming package and add a compile-time
//     check:
//
//     var _ bookmarks.Store = (*bookmarks.Repository)(nil)
//
// # Adding a Background Job
//
//  1. Define a task type with a Config() method and a processor in
//     internal/tasks/, following PurgeViewMarkersTask.
//
//  2. Register its queue on the tasks.Client in entrypoint.go.
//
//  3. For periodic work, add a cron scheduler in internal/scheduler/ that
//     enqueues the task through scheduler.Enqueuer.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
