// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and migrations
//	├── books/           # Book reads, listings, search and leaderboards
//	├── chapters/        # Chapter lookups and numbering
//	├── favourites/      # Favourite edges (user -> book)
//	├── follows/         # Follow edges (user -> user)
//	├── users/           # User records and API token lookup
//	└── viewmarkers/     # Session view markers and the view_count bump
//
// Each sub-package provides a Repository type on top of *gorm.DB:
//
//	db, err := database.NewDatabase("./folio.db")
//	favs := favourites.NewRepository(db.DB)
//	created, err := favs.Add(ctx, userID, bookID)
//
// # Storage contracts
//
// Edge tables carry unique indexes and are written with INSERT ... ON CONFLICT
// DO NOTHING, so concurrent duplicate inserts collapse into one row. Counters
// are only ever changed with relative UPDATEs (view_count = view_count + 1).
// Every mutation runs inside a single transaction.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the interface declared by its consumer
//  5. Add a compile-time check in internal/interfaces/checks.go
package database
