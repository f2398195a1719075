package config

// DefaultDatabasePath is the default path for the main application database
const DefaultDatabasePath = "./folio.db"

// Pagination limits shared by every list endpoint
const (
	DefaultPageSize = 28
	MaxPageSize     = 100
)
