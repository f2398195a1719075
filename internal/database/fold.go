package database

import (
	"database/sql"
	"sync"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DriverName is mattn/go-sqlite3 with a fold(text) SQL function registered
// on every connection.
const DriverName = "sqlite3_folio"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(DriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("fold", Fold, true)
			},
		})
	})
}

// Fold composes s to NFC and applies Unicode case folding. SQLite's LOWER()
// only folds ASCII, so case-insensitive matching goes through fold() in SQL
// and Fold on the Go side.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
