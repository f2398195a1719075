package auth

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"

	"github.com/mrlokans/folio/internal/config"
)

// SessionKeyViewID holds the anonymous view session identifier used to
// deduplicate chapter views.
const SessionKeyViewID = "view_session_id"

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager persisting to the sessions
// table of the application database. sqlDB is the *sql.DB behind GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime

	sm.Cookie.Name = "folio_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // readers arrive from shared links
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// ViewSessionID returns the session's view identifier, minting one on first
// use. Minting modifies the session so the cookie is sent with the response.
func (sm *SessionManager) ViewSessionID(ctx context.Context) string {
	if id := sm.GetString(ctx, SessionKeyViewID); id != "" {
		return id
	}
	id := uuid.NewString()
	sm.Put(ctx, SessionKeyViewID, id)
	return id
}

// PeekViewSessionID returns the view identifier without creating one.
func (sm *SessionManager) PeekViewSessionID(ctx context.Context) string {
	return sm.GetString(ctx, SessionKeyViewID)
}
