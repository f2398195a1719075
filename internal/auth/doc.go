// Package auth identifies callers and keeps their view sessions.
//
// API clients authenticate with a bearer token issued from the command line:
//
//	folio create-user -email ann@example.com -first-name Ann
//	folio issue-token -email ann@example.com
//
// Only the SHA-256 of a token is stored; issuing a new one revokes the old.
// Requests without an Authorization header proceed anonymously and are
// rejected only by routes wrapped in RequireAuth.
//
// Independently of identity, every client gets an scs session (SQLite backed)
// holding a random view session id. Chapter views are deduplicated per view
// session and book.
//
// # Usage
//
//	authService := auth.NewService(usersRepo, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService, auth.NewTokenThrottle(auth.ThrottleConfig{}))
//	router.Use(sessionManager.SessionLoadSave(), authMiddleware.Handler())
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c) // AnonymousUserID when no token was sent
package auth
