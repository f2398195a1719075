package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/apperr"
	"github.com/mrlokans/folio/internal/auth"
	"github.com/mrlokans/folio/internal/logging"
	"github.com/mrlokans/folio/internal/pagination"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns auth.AnonymousUserID when no token was presented.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DetailResponse carries a human readable outcome.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logging.Error().Err(err).
		Str("context", context).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Msg("internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError maps a domain error onto its status code. Unknown errors are
// logged and reported as 500.
func respondError(c *gin.Context, err error, context string) {
	var (
		notFound   *apperr.NotFoundError
		permission *apperr.PermissionError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.As(err, &permission):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, DetailResponse{Detail: "You cannot follow yourself."})
	case errors.Is(err, apperr.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID reads an optional unsigned ID from the query string.
// A present but malformed value responds with 400.
func parseOptionalQueryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pageParams reads page and page_size from the query string. Bad values fall
// back to the defaults.
func pageParams(c *gin.Context, limits pagination.Limits) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("page_size"), limits)
}

// limitParam reads an optional positive "limit", capped at max. Zero means
// "use the default".
func limitParam(c *gin.Context, max int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	if max > 0 && n > max {
		return max
	}
	return n
}
