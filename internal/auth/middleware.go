package auth

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/folio/internal/entities"
	"github.com/mrlokans/folio/internal/logging"
)

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUser     = "auth_user"
	ContextKeyAuthType = "auth_type"
)

// AuthType indicates how the request was authenticated.
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBearer AuthType = "bearer"
)

// AnonymousUserID is the principal of requests without credentials.
const AnonymousUserID = uint(0)

// Middleware resolves bearer tokens to users. Requests without an
// Authorization header continue anonymously; a present but invalid token is
// rejected.
type Middleware struct {
	service  *Service
	throttle *TokenThrottle
}

// NewMiddleware creates the authentication middleware. throttle may be nil.
func NewMiddleware(service *Service, throttle *TokenThrottle) *Middleware {
	return &Middleware{service: service, throttle: throttle}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(ContextKeyUserID, AnonymousUserID)
			c.Set(ContextKeyAuthType, AuthTypeNone)
			c.Next()
			return
		}

		token, ok := parseBearer(header)
		if !ok {
			unauthorized(c, "malformed authorization header")
			return
		}

		ip := c.ClientIP()
		if m.throttle != nil {
			if allowed, retryAfter := m.throttle.Allow(ip); !allowed {
				seconds := retryAfterSeconds(retryAfter)
				c.Header("Retry-After", strconv.Itoa(seconds))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error":       "too many invalid token attempts",
					"retry_after": seconds,
				})
				return
			}
		}

		user, err := m.service.ValidateToken(c.Request.Context(), token)
		if errors.Is(err, ErrInvalidToken) {
			if m.throttle != nil && m.throttle.Fail(ip) {
				logging.Warn().Str("ip", ip).Msg("client locked out after repeated invalid tokens")
			}
			unauthorized(c, "invalid token")
			return
		}
		if err != nil {
			logging.Error().Err(err).Msg("token validation failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if m.throttle != nil {
			m.throttle.Reset(ip)
		}
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyAuthType, AuthTypeBearer)
		c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == AnonymousUserID {
			unauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

func parseBearer(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// GetUserID returns the authenticated user's ID, or AnonymousUserID.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return AnonymousUserID
}

// GetUser returns the authenticated user, or nil for anonymous requests.
func GetUser(c *gin.Context) *entities.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		if user, ok := u.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}

// retryAfterSeconds rounds a lockout remainder up to whole delta-seconds.
func retryAfterSeconds(d time.Duration) int {
	return max(1, int(math.Ceil(d.Seconds())))
}
