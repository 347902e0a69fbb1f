package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/pkg/apperror"
	"github.com/agendou/agendou-api/pkg/httputil"
)

// Auth verifies the bearer token and installs the resolved identity into
// the request context. Verified tokens are cached briefly so a chatty
// client does not hit the identity provider on every call.
type Auth struct {
	verifier auth.TokenVerifier
	cache    *cache.Cache
}

func NewAuth(verifier auth.TokenVerifier) *Auth {
	return &Auth{
		verifier: verifier,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Require rejects requests without a valid bearer token.
func (a *Auth) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.resolve(c)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// Optional resolves an identity when a token is present but lets
// anonymous requests through.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if extractToken(c) == "" {
			c.Next()
			return
		}
		if id, err := a.resolve(c); err == nil {
			c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		}
		c.Next()
	}
}

func (a *Auth) resolve(c *gin.Context) (auth.Identity, error) {
	token := extractToken(c)
	if token == "" {
		return auth.Identity{}, apperror.Unauthenticated("missing bearer token")
	}

	if cached, ok := a.cache.Get(token); ok {
		return cached.(auth.Identity), nil
	}

	id, err := a.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		return auth.Identity{}, apperror.Unauthenticated("invalid or expired token")
	}

	a.cache.SetDefault(token, id)
	return id, nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// Browsers cannot set headers on websocket dials.
	return c.Query("token")
}
