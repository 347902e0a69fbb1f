package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendou/agendou-api/internal/auth"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := NewAuth(auth.NewStaticVerifier("test-secret"))

	r := gin.New()
	r.GET("/protected", a.Require(), func(c *gin.Context) {
		id, _ := auth.FromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"uid": id.UID})
	})
	r.GET("/optional", a.Optional(), func(c *gin.Context) {
		if id, ok := auth.FromContext(c.Request.Context()); ok {
			c.JSON(http.StatusOK, gin.H{"uid": id.UID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": ""})
	})
	return r
}

func signedToken(t *testing.T, uid string) string {
	t.Helper()
	token, err := auth.SignStatic("test-secret", auth.Identity{UID: uid})
	require.NoError(t, err)
	return token
}

func TestAuthRequireAcceptsBearerToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "uid-1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uid-1")
}

func TestAuthRequireAcceptsQueryToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected?token="+signedToken(t, "uid-2"), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uid-2")
}

func TestAuthRequireRejectsMissingToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequireRejectsInvalidToken(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthOptionalPassesAnonymous(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthCachesVerifiedTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	verifier := &countingVerifier{inner: auth.NewStaticVerifier("test-secret")}
	a := NewAuth(verifier)

	r := gin.New()
	r.GET("/protected", a.Require(), func(c *gin.Context) { c.Status(http.StatusOK) })

	token := signedToken(t, "uid-1")
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, verifier.calls, "verification happens once per cached token")
}

type countingVerifier struct {
	inner auth.TokenVerifier
	calls int
}

func (v *countingVerifier) Verify(ctx context.Context, token string) (auth.Identity, error) {
	v.calls++
	return v.inner.Verify(ctx, token)
}
