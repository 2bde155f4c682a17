package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/filmlog/filmlog/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newAuthRouter(issuer *auth.Issuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(issuer, zap.NewNop()), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id":  c.GetString(ContextUserID),
			"username": c.GetString(ContextUsername),
		})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewIssuer(auth.JWTConfig{
		Secret: "film-log-test-secret-at-least-32-chars-long",
		Issuer: "filmlog",
		TTL:    time.Hour,
	})
	r := newAuthRouter(issuer)

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, 401, w.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		assert.Equal(t, 401, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		r.ServeHTTP(w, req)
		assert.Equal(t, 401, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := auth.NewIssuer(auth.JWTConfig{
			Secret: "a-completely-different-secret-of-sufficient-length",
			Issuer: "filmlog",
			TTL:    time.Hour,
		})
		tokenStr, err := other.Issue("42", "ansel")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		r.ServeHTTP(w, req)
		assert.Equal(t, 401, w.Code)
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		tokenStr, err := issuer.Issue("42", "ansel")
		assert.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		r.ServeHTTP(w, req)
		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, `{"user_id":"42","username":"ansel"}`, w.Body.String())
	})
}
