package middleware

import (
	"strings"

	"github.com/filmlog/filmlog/internal/auth"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID   = "auth_user_id"
	ContextUsername = "auth_username"
)

// RequireAuth returns a middleware that validates the bearer token and
// attaches the caller's identity to the request context. Requests without a
// valid token are rejected with 401 before any handler runs.
func RequireAuth(issuer *auth.Issuer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.Error(c, 401, "Unauthorized")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims, err := issuer.Verify(tokenStr)
		if err != nil {
			logger.Debug("token verification failed", zap.Error(err))
			utils.Error(c, 401, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}
