package middleware

import (
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery returns a middleware for panic recovery
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)

				utils.Error(c, 500, "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
