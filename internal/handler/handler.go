package handler

import (
	"strconv"

	"github.com/filmlog/filmlog/internal/middleware"
	"github.com/filmlog/filmlog/pkg/utils"
	"github.com/gin-gonic/gin"
)

// requireOwner enforces the ownership boundary on every /api/user/:user_id
// route: the authenticated identity must equal the user_id path segment,
// compared as opaque strings, before any data access. On success it returns
// the numeric user id for use in queries.
func requireOwner(c *gin.Context) (int, bool) {
	userID := c.Param("user_id")
	if c.GetString(middleware.ContextUserID) != userID {
		utils.Error(c, 403, "Unauthorized")
		return 0, false
	}

	uid, err := strconv.Atoi(userID)
	if err != nil {
		// Tokens are issued with numeric subjects, so this means the token
		// store and the path agree on an identity the database cannot hold.
		utils.Error(c, 500, "Internal server error")
		return 0, false
	}
	return uid, true
}
