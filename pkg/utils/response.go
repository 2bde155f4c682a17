package utils

import "github.com/gin-gonic/gin"

// Error writes the API's uniform error body.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
