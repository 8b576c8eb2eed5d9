package consoletest

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("conflict")
)

// apiError writes the {"error": msg} body used by the v0 and console APIs.
func apiError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// adminError writes the {"error", "detail"} body used by the admin API.
func adminError(c *gin.Context, status int, msg, detail string) {
	c.JSON(status, gin.H{"error": msg, "detail": detail})
}
