// Package handler contains the Gin HTTP handlers. Handlers bind and
// validate payloads, translate service errors to response codes, and never
// touch the database directly.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter. Reports false on garbage input.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt parses an optional numeric query parameter with a fallback.
func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
