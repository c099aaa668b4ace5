// Package handler exposes the rental service over HTTP with gin.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID extracts a positive numeric path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseWindow extracts the from/size query parameters with the platform
// defaults. Range validation happens in the service layer.
func parseWindow(c *gin.Context) (int, int, bool) {
	from, err := strconv.Atoi(c.DefaultQuery("from", "0"))
	if err != nil {
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		return 0, 0, false
	}
	return from, size, true
}
