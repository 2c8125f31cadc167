package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"social-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeError maps a service error to an HTTP response. Domain errors carry
// their own status and message; anything else is an infrastructure failure
// and surfaces as a plain 500 so it can be retried.
func writeError(c *gin.Context, err error) {
	var apiErr *response.Error
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, apiErr.Payload())
		return
	}
	slog.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// requireQuery pulls mandatory query parameters, answering 400 and
// returning false if any is missing.
func requireQuery(c *gin.Context, names ...string) ([]string, bool) {
	values := make([]string, len(names))
	for i, name := range names {
		value := c.Query(name)
		if value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter: " + name})
			return nil, false
		}
		values[i] = value
	}
	return values, true
}
