// Package handlers implements the HTTP endpoints of the dashboard API.
package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/insightpulse/service-analytics/internal/domain/dashboard"
)

// respondError maps a domain error to its HTTP response. DataUnavailable
// keeps the exact detail string the frontend matches on.
func respondError(c *gin.Context, err error) {
	detail := err.Error()
	if errors.Is(err, dashboard.ErrDataUnavailable) {
		detail = "Data not loaded"
	}
	c.JSON(dashboard.HTTPStatus(err), gin.H{"detail": detail})
}

// intQuery parses an integer query parameter with a default for the empty
// case. A non-integer value is a validation error.
func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", dashboard.ErrValidation, name)
	}
	return v, nil
}
