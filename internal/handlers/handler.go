package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/services"
	"github.com/ArowuTest/lotto645-backend/pkg/lottoapi"
)

// queryInt reads an integer query parameter, def when absent
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be an integer", key)
	}
	return n, nil
}

// respondError maps service errors to status codes
func respondError(c *gin.Context, err error, action string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrInvalidRequest), errors.Is(err, services.ErrInvalidDraw):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, lottoapi.ErrDrawNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrOfficialUnavailable), errors.Is(err, lottoapi.ErrLatestUnknown):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"error": action + ": " + err.Error()})
}
