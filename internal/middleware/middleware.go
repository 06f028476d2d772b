package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lotto645-backend/internal/config"
	"github.com/ArowuTest/lotto645-backend/internal/utils"
)

// CORSMiddleware is a middleware for CORS. A "*" entry (or an empty list)
// allows any origin without credentials; otherwise the request Origin is
// echoed back when it is in the allow-list.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowAll := len(cfg.Server.AllowedHosts) == 0
	allowed := make(map[string]bool, len(cfg.Server.AllowedHosts))
	for _, host := range cfg.Server.AllowedHosts {
		host = strings.TrimRight(strings.TrimSpace(host), "/")
		if host == "*" {
			allowAll = true
		}
		allowed[host] = true
	}
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware is a middleware for adding a request ID to the context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			suffix, err := utils.GenerateRandomString(8)
			if err != nil {
				suffix = c.ClientIP()
			}
			requestID = time.Now().Format("20060102150405") + "-" + suffix
		}
		c.Set("RequestID", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"request_id", c.GetString("RequestID"),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			slog.Error("Request failed", append(attrs, "errors", c.Errors.String())...)
		case c.Writer.Status() >= http.StatusBadRequest:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Info("Request handled", attrs...)
		}
	}
}
