package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLogger logs one line per request. Paths in notLogged are skipped.
func AccessLogger(logger *zap.Logger, notLogged ...string) gin.HandlerFunc {
	var skip map[string]struct{}
	if length := len(notLogged); length > 0 {
		skip = make(map[string]struct{}, length)
		for _, p := range notLogged {
			skip[p] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		start := time.Now()
		c.Next()

		if _, ok := skip[path]; ok {
			return
		}
		if raw != "" {
			path = path + "?" + raw
		}

		dataLength := c.Writer.Size()
		if dataLength < 0 {
			dataLength = 0
		}
		statusCode := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", statusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("bytes", dataLength),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		switch {
		case len(c.Errors) > 0:
			logger.Error(c.Errors.ByType(gin.ErrorTypePrivate).String(), fields...)
		case statusCode >= http.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		case statusCode >= http.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request served", fields...)
		}
	}
}
