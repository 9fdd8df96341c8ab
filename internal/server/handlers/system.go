package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"saassyadmin/internal/server/resp"
	"saassyadmin/internal/theme"
)

// Health reports process liveness and Redis reachability.
func Health(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
				resp.ErrorData(c, http.StatusServiceUnavailable, "degraded", gin.H{"status": "degraded", "checks": checks})
				return
			}
			checks["redis"] = "ok"
		}
		resp.OK(c, gin.H{"status": "ok", "checks": checks})
	}
}

// ThemeCSS serves the compiled stylesheet with a strong ETag.
func ThemeCSS(sheet *theme.Stylesheet) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("ETag", sheet.ETag)
		c.Header("Cache-Control", "public, max-age=0, must-revalidate")
		if etagMatch(c.GetHeader("If-None-Match"), sheet.ETag) {
			c.Status(http.StatusNotModified)
			return
		}
		c.Data(http.StatusOK, "text/css; charset=utf-8", sheet.CSS)
	}
}

func etagMatch(header, etag string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || strings.TrimPrefix(part, "W/") == etag {
			return true
		}
	}
	return false
}

func notFoundJSON(c *gin.Context) {
	resp.Error(c, http.StatusNotFound, "not found")
}
