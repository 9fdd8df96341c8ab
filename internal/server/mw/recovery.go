package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saassyadmin/internal/server/resp"
)

// Recovery turns a panic into a 500 without leaking details to the client.
// Outside /api/ the response is produced by page when it is not nil.
func Recovery(logger *zap.Logger, page gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", RequestID(c)),
					zap.Stack("stack"),
				)
				if c.Writer.Written() {
					c.Abort()
					return
				}
				if page != nil && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
					c.Abort()
					page(c)
					return
				}
				resp.Abort(c, http.StatusInternalServerError, "internal server error")
			}
		}()
		c.Next()
	}
}
