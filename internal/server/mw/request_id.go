package mw

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware keeps a valid incoming X-Request-ID or generates one,
// and echoes it in the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := ""
		if id, err := uuid.Parse(c.GetHeader(HeaderRequestID)); err == nil {
			rid = id.String()
		} else {
			rid = uuid.NewString()
		}
		c.Set(CtxRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}
