package mw

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saassyadmin/internal/util"
)

const (
	CSRFCookie = "csrf_token"
	CSRFField  = "csrf_token"
	CSRFHeader = "X-CSRF-Token"

	csrfTTL = 12 * time.Hour
)

// CSRF implements the double-submit cookie pattern for form posts. Safe
// requests get a token cookie; unsafe ones must echo it in the form field or
// header. Failures are handed to deny, which must write the response.
func CSRF(cookies Cookies, logger *zap.Logger, deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(CSRFCookie)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if cookie == "" {
				tok, err := util.RandomToken(32)
				if err != nil {
					logger.Error("csrf token generation failed", zap.Error(err))
					c.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				cookie = tok
				cookies.Set(c, CSRFCookie, cookie, csrfTTL)
			}
			c.Set(CtxCSRF, cookie)
			c.Next()
			return
		}

		sent := c.PostForm(CSRFField)
		if sent == "" {
			sent = c.GetHeader(CSRFHeader)
		}
		if cookie == "" || sent == "" || subtle.ConstantTimeCompare([]byte(cookie), []byte(sent)) != 1 {
			logger.Warn("csrf token mismatch",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", RequestID(c)),
			)
			deny(c)
			c.Abort()
			return
		}
		c.Set(CtxCSRF, cookie)
		c.Next()
	}
}
