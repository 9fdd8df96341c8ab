package mw

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/i18n"
)

// gin context keys
const (
	CtxRequestID = "request_id"
	CtxLanguage  = "language"
	CtxAccount   = "account"
	CtxCSRF      = "csrf_token"
	CtxUserID    = "user_id"
	CtxRole      = "role"
)

func RequestID(c *gin.Context) string {
	return c.GetString(CtxRequestID)
}

// Language returns the negotiated language, "en" when none was set.
func Language(c *gin.Context) string {
	if v := c.GetString(CtxLanguage); v != "" {
		return v
	}
	return i18n.LangEN
}

// Account returns the signed-in account of a browser session, or nil.
func Account(c *gin.Context) *accounts.Account {
	if v, ok := c.Get(CtxAccount); ok {
		if a, ok := v.(*accounts.Account); ok {
			return a
		}
	}
	return nil
}

func CSRFToken(c *gin.Context) string {
	return c.GetString(CtxCSRF)
}

// UserID returns the subject of a verified access token.
func UserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
