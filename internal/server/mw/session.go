package mw

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/store"
)

const SessionCookie = "sid"

// Cookies writes the browser cookies with one set of attributes.
type Cookies struct {
	Secure bool
}

func (k Cookies) Set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", k.Secure, true)
}

func (k Cookies) Clear(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", k.Secure, true)
}

// LoadSession resolves the session cookie to an account. Unknown sessions
// clear the cookie; on lookup errors the cookie is kept and the request
// continues anonymously.
func LoadSession(sessions *store.SessionStore, repo accounts.Repository, cookies Cookies, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		userID, err := sessions.Get(ctx, sid)
		if err != nil {
			if errors.Is(err, store.ErrSessionNotFound) {
				cookies.Clear(c, SessionCookie)
			} else {
				logger.Error("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}
		acct, err := repo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				_ = sessions.Delete(ctx, sid)
				cookies.Clear(c, SessionCookie)
			} else {
				logger.Error("session account lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}
		// sliding expiry, matching the Redis TTL refreshed by Get
		cookies.Set(c, SessionCookie, sid, sessions.TTL())
		c.Set(CtxAccount, acct)
		c.Next()
	}
}

// RequireSession redirects anonymous browsers to the login page.
func RequireSession(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Account(c) == nil {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
