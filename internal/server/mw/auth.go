package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"saassyadmin/internal/security"
	"saassyadmin/internal/server/resp"
)

// RequireAuth accepts "Authorization: Bearer <access token>".
func RequireAuth(jwtm *security.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		scheme, tok, ok := strings.Cut(raw, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
			resp.Abort(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		id, role, err := jwtm.ParseAccess(strings.TrimSpace(tok))
		if err != nil || id == uuid.Nil {
			resp.Abort(c, http.StatusUnauthorized, "invalid access token")
			return
		}
		c.Set(CtxUserID, id)
		c.Set(CtxRole, role)
		c.Next()
	}
}
