package mw

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/security"
	"saassyadmin/internal/server/resp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), Recovery(zap.NewNop(), nil))
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var env resp.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "internal server error", env.Description)
	assert.NotContains(t, w.Body.String(), "kaboom")
}

func TestRecoveryRendersPageOutsideAPI(t *testing.T) {
	page := func(c *gin.Context) {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte("<!DOCTYPE html><p>oops</p>"))
	}
	r := gin.New()
	r.Use(RequestIDMiddleware(), Recovery(zap.NewNop(), page))
	r.GET("/dashboard", func(*gin.Context) { panic("kaboom") })
	r.GET("/api/v1/me", func(*gin.Context) { panic("kaboom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<!DOCTYPE html>")
	assert.NotContains(t, w.Body.String(), "kaboom")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	var env resp.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "error", env.Status)
}

func TestRequestIDReplacesInvalidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	w := serve(r, req)
	assert.Len(t, w.Body.String(), 36)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(HeaderRequestID))
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestRequireAuth(t *testing.T) {
	jwtm := security.NewJWTManager("0123456789abcdef0123456789abcdef", time.Minute, time.Hour)
	r := gin.New()
	r.GET("/me", RequireAuth(jwtm), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c).String()+" "+c.GetString(CtxRole))
	})

	acct := accounts.Account{Role: accounts.RoleAdmin}
	acct.ID[0] = 1
	tokens, _, err := jwtm.Issue(acct.Role, acct.ID)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + tokens.AccessToken, http.StatusUnauthorized},
		{"refresh token", "Bearer " + tokens.RefreshToken, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"ok", "Bearer " + tokens.AccessToken, http.StatusOK},
		{"lowercase scheme", "bearer " + tokens.AccessToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, acct.ID.String()+" admin", w.Body.String())
			}
		})
	}
}

func TestLanguageMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(LanguageMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Language(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	w := serve(r, req)
	assert.Equal(t, "en", w.Body.String())

	req.Header.Set("Accept-Language", "ru")
	w = serve(r, req)
	assert.Equal(t, "ru", w.Body.String())
	assert.Equal(t, "ru", w.Header().Get("Content-Language"))
}
