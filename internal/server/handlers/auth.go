package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/security"
	"saassyadmin/internal/server/mw"
	"saassyadmin/internal/server/resp"
	"saassyadmin/internal/store"
)

// AuthHandler is the token API for non-browser clients.
type AuthHandler struct {
	logger *zap.Logger

	accounts *accounts.Service
	refresh  *store.RefreshStore
	jwtm     *security.JWTManager
}

func NewAuthHandler(logger *zap.Logger, svc *accounts.Service, refreshStore *store.RefreshStore, jwtm *security.JWTManager) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: svc,
		refresh:  refreshStore,
		jwtm:     jwtm,
	}
}

type registerReq struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.ConfirmPassword == "" {
		req.ConfirmPassword = req.Password
	}

	acct, err := h.accounts.Register(c.Request.Context(), accounts.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var ve *accounts.ValidationError
		switch {
		case errors.As(err, &ve):
			resp.ErrorData(c, http.StatusUnprocessableEntity, "validation failed", ve.Fields)
		case errors.Is(err, accounts.ErrEmailTaken):
			resp.Error(c, http.StatusConflict, "email already registered")
		default:
			h.logger.Error("api register failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
		}
		return
	}

	tokens, err := h.issue(c, acct)
	if err != nil {
		return
	}
	resp.Created(c, gin.H{
		"account": acct,
		"tokens":  tokens,
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	acct, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			resp.Error(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("api login failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	tokens, err := h.issue(c, acct)
	if err != nil {
		return
	}
	resp.OK(c, gin.H{
		"account": acct,
		"tokens":  tokens,
	})
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh rotates a refresh token. Each refresh token is accepted once.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	claims, err := h.jwtm.ParseRefresh(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh_token")
		return
	}
	if !h.consume(c, claims) {
		return
	}

	userID, _ := claims.UserID()
	acct, err := h.accounts.Repo().FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "account not found")
			return
		}
		h.logger.Error("refresh account lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}

	tokens, err := h.issue(c, acct)
	if err != nil {
		return
	}
	resp.OK(c, gin.H{"tokens": tokens})
}

type logoutReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
	// All revokes every refresh token of the account.
	All bool `json:"all"`
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, http.StatusBadRequest, "invalid payload")
		return
	}
	claims, err := h.jwtm.ParseRefresh(strings.TrimSpace(req.RefreshToken))
	if err != nil {
		resp.Error(c, http.StatusUnauthorized, "invalid refresh_token")
		return
	}
	if !h.consume(c, claims) {
		return
	}
	if req.All {
		if err := h.refresh.RevokeAll(c.Request.Context(), claims.Subject); err != nil {
			h.logger.Error("revoke refresh tokens failed", zap.Error(err))
			resp.Error(c, http.StatusInternalServerError, "internal error")
			return
		}
	}
	resp.OK(c, gin.H{"event": "logged_out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	acct, err := h.accounts.Repo().FindByID(c.Request.Context(), mw.UserID(c))
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			resp.Error(c, http.StatusUnauthorized, "account not found")
			return
		}
		h.logger.Error("me lookup failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return
	}
	resp.OK(c, acct)
}

func (h *AuthHandler) consume(c *gin.Context, claims security.RefreshClaims) bool {
	if err := h.refresh.Consume(c.Request.Context(), claims.Subject, claims.ID); err != nil {
		if errors.Is(err, store.ErrRefreshInvalid) {
			resp.Error(c, http.StatusUnauthorized, "refresh_token revoked or already used")
			return false
		}
		h.logger.Error("refresh consume failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return false
	}
	return true
}

// issue signs a token pair and registers the refresh token. On error the
// response has already been written.
func (h *AuthHandler) issue(c *gin.Context, acct *accounts.Account) (security.Tokens, error) {
	tokens, claims, err := h.jwtm.Issue(acct.Role, acct.ID)
	if err != nil {
		h.logger.Error("token issue failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "token issue failed")
		return security.Tokens{}, err
	}
	if err := h.refresh.Put(c.Request.Context(), claims.Subject, claims.ID); err != nil {
		h.logger.Error("refresh register failed", zap.Error(err))
		resp.Error(c, http.StatusInternalServerError, "internal error")
		return security.Tokens{}, err
	}
	return tokens, nil
}
