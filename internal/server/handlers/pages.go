package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/i18n"
	"saassyadmin/internal/server/mw"
	"saassyadmin/internal/server/web"
	"saassyadmin/internal/store"
)

const (
	LoginPath     = "/authentication/login"
	RegisterPath  = "/authentication/register"
	DashboardPath = "/dashboard"

	dashboardPageSize = 20
	// bounds the list offset
	maxDashboardPage = math.MaxInt32 / dashboardPageSize
)

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	logger *zap.Logger

	accounts      *accounts.Service
	sessions      *store.SessionStore
	cookies       mw.Cookies
	stylesheetURL string
}

func NewPageHandler(logger *zap.Logger, svc *accounts.Service, sessions *store.SessionStore, cookies mw.Cookies, stylesheetURL string) *PageHandler {
	return &PageHandler{
		logger:        logger,
		accounts:      svc,
		sessions:      sessions,
		cookies:       cookies,
		stylesheetURL: stylesheetURL,
	}
}

func (h *PageHandler) page(c *gin.Context, title string) web.Page {
	return web.Page{
		Lang:          mw.Language(c),
		Title:         title,
		StylesheetURL: h.stylesheetURL,
		CSRF:          mw.CSRFToken(c),
		Account:       mw.Account(c),
	}
}

func (h *PageHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", h.page(c, "index.title"))
}

func (h *PageHandler) RegisterForm(c *gin.Context) {
	if mw.Account(c) != nil {
		c.Redirect(http.StatusSeeOther, DashboardPath)
		return
	}
	c.HTML(http.StatusOK, "register", h.page(c, "register.title"))
}

type registerForm struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Password        string `form:"password"`
	ConfirmPassword string `form:"confirm_password"`
}

func (h *PageHandler) Register(c *gin.Context) {
	var f registerForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderError(c, http.StatusBadRequest, "error.bad_request")
		return
	}

	acct, err := h.accounts.Register(c.Request.Context(), accounts.RegisterInput{
		Name:            f.Name,
		Email:           f.Email,
		Password:        f.Password,
		ConfirmPassword: f.ConfirmPassword,
	})
	if err != nil {
		p := h.page(c, "register.title")
		p.Form = map[string]string{"name": strings.TrimSpace(f.Name), "email": strings.TrimSpace(f.Email)}

		var ve *accounts.ValidationError
		switch {
		case errors.As(err, &ve):
			p.Errors = ve.Fields
		case errors.Is(err, accounts.ErrEmailTaken):
			p.Errors = map[string]string{"email": i18n.T(p.Lang, "error.conflict")}
		default:
			h.logger.Error("register failed", zap.Error(err))
			h.renderError(c, http.StatusInternalServerError, "error.internal")
			return
		}
		c.HTML(http.StatusUnprocessableEntity, "register", p)
		return
	}

	h.logger.Info("account registered", zap.String("account_id", acct.ID.String()), zap.String("role", acct.Role))
	if err := h.startSession(c, acct); err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		h.renderError(c, http.StatusInternalServerError, "error.internal")
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	if mw.Account(c) != nil {
		c.Redirect(http.StatusSeeOther, DashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login", h.page(c, "login.title"))
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *PageHandler) Login(c *gin.Context) {
	var f loginForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderError(c, http.StatusBadRequest, "error.bad_request")
		return
	}

	acct, err := h.accounts.Authenticate(c.Request.Context(), f.Email, f.Password)
	if err != nil {
		if !errors.Is(err, accounts.ErrInvalidCredentials) {
			h.logger.Error("login failed", zap.Error(err))
			h.renderError(c, http.StatusInternalServerError, "error.internal")
			return
		}
		p := h.page(c, "login.title")
		p.Flash = i18n.T(p.Lang, "login.invalid")
		p.Form = map[string]string{"email": strings.TrimSpace(f.Email)}
		c.HTML(http.StatusUnauthorized, "login", p)
		return
	}

	if err := h.startSession(c, acct); err != nil {
		h.logger.Error("create session failed", zap.Error(err))
		h.renderError(c, http.StatusInternalServerError, "error.internal")
		return
	}
	c.Redirect(http.StatusSeeOther, DashboardPath)
}

func (h *PageHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(mw.SessionCookie); err == nil && sid != "" {
		if err := h.sessions.Delete(c.Request.Context(), sid); err != nil {
			h.logger.Warn("delete session failed", zap.Error(err))
		}
	}
	h.cookies.Clear(c, mw.SessionCookie)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	p := h.page(c, "dashboard.title")
	if !p.Account.IsAdmin() {
		c.HTML(http.StatusOK, "dashboard", p)
		return
	}

	pageNo, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || pageNo < 1 {
		pageNo = 1
	}
	if pageNo > maxDashboardPage {
		h.renderError(c, http.StatusNotFound, "error.not_found")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	repo := h.accounts.Repo()
	total, err := repo.Count(ctx)
	if err != nil {
		h.logger.Error("count accounts failed", zap.Error(err))
		h.renderError(c, http.StatusInternalServerError, "error.internal")
		return
	}
	list, err := repo.List(ctx, dashboardPageSize, (pageNo-1)*dashboardPageSize)
	if err != nil {
		h.logger.Error("list accounts failed", zap.Error(err))
		h.renderError(c, http.StatusInternalServerError, "error.internal")
		return
	}
	p.Accounts = list
	p.Total = total
	if pageNo*dashboardPageSize < total {
		p.NextPage = pageNo + 1
	}
	c.HTML(http.StatusOK, "dashboard", p)
}

// CSRFFailed renders the 403 page for a rejected form post.
func (h *PageHandler) CSRFFailed(c *gin.Context) {
	h.renderError(c, http.StatusForbidden, "error.csrf")
}

// InternalError renders the HTML 500 page.
func (h *PageHandler) InternalError(c *gin.Context) {
	h.renderError(c, http.StatusInternalServerError, "error.internal")
}

// NotFound answers unknown routes: JSON under /api, HTML elsewhere.
func (h *PageHandler) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		notFoundJSON(c)
		return
	}
	h.renderError(c, http.StatusNotFound, "error.not_found")
}

func (h *PageHandler) renderError(c *gin.Context, status int, key string) {
	p := h.page(c, "error.title")
	p.Message = i18n.T(p.Lang, key)
	c.HTML(status, "error", p)
}

func (h *PageHandler) startSession(c *gin.Context, acct *accounts.Account) error {
	ctx := c.Request.Context()
	if old, err := c.Cookie(mw.SessionCookie); err == nil && old != "" {
		_ = h.sessions.Delete(ctx, old)
	}
	sid, err := h.sessions.Create(ctx, acct.ID)
	if err != nil {
		return err
	}
	h.cookies.Set(c, mw.SessionCookie, sid, h.sessions.TTL())
	return nil
}
