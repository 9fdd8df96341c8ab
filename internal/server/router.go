package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"saassyadmin/internal/accounts"
	"saassyadmin/internal/config"
	"saassyadmin/internal/security"
	"saassyadmin/internal/server/apidocs"
	"saassyadmin/internal/server/handlers"
	"saassyadmin/internal/server/mw"
	"saassyadmin/internal/server/web"
	"saassyadmin/internal/store"
	"saassyadmin/internal/theme"
)

type Deps struct {
	Accounts accounts.Repository
	Redis    *redis.Client
	// Theme defaults to theme.Default() when nil.
	Theme *theme.Config
}

func NewRouter(cfg config.Config, deps Deps, logger *zap.Logger) (http.Handler, error) {
	switch cfg.AppEnv {
	case config.EnvLocal:
		gin.SetMode(gin.DebugMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	svc, err := accounts.NewService(deps.Accounts)
	if err != nil {
		return nil, fmt.Errorf("accounts service: %w", err)
	}

	themeCfg := theme.Default()
	if deps.Theme != nil {
		c := *deps.Theme
		themeCfg = &c
	}
	themeCfg.Content = web.ContentGlobs
	sheet, err := theme.Build(web.Files, themeCfg)
	if err != nil {
		return nil, err
	}
	logger.Info("theme compiled", zap.Int("classes", sheet.Classes), zap.Int("bytes", len(sheet.CSS)))

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	jwtm := security.NewJWTManager(cfg.JWTSigningKey, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	sessionStore := store.NewSessionStore(deps.Redis, cfg.SessionTTL)
	refreshStore := store.NewRefreshStore(deps.Redis, cfg.JWTRefreshTTL)
	cookies := mw.Cookies{Secure: cfg.SessionCookieSecure}

	stylesheetURL := "/assets/theme.css?v=" + strings.Trim(sheet.ETag, `"`)
	pageH := handlers.NewPageHandler(logger, svc, sessionStore, cookies, stylesheetURL)
	authH := handlers.NewAuthHandler(logger, svc, refreshStore, jwtm)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(mw.Recovery(logger, pageH.InternalError))
	r.Use(mw.RequestIDMiddleware())
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.SecurityHeaders(cfg.SessionCookieSecure))
	r.Use(mw.LanguageMiddleware())
	r.Use(mw.RateLimit(deps.Redis, cfg.RateLimitRPS, logger))

	r.GET("/health", handlers.Health(deps.Redis))
	r.GET("/assets/theme.css", handlers.ThemeCSS(sheet))

	pages := r.Group("")
	pages.Use(mw.LoadSession(sessionStore, deps.Accounts, cookies, logger))
	pages.Use(mw.CSRF(cookies, logger, pageH.CSRFFailed))
	pages.GET("/", pageH.Index)
	pages.GET(handlers.RegisterPath, pageH.RegisterForm)
	pages.POST(handlers.RegisterPath, pageH.Register)
	pages.GET(handlers.LoginPath, pageH.LoginForm)
	pages.POST(handlers.LoginPath, pageH.Login)
	pages.POST("/authentication/logout", pageH.Logout)
	pages.GET(handlers.DashboardPath, mw.RequireSession(handlers.LoginPath), pageH.Dashboard)

	origins := cfg.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	api := r.Group("/api")
	api.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "Accept-Language", mw.HeaderRequestID},
	}))
	apidocs.Register(api)

	v1 := api.Group("/v1")
	v1.POST("/auth/register", authH.Register)
	v1.POST("/auth/login", authH.Login)
	v1.POST("/auth/refresh", authH.Refresh)
	v1.POST("/auth/logout", authH.Logout)
	v1.GET("/me", mw.RequireAuth(jwtm), authH.Me)

	r.NoRoute(pageH.NotFound)

	return r, nil
}
