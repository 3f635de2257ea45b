package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/manhwalog/manhwa-api/internal/api/handler"
	"github.com/manhwalog/manhwa-api/internal/api/middleware"
	"github.com/manhwalog/manhwa-api/internal/core/ports"
)

// Deps carries everything the router needs to wire handlers and middleware.
type Deps struct {
	Log         zerolog.Logger
	CORSOrigins []string
	// RegisterRatePerMin bounds register and login calls per client IP.
	RegisterRatePerMin int

	Verifier   middleware.AccessVerifier
	Identities ports.IdentityFinder

	AuthService     ports.AuthService
	UserService     ports.UserService
	ManhwaService   ports.ManhwaService
	BookmarkService ports.BookmarkService

	HealthChecks map[string]handler.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	authenticate := middleware.Authenticate(d.Verifier, d.Identities, d.Log)
	requireAdmin := middleware.RequireAdmin()

	authHandler := handler.NewAuthHandler(d.AuthService)
	userHandler := handler.NewUserHandler(d.UserService)
	manhwaHandler := handler.NewManhwaHandler(d.ManhwaService)
	bookmarkHandler := handler.NewBookmarkHandler(d.BookmarkService)

	// --- Users ---
	users := e.Group("/api/users")
	credentials := middleware.RateLimitPerMinute(d.RegisterRatePerMin)
	users.POST("/register", authHandler.Register, credentials)
	users.POST("/login", authHandler.Login, credentials)
	users.GET("", userHandler.List, authenticate, requireAdmin)
	users.PUT("/role/:id", userHandler.UpdateRole, authenticate, requireAdmin, middleware.RequireSuperadmin())
	users.GET("/:id", userHandler.Get, authenticate)
	users.PUT("/:id", userHandler.Update, authenticate)
	users.DELETE("/:id", userHandler.Delete, authenticate)

	// --- Catalog: public reads, admin writes ---
	catalog := e.Group("/api/manhwa")
	catalog.GET("", manhwaHandler.List)
	catalog.GET("/s", manhwaHandler.Find)
	catalog.POST("", manhwaHandler.Create, authenticate, requireAdmin)
	catalog.PUT("/:id", manhwaHandler.Update, authenticate, requireAdmin)
	catalog.DELETE("/:id", manhwaHandler.Delete, authenticate, requireAdmin)

	// --- Bookmarks: always scoped to the caller ---
	bookmarks := e.Group("/api/bookmarks", authenticate)
	bookmarks.GET("", bookmarkHandler.List)
	bookmarks.POST("", bookmarkHandler.Add)
	bookmarks.PUT("/:id", bookmarkHandler.UpdateChapter)
	bookmarks.DELETE("/:id", bookmarkHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	health := handler.NewHealthHandler(d.HealthChecks)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
