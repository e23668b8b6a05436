// Package api is the REST surface of the development API server: the auth
// endpoints, the authenticated profile, health and metrics.
package api

import (
	"context"

	"github.com/dmitrijs2005/assocportal/internal/logging"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/dmitrijs2005/assocportal/internal/server/services"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UserService is the business logic the handlers call.
type UserService interface {
	Register(ctx context.Context, email, password string, role models.Role) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Authenticate(token string) (*models.PublicUser, error)
	Me(ctx context.Context, userID string) (*models.PublicUser, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, password string) error
}

// NewRouter builds the Echo instance with all routes registered. Request
// metrics are registered on reg and served from /metrics.
func NewRouter(svc UserService, reg *prometheus.Registry, logger logging.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(newHTTPMetrics(reg).middleware)

	// --- Dependencies ---
	authHandler := NewAuthHandler(svc, logger)

	// --- Auth routes ---
	g := e.Group("/auth")
	g.POST("/login", authHandler.Login)
	g.POST("/register", authHandler.Register)
	g.POST("/forgot-password", authHandler.ForgotPassword)
	g.POST("/reset-password", authHandler.ResetPassword)

	// --- Authenticated routes ---
	e.GET("/users/me", authHandler.Me, Auth(svc))

	// --- Probes ---
	e.GET("/health", Liveness)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	return e
}
