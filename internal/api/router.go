package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/influenceai/influence-frontend/internal/api/handler"
	"github.com/influenceai/influence-frontend/internal/api/middleware"
	"github.com/influenceai/influence-frontend/internal/core/domain"
	"github.com/influenceai/influence-frontend/internal/core/ports"
	"github.com/influenceai/influence-frontend/internal/core/service"
	"github.com/influenceai/influence-frontend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, gateway ports.BackendGateway, store ports.SessionStore, apiBase string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("influence_frontend"))

	// --- Dependencies ---
	historyService := service.NewHistoryService(gateway, log)
	dashboardService := service.NewDashboardService(gateway, log)

	authHandler := handler.NewAuthHandler(gateway, store, cfg.Session.CookieName, cfg.Session.TTL, log)
	mlHandler := handler.NewMLHandler(gateway)
	historyHandler := handler.NewHistoryHandler(historyService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	adminHandler := handler.NewAdminHandler(rdb, apiBase)

	sessionGuard := middleware.Session(store, gateway, cfg.Session.CookieName, log)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	// --- Session routes (guarded, no view gate) ---
	e.GET("/auth/me", authHandler.Me, sessionGuard)
	e.POST("/auth/logout", authHandler.Logout, sessionGuard)

	// --- Role-gated view routes ---
	e.GET("/dashboard", dashboardHandler.Overview, sessionGuard, middleware.RequireView(domain.ViewDashboard))
	e.GET("/ml/top-influencers", mlHandler.TopInfluencers, sessionGuard, middleware.RequireView(domain.ViewDashboard))
	e.POST("/ml/upload", mlHandler.Upload, sessionGuard, middleware.RequireView(domain.ViewUpload))
	e.POST("/ml/train", mlHandler.Train, sessionGuard, middleware.RequireView(domain.ViewTrain))
	e.GET("/ml/model-metrics", mlHandler.ModelMetrics, sessionGuard, middleware.RequireView(domain.ViewTrain))
	e.POST("/ml/predict", mlHandler.Predict, sessionGuard, middleware.RequireView(domain.ViewPredict))
	e.GET("/history", historyHandler.List, sessionGuard, middleware.RequireView(domain.ViewHistory))
	e.DELETE("/history/:id", historyHandler.Delete, sessionGuard, middleware.RequireView(domain.ViewHistory))
	e.GET("/history/:id/report", historyHandler.Report, sessionGuard, middleware.RequireView(domain.ViewHistory))
	e.GET("/admin/status", adminHandler.Status, sessionGuard, middleware.RequireView(domain.ViewAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
