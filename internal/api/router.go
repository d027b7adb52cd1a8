package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minicrm/crm-api/internal/api/handler"
	"github.com/minicrm/crm-api/internal/api/middleware"
	"github.com/minicrm/crm-api/internal/core/domain"
	"github.com/minicrm/crm-api/internal/core/service"
	crmmongo "github.com/minicrm/crm-api/internal/infrastructure/db/mongo"
	crmredis "github.com/minicrm/crm-api/internal/infrastructure/db/redis"
)

// Options carries the runtime knobs the router needs beyond its stores.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, opts Options, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Dependencies ---
	userRepo := crmmongo.NewUserRepository(db)
	customerRepo := crmmongo.NewCustomerRepository(db)
	leadRepo := crmmongo.NewLeadRepository(db)
	statsCache := crmredis.NewStatsCache(rdb)

	tokenService := service.NewTokenService(opts.JWTSecret, opts.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	customerService := service.NewCustomerService(customerRepo, leadRepo, statsCache, log)
	leadService := service.NewLeadService(leadRepo, customerRepo, statsCache, log)
	statsService := service.NewStatsService(customerRepo, leadRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	customerHandler := handler.NewCustomerHandler(customerService)
	leadHandler := handler.NewLeadHandler(leadService)
	dashboardHandler := handler.NewDashboardHandler(statsService)
	userHandler := handler.NewUserHandler(userRepo)

	authRequired := middleware.Auth(authService)

	// --- Public routes ---
	api := e.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	secured := api.Group("", authRequired)
	secured.GET("/auth/me", authHandler.Me)

	secured.POST("/customers", customerHandler.Create)
	secured.GET("/customers", customerHandler.List)
	secured.GET("/customers/:id", customerHandler.Get)
	secured.PUT("/customers/:id", customerHandler.Update)
	secured.DELETE("/customers/:id", customerHandler.Delete)

	secured.POST("/customers/:id/leads", leadHandler.CreateForCustomer)
	secured.GET("/customers/:id/leads", leadHandler.ListForCustomer)
	secured.GET("/leads", leadHandler.List)
	secured.PUT("/leads/:id", leadHandler.Update)
	secured.DELETE("/leads/:id", leadHandler.Delete)

	secured.GET("/dashboard/stats", dashboardHandler.Stats)

	secured.GET("/users", userHandler.List, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}
