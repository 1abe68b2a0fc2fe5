package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/jaayveeworld/affiliate-portal-api/docs"
	"github.com/jaayveeworld/affiliate-portal-api/internal/api/handler"
	"github.com/jaayveeworld/affiliate-portal-api/internal/api/middleware"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/service"
	"github.com/jaayveeworld/affiliate-portal-api/internal/infrastructure/config"
	mongodb "github.com/jaayveeworld/affiliate-portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/jaayveeworld/affiliate-portal-api/internal/infrastructure/db/redis"
	"github.com/jaayveeworld/affiliate-portal-api/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("affiliate_portal"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	affiliateRepo := mongodb.NewAffiliateRepository(db)
	linkRepo := mongodb.NewLinkRepository(db)
	commissionRepo := mongodb.NewCommissionRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, affiliateRepo, cfg.JWTSecret, cfg.SessionTTL)
	statsService := service.NewStatsService(affiliateRepo, linkRepo, commissionRepo, log)
	affiliateService := service.NewAffiliateService(affiliateRepo, linkRepo, commissionRepo, statsService, cfg.PublicBaseURL, log)
	clickDedup := redisdb.NewClickDedup(rdb, cfg.Redis.ClickDedupTTL)
	trackingService := service.NewTrackingService(linkRepo, affiliateRepo, commissionRepo, clickDedup, log)
	eventsClient := upstream.NewEventsClient(cfg.Events.BaseURL, cfg.Events.Timeout)
	eventService := service.NewEventService(eventsClient, log)

	// --- Handlers ---
	secureCookies := cfg.Env == "production"
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, secureCookies)
	affiliateHandler := handler.NewAffiliateHandler(affiliateService)
	linkHandler := handler.NewLinkHandler(affiliateService)
	statsHandler := handler.NewStatsHandler(statsService)
	eventHandler := handler.NewEventHandler(eventService)
	trackingHandler := handler.NewTrackingHandler(trackingService)

	authMiddleware := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Affiliate surface ---
	affiliate := e.Group("/affiliate", authMiddleware)
	affiliate.GET("/me", affiliateHandler.Me, middleware.RBAC(domain.RoleAffiliate))
	affiliate.GET("/stats", statsHandler.Get, middleware.RBAC(domain.RoleAffiliate, domain.RoleStaff, domain.RoleAdmin))
	affiliate.GET("/wallet", affiliateHandler.Wallet, middleware.RBAC(domain.RoleAffiliate))
	affiliate.GET("/profile", affiliateHandler.Profile, middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	affiliate.PUT("/profile", affiliateHandler.UpdateProfile, middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	affiliate.DELETE("/profile", affiliateHandler.Deactivate, middleware.RBAC(domain.RoleAdmin))

	// --- Referral links ---
	links := e.Group("/links", authMiddleware, middleware.RBAC(domain.RoleAffiliate))
	links.POST("", linkHandler.Create)
	links.GET("", linkHandler.List)

	// --- Event catalog ---
	e.GET("/events", eventHandler.List, authMiddleware)

	// --- Tracking ---
	e.GET("/r/:code", trackingHandler.Redirect) // public: followed by visitors
	e.POST("/conversions", trackingHandler.RecordConversion,
		authMiddleware, middleware.RBAC(domain.RoleStaff, domain.RoleAdmin))
	e.PATCH("/commissions/:id/status", trackingHandler.UpdateCommissionStatus,
		authMiddleware, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
