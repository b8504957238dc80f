package api

import (
	"github.com/gin-gonic/gin"
	"github.com/veridyen/consultdesk/internal/facade"
	"github.com/veridyen/consultdesk/internal/middleware"
	"github.com/veridyen/consultdesk/internal/models"
	"github.com/veridyen/consultdesk/internal/observ"
	"github.com/veridyen/consultdesk/internal/repository"
	"github.com/veridyen/consultdesk/internal/session"
	"go.uber.org/zap"
)

// RouterConfig carries everything the route table needs. main.go fills it
// from config and the wired stores; tests fill it with fakes.
type RouterConfig struct {
	Env       string
	JWTSecret string

	Resolver   *session.Resolver
	Facade     *facade.Facade
	Identities repository.IdentityRepository
	Logger     *zap.Logger

	// Per-IP rate limit on the public endpoints. Zero disables limiting.
	RateLimitPerSecond int
	RateLimitBurst     int

	// EnableMetrics exposes /metrics and instruments every route. Off in
	// tests: the prometheus default registry is process-global.
	EnableMetrics bool
}

// NewRouter builds the full route table.
//
// Guard ordering is fixed and load-bearing: token check, then profile
// resolution, then role check, then handler. A request stops at the first
// gate it fails.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.EnableMetrics {
		r.Use(observ.Instrument())
	}

	healthHandler := NewHealthHandler(cfg.Env)
	authHandler := NewAuthHandler(cfg.Identities, cfg.Resolver, cfg.JWTSecret, cfg.Logger)
	profileHandler := NewProfileHandler(cfg.Logger)
	consultantHandler := NewConsultantHandler(cfg.Facade, cfg.Logger)
	messageHandler := NewMessageHandler(cfg.Facade, cfg.Logger)
	documentHandler := NewDocumentHandler(cfg.Facade, cfg.Logger)
	applicationHandler := NewApplicationHandler(cfg.Facade, cfg.Logger)
	accountingHandler := NewAccountingHandler(cfg.Facade, cfg.Logger)

	// Probes stay outside every middleware group: the liveness check must
	// answer even when auth or the backing stores are on fire.
	r.GET("/health", healthHandler.Health)
	if cfg.EnableMetrics {
		r.GET("/metrics", observ.MetricsHandler())
	}

	public := r.Group("/v1/auth")
	if cfg.RateLimitPerSecond > 0 {
		public.Use(middleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	public.POST("/signup", authHandler.Signup)
	public.POST("/login", authHandler.Login)

	v1 := r.Group("/v1")
	v1.Use(middleware.Auth(cfg.JWTSecret), middleware.RequireProfile(cfg.Resolver))

	v1.GET("/profile/me", profileHandler.Me)
	v1.GET("/countries/:id/consultant", applicationHandler.CountryConsultant)
	v1.POST("/messages/send", messageHandler.Send)

	staff := v1.Group("")
	staff.Use(middleware.RequireRole(models.RoleConsultant, models.RoleAdmin))
	staff.POST("/consultant/clients", consultantHandler.Clients)
	staff.POST("/consultant/assign", consultantHandler.Assign)
	staff.POST("/messages/list", messageHandler.List)
	staff.GET("/clients/:id/documents", documentHandler.ListByClient)
	staff.PATCH("/documents/:id/status", documentHandler.UpdateStatus)
	staff.GET("/clients/:id/notifications", documentHandler.ListNotifications)

	admin := v1.Group("")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.POST("/applications/assign", applicationHandler.Assign)
	admin.POST("/accounting/client", accountingHandler.Client)

	return r
}
