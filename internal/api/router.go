package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/jobqueue-gateway/docs"
	"github.com/99minutos/jobqueue-gateway/internal/api/handler"
	"github.com/99minutos/jobqueue-gateway/internal/api/middleware"
	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
	"github.com/99minutos/jobqueue-gateway/internal/core/ports"
	"github.com/99minutos/jobqueue-gateway/internal/core/service"
	"github.com/99minutos/jobqueue-gateway/internal/pkg/config"
)

const metricsPath = "/metrics"

// Deps are the adapters the router wires into the services. Registerer and
// Gatherer default to the global Prometheus registry; Clock defaults to
// time.Now.
type Deps struct {
	Config      *config.Config
	Users       ports.UserRepository
	Jobs        ports.JobRepository
	Idempotency ports.IdempotencyStore
	Logger      zerolog.Logger
	Registerer  prometheus.Registerer
	Gatherer    prometheus.Gatherer
	Checks      map[string]handler.Check
	Clock       func() time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	cfg := d.Config
	log := d.Logger
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	var tokenOpts []service.TokenOption
	if d.Clock != nil {
		tokenOpts = append(tokenOpts, service.WithClock(d.Clock))
	}
	verifier := service.NewPasswordVerifier(d.Users, cfg.Auth.Salt, log)
	tokens := service.NewTokenService(d.Users, service.TokenConfig{
		Secret:   cfg.Auth.JWTSecret,
		Issuer:   cfg.Auth.Issuer,
		Lifetime: cfg.Auth.TokenLifetime(),
	}, log, tokenOpts...)
	gateway := service.NewGateway(verifier, tokens, service.GatewayConfig{
		LoginPath: cfg.Auth.LoginPath,
	})
	jobService := service.NewJobService(d.Jobs, d.Users, d.Idempotency, cfg.Redis.IdempotencyTTL, log)

	authHandler := handler.NewAuthHandler(tokens)
	jobHandler := handler.NewJobHandler(jobService)
	healthHandler := handler.NewHealthHandler(d.Checks)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "gateway",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))
	e.Use(middleware.Gateway(gateway, log))

	// --- Token issuance (Basic) ---
	e.GET(service.NormalizePath(cfg.Auth.LoginPath), authHandler.Token)

	// --- Job queue (Bearer, path user or admin) ---
	jobs := e.Group("/:uid/jobs", middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin))
	jobs.POST("", jobHandler.Enqueue)
	jobs.GET("", jobHandler.List)
	jobs.GET("/:id", jobHandler.Status)
	jobs.DELETE("/:id", jobHandler.Cancel)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness: is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness: are dependencies up?
	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: d.Gatherer,
	}))
	e.GET(service.DocsPathPrefix+"*", echoSwagger.WrapHandler)

	return e
}
