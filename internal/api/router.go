package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/builderportfolio/portfolio-system/docs"
	"github.com/builderportfolio/portfolio-system/internal/api/handler"
	"github.com/builderportfolio/portfolio-system/internal/api/metrics"
	"github.com/builderportfolio/portfolio-system/internal/api/middleware"
	"github.com/builderportfolio/portfolio-system/internal/core/domain"
	"github.com/builderportfolio/portfolio-system/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users     ports.UserService
	Projects  ports.ProjectService
	Stores    map[string]handler.Counter
	JWTSecret string

	// LoginRPS and LoginBurst bound login attempts per client address.
	// A zero LoginRPS disables the limit.
	LoginRPS   float64
	LoginBurst int

	// Registerer receives the HTTP request collectors. Nil means the
	// default registry, the one /metrics serves.
	Registerer prometheus.Registerer

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(requestMetrics(d.Registerer))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	projectHandler := handler.NewProjectHandler(d.Projects, d.Users, d.Logger.With().Str("component", "project_handler").Logger())

	managerOnly := middleware.RBAC(domain.RoleManager)
	builderOnly := middleware.RBAC(domain.RoleBuilder)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	if d.LoginRPS > 0 {
		e.POST("/auth/login", authHandler.Login, middleware.RateLimitPerIP(rate.Limit(d.LoginRPS), d.LoginBurst, 10*time.Minute, func(echo.Context) {
			metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		}))
	} else {
		e.POST("/auth/login", authHandler.Login)
	}

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(d.JWTSecret))

	v1.GET("/me", userHandler.Me)
	v1.PATCH("/me", userHandler.UpdateMe)

	v1.GET("/projects", projectHandler.List)
	v1.GET("/projects/:id", projectHandler.Get)
	v1.POST("/projects", projectHandler.Create, managerOnly)
	v1.PATCH("/projects/:id", projectHandler.Update, managerOnly)
	v1.DELETE("/projects/:id", projectHandler.Delete, managerOnly)
	v1.PATCH("/projects/:id/status", projectHandler.UpdateStatus, builderOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Stores)

	e.GET("/health", healthHandler.Liveness)           // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestMetrics records request counts, latency and sizes per route pattern
// as portfolio_http_*. Unmatched paths share one label value.
func requestMetrics(reg prometheus.Registerer) echo.MiddlewareFunc {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 metrics.Namespace,
		Subsystem:                 "http",
		Registerer:                reg,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
