// Package router wires middleware and handlers onto the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appointmenth "github.com/agendou/agendou-api/internal/handler/appointment"
	authnh "github.com/agendou/agendou-api/internal/handler/authn"
	catalogh "github.com/agendou/agendou-api/internal/handler/catalog"
	categoryh "github.com/agendou/agendou-api/internal/handler/category"
	"github.com/agendou/agendou-api/internal/handler/health"
	"github.com/agendou/agendou-api/internal/handler/metrics"
	reviewh "github.com/agendou/agendou-api/internal/handler/review"
	scheduleh "github.com/agendou/agendou-api/internal/handler/schedule"
	userh "github.com/agendou/agendou-api/internal/handler/user"
	"github.com/agendou/agendou-api/internal/middleware"
)

type Handlers struct {
	Authn       *authnh.Handler
	User        *userh.Handler
	Catalog     *catalogh.Handler
	Appointment *appointmenth.Handler
	Category    *categoryh.Handler
	Review      *reviewh.Handler
	Schedule    *scheduleh.Handler
	Health      *health.Handler
}

type Config struct {
	Mode      string `mapstructure:"mode"`
	RateLimit middleware.RateLimitConfig
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.Auth
	handlers Handlers
	metrics  *metrics.Handler
}

func New(cfg Config, auth *middleware.Auth, handlers Handlers, logger zerolog.Logger) *Router {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	m := metrics.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		m.Middleware(),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	if cfg.RateLimit.RequestsPerSecond > 0 {
		engine.Use(middleware.NewRateLimiter(cfg.RateLimit).Limit())
	}

	return &Router{engine: engine, auth: auth, handlers: handlers, metrics: m}
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")

	r.handlers.Health.RegisterRoutes(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Require())
	r.setupProtectedRoutes(protected)
}

// Public routes: account creation, password reset, and the read side of
// the public catalog.
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", r.handlers.Authn.SignUp)
		auth.POST("/password-reset", r.handlers.Authn.RequestPasswordReset)
	}

	users := rg.Group("/users")
	{
		users.GET("", r.handlers.User.List)
		users.GET("/watch", r.handlers.User.Watch)
		users.GET("/:id", r.handlers.User.Get)
	}

	services := rg.Group("/services")
	{
		services.GET("", r.handlers.Catalog.List)
		services.GET("/watch", r.handlers.Catalog.Watch)
		services.GET("/:id", r.handlers.Catalog.Get)
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", r.handlers.Category.List)
		categories.GET("/watch", r.handlers.Category.Watch)
		categories.GET("/:id", r.handlers.Category.Get)
	}

	reviews := rg.Group("/reviews")
	{
		reviews.GET("", r.handlers.Review.List)
		reviews.GET("/watch", r.handlers.Review.Watch)
		reviews.GET("/:id", r.handlers.Review.Get)
	}

	schedules := rg.Group("/schedules")
	{
		schedules.GET("", r.handlers.Schedule.List)
		schedules.GET("/watch", r.handlers.Schedule.Watch)
		schedules.GET("/:id", r.handlers.Schedule.Get)
	}
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.GET("/me", r.handlers.Authn.Me)
		auth.POST("/signout", r.handlers.Authn.SignOut)
		auth.DELETE("/account", r.handlers.Authn.DeleteAccount)
	}

	users := rg.Group("/users")
	{
		users.PUT("/:id", r.handlers.User.Update)
		users.DELETE("/:id", r.handlers.User.Delete)
	}

	services := rg.Group("/services")
	{
		services.POST("", r.handlers.Catalog.Create)
		services.PUT("/:id", r.handlers.Catalog.Update)
		services.DELETE("/:id", r.handlers.Catalog.Delete)
	}

	appointments := rg.Group("/appointments")
	{
		appointments.POST("", r.handlers.Appointment.Create)
		appointments.GET("", r.handlers.Appointment.List)
		appointments.GET("/watch", r.handlers.Appointment.Watch)
		appointments.GET("/:id", r.handlers.Appointment.Get)
		appointments.PUT("/:id", r.handlers.Appointment.Update)
		appointments.POST("/:id/cancel", r.handlers.Appointment.Cancel)
		appointments.DELETE("/:id", r.handlers.Appointment.Delete)
	}

	categories := rg.Group("/categories")
	{
		categories.POST("", r.handlers.Category.Create)
		categories.PUT("/:id", r.handlers.Category.Update)
		categories.DELETE("/:id", r.handlers.Category.Delete)
	}

	reviews := rg.Group("/reviews")
	{
		reviews.POST("", r.handlers.Review.Create)
		reviews.PUT("/:id", r.handlers.Review.Update)
		reviews.DELETE("/:id", r.handlers.Review.Delete)
	}

	schedules := rg.Group("/schedules")
	{
		schedules.POST("", r.handlers.Schedule.Create)
		schedules.PUT("/:id", r.handlers.Schedule.Update)
		schedules.DELETE("/:id", r.handlers.Schedule.Delete)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
