// Package rest exposes the account and scheduling services over JSON/HTTP.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scheduling-api/internal/account"
	"scheduling-api/internal/middleware"
	"scheduling-api/internal/scheduling"
)

type Deps struct {
	Accounts *account.Service
	Sched    *scheduling.Service
	Log      *zap.Logger
	Limiter  *middleware.RateLimiter
	// GraphQL is mounted at POST /graphql when set.
	GraphQL http.Handler
	// Health reports backing-store liveness for /healthz.
	Health func(ctx context.Context) error
	// SecureCookies marks auth cookies Secure; on in production.
	SecureCookies bool
	// TrustedProxies may set X-Forwarded-For. Empty trusts none, so the
	// client IP is the connection's remote address.
	TrustedProxies []string
}

type server struct {
	accounts *account.Service
	sched    *scheduling.Service
	log      *zap.Logger
	secure   bool
	health   func(ctx context.Context) error
}

func New(d Deps) *gin.Engine {
	s := &server{accounts: d.Accounts, sched: d.Sched, log: d.Log, secure: d.SecureCookies, health: d.Health}

	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Log.Warn("invalid trusted proxies, trusting none", zap.Strings("proxies", d.TrustedProxies), zap.Error(err))
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), middleware.GinLogger(d.Log))
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", s.healthz)

	authGroup := r.Group("/auth")
	{
		limited := authGroup.Group("")
		if d.Limiter != nil {
			limited.Use(middleware.GinRateLimit(d.Limiter))
		}
		limited.POST("/register", s.register)
		limited.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.POST("/logout", s.logout)
	}

	public := r.Group("/public")
	{
		public.GET("/users/:userId/availability", s.availability)
		public.GET("/users/:userId/availability.ics", s.availabilityICS)
		public.POST("/events/:eventId/book", s.book)
	}

	protected := r.Group("")
	protected.Use(middleware.RequireUser(d.Accounts))
	{
		protected.GET("/me", s.me)
		protected.GET("/me/schedule", s.getSchedule)
		protected.PUT("/me/schedule", s.putSchedule)
		protected.GET("/users/:userId/availability", s.availability)

		protected.GET("/events", s.listEvents)
		protected.POST("/events", s.createEvent)
		protected.GET("/events/:id", s.getEvent)
		protected.PUT("/events/:id", s.updateEvent)
		protected.DELETE("/events/:id", s.deleteEvent)

		protected.GET("/appointments", s.listAppointments)
		protected.POST("/appointments", s.createAppointment)
		protected.GET("/appointments/:id", s.getAppointment)
		protected.DELETE("/appointments/:id", s.deleteAppointment)
		protected.PATCH("/appointments/:id/status", s.setAppointmentStatus)
	}

	if d.GraphQL != nil {
		r.POST("/graphql", middleware.OptionalUser(d.Accounts), gin.WrapH(d.GraphQL))
	}
	return r
}

func (s *server) healthz(c *gin.Context) {
	if s.health != nil {
		if err := s.health(c.Request.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// uid is set by RequireUser on every protected route.
func uid(c *gin.Context) string {
	id, _ := middleware.UserID(c.Request.Context())
	return id
}
