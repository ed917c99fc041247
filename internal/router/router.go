package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/washpoint/admin-api/internal/handler"
	"github.com/washpoint/admin-api/internal/middleware"
	"github.com/washpoint/admin-api/pkg/event"
	"github.com/washpoint/admin-api/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type EventHandler interface {
	Handler
	RegisterRoutesWithEvents(*gin.RouterGroup, *event.Tracker)
}

type Router struct {
	engine        *gin.Engine
	userH         EventHandler
	clientH       EventHandler
	vehicleH      EventHandler
	serviceH      EventHandler
	shiftH        EventHandler
	appointmentH  EventHandler
	notificationH Handler
	reportH       Handler
	h             *handler.Handler
	eventTracker  *event.Tracker
	metrics       *metrics.Metrics
}

type RouterConfig struct {
	RateLimit middleware.RateLimiterConfig
	CORS      middleware.CORSConfig
	Timeout   time.Duration
}

func NewRouter(
	userH EventHandler,
	clientH EventHandler,
	vehicleH EventHandler,
	serviceH EventHandler,
	shiftH EventHandler,
	appointmentH EventHandler,
	notificationH Handler,
	reportH Handler,
	h *handler.Handler,
	eventTracker *event.Tracker,
	m *metrics.Metrics,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit.RPS <= 0 {
		config.RateLimit = middleware.RateLimiterConfig{RPS: 100, Burst: 200}
	}
	if len(config.CORS.AllowOrigins) == 0 {
		config.CORS = middleware.DefaultCORSConfig()
	}

	r := &Router{
		engine:        engine,
		userH:         userH,
		clientH:       clientH,
		vehicleH:      vehicleH,
		serviceH:      serviceH,
		shiftH:        shiftH,
		appointmentH:  appointmentH,
		notificationH: notificationH,
		reportH:       reportH,
		h:             h,
		eventTracker:  eventTracker,
		metrics:       m,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Validation(middleware.DefaultValidationConfig()),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.SizeLimit(middleware.DefaultSizeLimitConfig()),
		middleware.Compress(middleware.DefaultCompressConfig()),
	)

	engine.Use(middleware.CORS(config.CORS))

	rateLimiter := middleware.NewRateLimiter(config.RateLimit)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api")

	r.setupHealthCheck(api)

	r.userH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.clientH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.vehicleH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.serviceH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.shiftH.RegisterRoutesWithEvents(api, r.eventTracker)
	r.appointmentH.RegisterRoutesWithEvents(api, r.eventTracker)

	r.notificationH.RegisterRoutes(api)

	// Reports are read-only aggregates, so responses carry short-lived
	// client cache hints on top of the server-side report cache.
	reports := api.Group("")
	reports.Use(middleware.Cache(middleware.DefaultCacheConfig()))
	r.reportH.RegisterRoutes(reports)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.HTTPErrorsTotal.WithLabelValues(c.Request.Method, path).Inc()
		}
	}
}

func (r *Router) Use(middleware ...gin.HandlerFunc) {
	r.engine.Use(middleware...)
}
