package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/telemedix/telemed-api/internal/config"
	"github.com/telemedix/telemed-api/internal/handler"
	appointmentHandler "github.com/telemedix/telemed-api/internal/handler/appointment"
	authHandler "github.com/telemedix/telemed-api/internal/handler/auth"
	doctorHandler "github.com/telemedix/telemed-api/internal/handler/doctor"
	patientHandler "github.com/telemedix/telemed-api/internal/handler/patient"
	"github.com/telemedix/telemed-api/internal/middleware"
	"github.com/telemedix/telemed-api/internal/model"
	"github.com/telemedix/telemed-api/pkg/metrics"
)

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	authH        *authHandler.Handler
	patientH     *patientHandler.Handler
	doctorH      *doctorHandler.Handler
	appointmentH *appointmentHandler.Handler
	healthH      *handler.HealthHandler
	metrics      *metrics.Metrics
}

func NewRouter(
	cfg *config.Config,
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	patientH *patientHandler.Handler,
	doctorH *doctorHandler.Handler,
	appointmentH *appointmentHandler.Handler,
	healthH *handler.HealthHandler,
	m *metrics.Metrics,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	registerValidators()

	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		authH:        authH,
		patientH:     patientH,
		doctorH:      doctorH,
		appointmentH: appointmentH,
		healthH:      healthH,
		metrics:      m,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: cfg.Server.RequestTimeout}),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	r.engine.GET("/healthz", r.healthH.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public
	r.engine.POST("/patient/register", r.authH.Register)
	r.engine.POST("/patient/login", r.authH.PatientLogin)
	r.engine.POST("/admin/login", r.authH.AdminLogin)
	r.engine.GET("/doctors", r.doctorH.List)

	// Patient session required
	patient := r.engine.Group("/")
	patient.Use(r.auth.RequirePatient())
	{
		patient.POST("/logout", r.authH.Logout)
		patient.GET("/patient/profile", r.patientH.GetProfile)
		patient.PUT("/patient/profile", r.patientH.UpdateProfile)
		patient.DELETE("/patient/delete", r.patientH.Delete)

		patient.POST("/appointments", r.appointmentH.Create)
		patient.GET("/appointments", r.appointmentH.List)
		patient.PUT("/appointments/:id", r.appointmentH.Reschedule)
		patient.DELETE("/appointments/:id", r.appointmentH.Cancel)
	}

	// Admin role required, re-checked against storage per request
	admin := r.engine.Group("/admin")
	admin.Use(r.auth.RequireAdmin())
	{
		admin.GET("/patient", r.patientH.Search)
		admin.POST("/create-doctor", r.doctorH.Create)
		admin.PUT("/doctors/:id", r.doctorH.Update)
		admin.DELETE("/doctors/:id", r.doctorH.Delete)
		admin.PUT("/appointments/:id/confirm", r.appointmentH.Confirm)
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		r.metrics.RequestTotal.WithLabelValues(method, path, status).Inc()
		r.metrics.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(method, path, status).Inc()
		}
	}
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			switch model.Gender(fl.Field().String()) {
			case model.GenderMale, model.GenderFemale, model.GenderOther:
				return true
			}
			return false
		})
	}
}
