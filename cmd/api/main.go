package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/telemedix/telemed-api/internal/config"
	"github.com/telemedix/telemed-api/internal/handler"
	appointmentHandler "github.com/telemedix/telemed-api/internal/handler/appointment"
	authHandler "github.com/telemedix/telemed-api/internal/handler/auth"
	doctorHandler "github.com/telemedix/telemed-api/internal/handler/doctor"
	patientHandler "github.com/telemedix/telemed-api/internal/handler/patient"
	"github.com/telemedix/telemed-api/internal/middleware"
	"github.com/telemedix/telemed-api/internal/repository/postgres"
	"github.com/telemedix/telemed-api/internal/router"
	appointmentService "github.com/telemedix/telemed-api/internal/service/appointment"
	authService "github.com/telemedix/telemed-api/internal/service/auth"
	doctorService "github.com/telemedix/telemed-api/internal/service/doctor"
	patientService "github.com/telemedix/telemed-api/internal/service/patient"
	"github.com/telemedix/telemed-api/internal/session"
	"github.com/telemedix/telemed-api/pkg/logger"
	"github.com/telemedix/telemed-api/pkg/metrics"
	"github.com/telemedix/telemed-api/pkg/security"
)

func main() {
	log := logger.NewLogger(nil)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	sessions, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal(err, "failed to initialize session store")
	}
	defer sessions.Close()

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	m := metrics.NewMetrics("telemed")
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)

	// Services
	authSvc := authService.NewService(patientRepo, adminRepo, sessions, hasher, m)
	patientSvc := patientService.NewService(patientRepo, sessions)
	doctorSvc := doctorService.NewService(doctorRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(sessions, adminRepo)
	authH := authHandler.NewHandler(authSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.NewRouter(cfg, authMiddleware, authH, patientH, doctorH, appointmentH, healthH, m)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal(err, "server forced to shutdown")
	}

	log.Info("server exited properly")
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch cfg.Session.Backend {
	case "redis":
		return session.NewRedisStore(session.RedisConfig{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, cfg.Session.TTL)
	case "memory":
		return session.NewMemoryStore(cfg.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}
