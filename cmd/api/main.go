package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/agendou/agendou-api/internal/auth"
	"github.com/agendou/agendou-api/internal/config"
	"github.com/agendou/agendou-api/internal/email"
	appointmenth "github.com/agendou/agendou-api/internal/handler/appointment"
	authnh "github.com/agendou/agendou-api/internal/handler/authn"
	catalogh "github.com/agendou/agendou-api/internal/handler/catalog"
	categoryh "github.com/agendou/agendou-api/internal/handler/category"
	"github.com/agendou/agendou-api/internal/handler/health"
	reviewh "github.com/agendou/agendou-api/internal/handler/review"
	scheduleh "github.com/agendou/agendou-api/internal/handler/schedule"
	userh "github.com/agendou/agendou-api/internal/handler/user"
	"github.com/agendou/agendou-api/internal/middleware"
	fsrepo "github.com/agendou/agendou-api/internal/repository/firestore"
	"github.com/agendou/agendou-api/internal/router"
	appointmentService "github.com/agendou/agendou-api/internal/service/appointment"
	authnService "github.com/agendou/agendou-api/internal/service/authn"
	catalogService "github.com/agendou/agendou-api/internal/service/catalog"
	categoryService "github.com/agendou/agendou-api/internal/service/category"
	reviewService "github.com/agendou/agendou-api/internal/service/review"
	scheduleService "github.com/agendou/agendou-api/internal/service/schedule"
	userService "github.com/agendou/agendou-api/internal/service/user"
	"github.com/agendou/agendou-api/pkg/logger"
	"github.com/agendou/agendou-api/pkg/messaging"
	redisbroker "github.com/agendou/agendou-api/pkg/messaging/redis"
	"github.com/agendou/agendou-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	ctx := context.Background()

	clients, err := auth.NewClients(ctx, cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Firebase clients")
	}

	store := fsrepo.NewStore(clients.Firestore)
	defer store.Close()

	// Repositories
	userRepo := fsrepo.NewUserRepository(store)
	serviceRepo := fsrepo.NewServiceRepository(store)
	appointmentRepo := fsrepo.NewAppointmentRepository(store)
	categoryRepo := fsrepo.NewCategoryRepository(store)
	reviewRepo := fsrepo.NewReviewRepository(store)
	scheduleRepo := fsrepo.NewWorkScheduleRepository(store)

	// Event broker is optional; the API degrades to not publishing.
	var broker messaging.Broker
	if cfg.Redis.URL != "" {
		broker, err = redisbroker.NewBroker(redisbroker.Config{URL: cfg.Redis.URL}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer broker.Close()
	}

	var mailer email.Sender
	if cfg.SMTP.Host != "" {
		mailer = email.NewService(cfg.SMTP, log)
	}

	// Services
	accounts := auth.NewFirebaseAccounts(clients.Auth)
	authnSvc := authnService.NewService(accounts, userRepo, mailer, log)
	userSvc := userService.NewService(userRepo, broker, log)
	catalogSvc := catalogService.NewService(serviceRepo, broker, log)
	appointmentSvc := appointmentService.NewService(appointmentRepo, userRepo, serviceRepo, mailer, broker, log)
	categorySvc := categoryService.NewService(categoryRepo, broker, log)
	reviewSvc := reviewService.NewService(reviewRepo, appointmentRepo, userRepo, broker, log)
	scheduleSvc := scheduleService.NewService(scheduleRepo, broker, log)

	// Token verification
	var verifier auth.TokenVerifier
	if cfg.Auth.Mode == "static" {
		log.Warn().Msg("static token verification enabled; do not use in production")
		verifier = auth.NewStaticVerifier(cfg.Auth.DevSecret)
	} else {
		verifier = auth.NewFirebaseVerifier(clients.Auth)
	}
	authMiddleware := middleware.NewAuth(verifier)

	// Handlers
	v := validator.New()
	handlers := router.Handlers{
		Authn:       authnh.NewHandler(authnSvc, v, log),
		User:        userh.NewHandler(userSvc, v, log),
		Catalog:     catalogh.NewHandler(catalogSvc, v, log),
		Appointment: appointmenth.NewHandler(appointmentSvc, v, log),
		Category:    categoryh.NewHandler(categorySvc, v, log),
		Review:      reviewh.NewHandler(reviewSvc, v, log),
		Schedule:    scheduleh.NewHandler(scheduleSvc, v, log),
		Health:      health.NewHandler(health.Check{Name: "firestore", Probe: store.Ping}),
	}

	r := router.New(router.Config{Mode: cfg.Server.Mode, RateLimit: cfg.RateLimit}, authMiddleware, handlers, log)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
