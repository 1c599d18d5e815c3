package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"schedulepager/config"
	_ "schedulepager/docs"
	"schedulepager/internal/adapters/auth"
	"schedulepager/internal/database"
	delivery "schedulepager/internal/delivery/http"
	"schedulepager/internal/delivery/http/controllers"
	"schedulepager/internal/repository/postgres"
	"schedulepager/internal/services"
)

// @title Schedule Pager API
// @version 1.0
// @description Conference schedules paginated into calendar pages.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DBUrl)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.RunMigrations {
		logger.Info("running database migrations", "dir", cfg.MigrationsDir)
		if err := database.Migrate(cfg.DBUrl, cfg.MigrationsDir); err != nil {
			logger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
	}

	eventRepo := postgres.NewEventRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)

	jwt := auth.NewJWT(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	authSvc := services.NewAuthService(userRepo, roleRepo, hasher, jwt, cfg.JWTExpiry, cfg.RequestTimeout)
	scheduleSvc := services.NewScheduleService(eventRepo, sessionRepo, cfg.RequestTimeout)
	calendarSvc := services.NewCalendarService(eventRepo, sessionRepo, cfg.RequestTimeout)

	handler := delivery.NewRouter(logger, jwt, cfg.CORSAllowedOrigins, delivery.Controllers{
		Auth:     controllers.NewAuthController(logger, authSvc),
		Schedule: controllers.NewScheduleController(logger, scheduleSvc),
		Calendar: controllers.NewCalendarController(logger, calendarSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
