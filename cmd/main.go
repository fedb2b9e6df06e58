package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"jobtracker/internal/application"
	"jobtracker/internal/auth"
	"jobtracker/internal/config"
	"jobtracker/internal/database"
	"jobtracker/internal/handlers"
	"jobtracker/internal/mail"
	"jobtracker/internal/metrics"
	"jobtracker/internal/middleware"
	"jobtracker/internal/repository"
	"jobtracker/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.GetDSN()); err != nil {
		logger.Fatal("run migrations", zap.Error(err))
	}

	// Repositories
	users := repository.NewPostgresUserRepository(pool)
	resetTokens := repository.NewPostgresResetTokenRepository(pool)
	applications := repository.NewPostgresApplicationRepository(pool)

	// Services
	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL)
	resetManager := auth.NewResetManager(resetTokens, cfg.JWT.ResetTokenTTL)
	appService := application.NewService(applications)
	mailer := mail.NewSMTPMailer(&cfg.Email)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	router := routes.New(routes.Deps{
		Health:        handlers.NewHealthHandler(pool),
		Auth:          handlers.NewAuthHandler(users, issuer, logger),
		PasswordReset: handlers.NewPasswordResetHandler(users, resetManager, mailer, logger),
		Applications:  handlers.NewApplicationHandler(appService, logger),
		TokenIssuer:   issuer,
		RateLimiter:   rateLimiter,
		Metrics:       metrics.New(),
		Logger:        logger,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
