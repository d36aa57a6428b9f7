package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/taskana/taskana/application/usecase"
	"github.com/taskana/taskana/infrastructure/config"
	taskanahttp "github.com/taskana/taskana/infrastructure/http"
	"github.com/taskana/taskana/infrastructure/http/handler"
	"github.com/taskana/taskana/infrastructure/http/middleware"
	"github.com/taskana/taskana/infrastructure/persistence/postgres"
	"github.com/taskana/taskana/infrastructure/service/jwt"
	"github.com/taskana/taskana/infrastructure/service/logger"
	"github.com/taskana/taskana/infrastructure/service/password"
	"github.com/taskana/taskana/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "taskana",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	rateLimitService, err := ratelimit.NewRateLimitService(ratelimit.Config{
		Enabled:       cfg.RateLimitEnabled,
		RedisURL:      cfg.RedisURL,
		Attempts:      cfg.RateLimitAttempts,
		Window:        cfg.RateLimitWindow,
		BlockDuration: cfg.RateLimitBlockDuration,
	}, logrus.New())
	if err != nil {
		log.Fatalf("Failed to initialize rate limiting: %v", err)
	}

	tokenService, err := jwt.NewJWTService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	passwordService := password.NewBcryptPasswordService(cfg.BcryptCost)

	userRepo := postgres.NewUserRepository(db)
	projectRepo := postgres.NewProjectRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)

	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		tokenService,
		passwordService,
		rateLimitService,
		usecase.ThrottleConfig{
			Attempts:      cfg.RateLimitAttempts,
			Window:        cfg.RateLimitWindow,
			BlockDuration: cfg.RateLimitBlockDuration,
		},
		structuredLogger,
	)
	userUseCase := usecase.NewUserUseCase(userRepo, passwordService, structuredLogger)
	projectUseCase := usecase.NewProjectUseCase(projectRepo, structuredLogger)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, structuredLogger)
	ticketUseCase := usecase.NewTicketUseCase(ticketRepo, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	server := taskanahttp.NewServer(cfg, structuredLogger, authMiddleware, taskanahttp.Handlers{
		Auth:    handler.NewAuthHandler(authUseCase),
		User:    handler.NewUserHandler(userUseCase, authUseCase),
		Project: handler.NewProjectHandler(projectUseCase),
		Task:    handler.NewTaskHandler(taskUseCase),
		Ticket:  handler.NewTicketHandler(ticketUseCase),
	})

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"addr": cfg.ListenAddr(),
		})
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
