package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"workout_api/internal/api"
	"workout_api/internal/app/service"
	"workout_api/internal/common/security"
	"workout_api/internal/domain/repository"
	"workout_api/internal/platform/cache"
	"workout_api/internal/platform/config"
	"workout_api/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	setupLogger(cfg.LogLevel)
	slog.Info("configuration loaded", "storage_driver", cfg.StorageDriver, "port", cfg.APIPort)

	// 2. Initialize JWT and password hashing
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)
	security.SetPasswordCost(cfg.BcryptCost)

	// 3. Initialize Repositories
	ctx := context.Background()
	var (
		userRepo    repository.UserRepository
		workoutRepo repository.WorkoutRepository
		sessionRepo repository.SessionRepository
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		userRepo = repository.NewMemoryUserRepository()
		workoutRepo = repository.NewMemoryWorkoutRepository()
		sessionRepo = repository.NewMemorySessionRepository()
		slog.Warn("using in-memory storage; data is lost on restart")
	case config.StorageDriverPostgres:
		db, err := database.Connect(ctx, cfg.DBConnStr)
		if err != nil {
			fatal("database connection failed", err)
		}
		defer database.Close()

		if cfg.DBMigrate {
			if err := database.Migrate(ctx, db); err != nil {
				fatal("database migration failed", err)
			}
			slog.Info("database migrations applied")
		}

		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			fatal("redis connection failed", err)
		}
		defer cache.CloseRedis()

		userRepo = repository.NewPgUserRepository(db)
		workoutRepo = repository.NewPgWorkoutRepository(db)
		sessionRepo = repository.NewRedisSessionRepository(rdb)
	default:
		fatal("unknown storage driver", errors.New(cfg.StorageDriver))
	}

	// 4. Initialize Services
	authService := service.NewAuthService(userRepo, sessionRepo, tokens, cfg.StorageTimeout)
	workoutService := service.NewWorkoutService(workoutRepo, cfg.StorageTimeout)

	// 5. Initialize Router & HTTP Server
	router := api.NewRouter(authService, workoutService, tokens)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 6. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal("could not listen", err)
		}
	}()

	<-stop // Wait for interrupt signal

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "err", err)
		return
	}
	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
