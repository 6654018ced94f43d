package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"profiler-backend/config"
	v1 "profiler-backend/internal/delivery/http/v1"
	"profiler-backend/internal/domain"
	"profiler-backend/internal/repository/postgres"
	"profiler-backend/internal/repository/sqlite"
	"profiler-backend/internal/usecase"
	"profiler-backend/pkg/database"
	"profiler-backend/pkg/health"
	"profiler-backend/pkg/logger"
	"profiler-backend/pkg/redis"
)

// @title           Profiler API
// @version         1.0
// @description     Back office API for candidate profiles, client companies and assignments.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting profiler backend", "port", cfg.Port, "db_driver", cfg.DBDriver)
	gin.SetMode(cfg.GinMode)

	// 3. Setup Storage and Repositories
	ctx := context.Background()
	var (
		profileRepo    domain.ProfileRepository
		clientRepo     domain.ClientRepository
		assignmentRepo domain.AssignmentRepository
		checkers       []health.Checker
	)

	switch cfg.DBDriver {
	case "sqlite":
		db, err := database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			logger.Log.Error("Failed to open database", "error", err)
			os.Exit(1)
		}
		if cfg.AutoMigrate {
			if err := sqlite.AutoMigrate(db); err != nil {
				logger.Log.Error("Failed to migrate database", "error", err)
				os.Exit(1)
			}
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		profileRepo = sqlite.NewProfileRepository(db)
		clientRepo = sqlite.NewClientRepository(db)
		assignmentRepo = sqlite.NewAssignmentRepository(db)
		checkers = append(checkers, health.SQLite(db))

	default:
		if cfg.AutoMigrate {
			if err := database.MigrateUp(cfg.DBUrl); err != nil {
				logger.Log.Error("Failed to migrate database", "error", err)
				os.Exit(1)
			}
			logger.Log.Info("Database migrations applied")
		}

		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolOptions{
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		})
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		profileRepo = postgres.NewProfileRepository(dbPool)
		clientRepo = postgres.NewClientRepository(dbPool)
		assignmentRepo = postgres.NewAssignmentRepository(dbPool)
		checkers = append(checkers, health.Postgres(dbPool))
	}

	// 4. Setup Redis (optional, backs the rate limiter)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting uses process memory", "error", err)
		} else {
			checkers = append(checkers, health.Redis())
			defer redis.Close()
		}
	}

	// 5. Setup UseCases
	limits := domain.PageLimits{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}
	profileUC := usecase.NewProfileUsecase(profileRepo, limits)
	clientUC := usecase.NewClientUsecase(clientRepo, limits)
	assignmentUC := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, clientRepo, limits)
	healthUC := usecase.NewHealthUsecase(checkers...)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC:    profileUC,
		ClientUC:     clientUC,
		AssignmentUC: assignmentUC,
		HealthUC:     healthUC,
		Config:       cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
