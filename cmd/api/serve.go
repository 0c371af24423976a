package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-portal-backend/config"
	_ "job-portal-backend/docs" // Important for Swagger
	"job-portal-backend/internal/delivery/http/middleware"
	v1 "job-portal-backend/internal/delivery/http/v1"
	"job-portal-backend/internal/repository/postgres"
	"job-portal-backend/internal/storage"
	"job-portal-backend/internal/usecase"
	"job-portal-backend/pkg/database"
	"job-portal-backend/pkg/logger"
	"job-portal-backend/pkg/redis"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job portal backend", "port", cfg.Port, "upload_dir", cfg.UploadDir)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer dbPool.Close()

	// 4. Setup File Store; an unusable upload directory is fatal
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("init upload directory: %w", err)
	}
	logger.Log.Info("Upload directory ready", "path", store.Root())

	// 5. Setup Redis for rate limiting, falling back to memory
	redisClient, err := redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Info("REDIS_URL not set, rate limiting is per instance")
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable, rate limiting is per instance", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
	}
	limiter := middleware.NewRateLimiter(redisClient)
	go limiter.Cleanup(ctx, 5*time.Minute)

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)

	// 7. Setup UseCases
	validate := validation.New()
	tokenTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	userUC := usecase.NewUserUsecase(userRepo, skillRepo, validate)
	authUC := usecase.NewAuthUsecase(userRepo, userUC, cfg.JWTSecret, tokenTTL)
	skillUC := usecase.NewSkillUsecase(skillRepo, validate)
	fileUC := usecase.NewFileUsecase(store, authUC, userUC, usecase.FileConfig{
		URLPrefix:         cfg.FileURLPrefix,
		MaxSize:           cfg.MaxUploadSizeBytes(),
		MaxImageDimension: cfg.ProfilePictureMaxDimension,
	})

	optional := map[string]usecase.Probe{}
	if redisClient != nil {
		optional["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthUC := usecase.NewHealthUsecase(map[string]usecase.Probe{
		"database": dbPool.Ping,
		"uploads":  store.Check,
	}, optional)

	// 8. Setup Router
	release := os.Getenv("GIN_MODE") == gin.ReleaseMode
	if release {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:               authUC,
		UserUC:               userUC,
		SkillUC:              skillUC,
		FileUC:               fileUC,
		Health:               healthUC,
		RateLimiter:          limiter,
		LoginLimitPerMinute:  cfg.RateLimitLoginPerMinute,
		UploadLimitPerMinute: cfg.RateLimitUploadPerMinute,
		MaxUploadSize:        cfg.MaxUploadSizeBytes(),
		FileURLPrefix:        cfg.FileURLPrefix,
		TokenTTL:             tokenTTL,
		FrontendURL:          cfg.FrontendURL,
		Release:              release,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	// Graceful Shutdown
	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
