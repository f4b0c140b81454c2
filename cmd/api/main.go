package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/sentry"
	"go-jobboard-backend/pkg/storage"
)

// @title           Job Board API
// @version         1.0
// @description     Backend for the job board application.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger + Observability Sink
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	if err := sentry.Init(cfg.SentryDSN, cfg.Environment); err != nil {
		logger.Log.Warn("Sentry init failed, continuing without error reporting", "error", err)
	}

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; the API runs without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Resume Storage Gateway
	resumeGateway, err := storage.NewS3Gateway(context.Background(), storage.S3Config{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Bucket:          cfg.S3Bucket,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Log.Error("Failed to configure resume storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	validate := validator.New()
	userUC := usecase.NewUserUsecase(userRepo, resumeGateway, validate)
	jobUC := usecase.NewJobUsecase(jobRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)

	// 8. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:        userUC,
		JobUC:         jobUC,
		CompanyUC:     companyUC,
		ApplicationUC: applicationUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	sentry.Flush(ctx)

	logger.Log.Info("Server exiting")
}
