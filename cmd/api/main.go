package main

import (
	"context"
	"go-devnet-backend/config"
	_ "go-devnet-backend/docs" // Important for Swagger
	v1 "go-devnet-backend/internal/delivery/http/v1"
	"go-devnet-backend/internal/repository/postgres"
	"go-devnet-backend/internal/usecase"
	"go-devnet-backend/pkg/audit"
	"go-devnet-backend/pkg/auth"
	"go-devnet-backend/pkg/database"
	"go-devnet-backend/pkg/logger"
	"go-devnet-backend/pkg/validation"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title           DevNet API
// @version         1.0
// @description     Developer network: accounts, profiles and posts.
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

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting devnet backend", "port", cfg.Port, "gin_mode", gin.Mode())
	auditLog := audit.Init("devnet-backend", gin.Mode())
	defer func() { _ = auditLog.Sync() }()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)

	// 5. Setup Credentials
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	// 6. Setup UseCases
	validate := validation.New()
	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, validate)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo, validate)
	postUC := usecase.NewPostUsecase(postRepo, validate)
	healthUC := usecase.NewHealthUsecase(dbPool)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		ProfileUC:   profileUC,
		PostUC:      postUC,
		HealthUC:    healthUC,
		FrontendURL: cfg.FrontendURL,
		Release:     gin.Mode() == gin.ReleaseMode,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
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

	logger.Log.Info("Server exiting")
}
