package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/insurai/authcore/internal/config"
	"github.com/insurai/authcore/internal/controller"
	"github.com/insurai/authcore/internal/notifier"
	"github.com/insurai/authcore/internal/repository"
	"github.com/insurai/authcore/internal/service"
	"github.com/insurai/authcore/internal/token"
	"github.com/insurai/authcore/internal/utils"
	"github.com/insurai/authcore/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize zap logger
	var zapLogger *zap.Logger
	if cfg.Environment == "production" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	zap.L().Info("starting auth service", zap.String("environment", cfg.Environment))

	// Initialize database
	db, err := utils.InitDB(cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := utils.CloseDB(db); err != nil {
			zap.L().Error("error closing database", zap.Error(err))
		}
	}()

	// Initialize credential store
	accountRepo := repository.NewAccountRepository(db)

	// Initialize notifier
	var notify notifier.Notifier
	if cfg.Environment == "production" {
		notify = notifier.NewSMTPNotifier(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPassword,
			cfg.EmailFrom,
		)
	} else {
		notify = notifier.NewMockNotifier()
	}

	// Initialize auth service
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)
	authService := service.NewAuthService(
		accountRepo,
		utils.NewPasswordHasher(),
		utils.NewValidator(),
		issuer,
		notify,
		service.AuthServiceConfig{
			OTPExpiry:    cfg.OTPExpiry,
			ResetExpiry:  cfg.ResetExpiry,
			ResetURLBase: cfg.ResetURLBase,
		},
	)

	// Start credential sweeper
	cleanupWorker := worker.NewCleanupWorker(accountRepo, cfg.CleanupInterval)
	cleanupWorker.Start()
	defer cleanupWorker.Stop()

	// Assemble HTTP server
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := controller.NewRouter(
		controller.NewAuthController(authService),
		issuer,
		controller.RouterConfig{OTPRateLimitPerMinute: cfg.OTPRateLimitPerMinute},
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPHost, cfg.HTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Error("forced shutdown", zap.Error(err))
	}
}
