package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/config"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/constants"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/database"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/logging"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/server"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/storage"
	"github.com/gcet-campuspreneurs/campuspreneurs-api/internal/worker"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	if err := database.Connect(cfg, logger); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	files, err := storage.NewLocalStore(cfg.StorageRoot, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	signer := storage.NewURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL, cfg.PublicBaseURL)

	// Setup session middleware with Redis
	sessionStore, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatal("Failed to create Redis session store", zap.Error(err))
	}
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	svc := server.NewServices(cfg, database.GetDB(), files, signer, logger)
	if cfg.OpenAIAPIKey == "" {
		logger.Info("OPENAI_API_KEY not set, AI draft replies disabled")
	}

	r := server.NewRouter(svc, sessionStore, files, signer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup := worker.NewQueryCleanupWorker(
		svc.Queries,
		worker.NewRedisLocker(rdb),
		constants.QueryCleanupLockKey,
		cfg.QueryCleanupInterval,
		cfg.QueryCleanupLockTTL,
		logger,
	)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		cleanup.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	<-workerDone
}
