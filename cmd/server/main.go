// Command server runs the EventPass HTTP API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/eventpass/backend/internal/application/identity"
	ticketingapp "github.com/eventpass/backend/internal/application/ticketing"
	"github.com/eventpass/backend/internal/infrastructure/auth"
	"github.com/eventpass/backend/internal/infrastructure/config"
	"github.com/eventpass/backend/internal/infrastructure/logger"
	"github.com/eventpass/backend/internal/infrastructure/notification"
	"github.com/eventpass/backend/internal/infrastructure/persistence"
	"github.com/eventpass/backend/internal/infrastructure/storage"
	"github.com/eventpass/backend/internal/interfaces/http/handler"
	"github.com/eventpass/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	log, err := logger.New(loggerConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	// Repositories
	eventRepo := persistence.NewGormEventRepository(db.DB)
	chatRepo := persistence.NewGormChatRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Auth infrastructure. Redis backs the token blacklist so revocation
	// survives restarts; development falls back to an in-process store.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Flier storage
	flierStorage, err := buildFlierStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize flier storage", zap.Error(err))
	}

	// Outbound notifications
	mailer := notification.NewSMTPTicketMailer(&cfg.Mail, log)
	qrGenerator := notification.NewQRCodeService()
	webhook := notification.NewHTTPWebhookNotifier(&cfg.Webhook, log)

	// Application services
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	eventService := ticketingapp.NewEventService(eventRepo, chatRepo, flierStorage, webhook, log)
	registrationService := ticketingapp.NewRegistrationService(eventRepo, qrGenerator, mailer, log)
	checkinService := ticketingapp.NewCheckinService(eventRepo, log)
	chatService := ticketingapp.NewChatService(eventRepo, chatRepo)

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			System:       handler.NewSystemHandler(db),
			Auth:         handler.NewAuthHandler(authService),
			Event:        handler.NewEventHandler(eventService),
			Registration: handler.NewRegistrationHandler(registrationService),
			Scan:         handler.NewScanHandler(checkinService),
			Chat:         handler.NewChatHandler(chatService),
		},
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		HTTPConfig:     &cfg.HTTP,
		MaxUploadSize:  cfg.Storage.MaxUploadSize,
		Logger:         log,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// loggerConfig builds the logger configuration from the environment defaults
// overridden with whatever [log] settings the config file carries.
func loggerConfig(cfg *config.Config) *logger.Config {
	logCfg := logger.DefaultConfig()
	if cfg.App.Env == "production" {
		logCfg = logger.ProductionConfig()
	}
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if cfg.Log.Output != "" {
		logCfg.Output = cfg.Log.Output
	}
	return logCfg
}

// buildFlierStorage wires the S3 client when a bucket is configured. Without
// one, development runs get an in-memory stub so event creation still works.
func buildFlierStorage(cfg *config.Config, log *zap.Logger) (ticketingapp.FlierStorage, error) {
	if cfg.Storage.Bucket == "" {
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("storage.bucket is required in production")
		}
		log.Warn("No storage bucket configured, using in-memory flier storage")
		return storage.NewStubFlierStorage(), nil
	}

	s3Storage, err := storage.NewS3FlierStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s3Storage, nil
}
