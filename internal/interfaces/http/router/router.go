// Package router wires handlers, middleware and route groups into a gin engine.
package router

import (
	"github.com/eventpass/backend/internal/infrastructure/auth"
	"github.com/eventpass/backend/internal/infrastructure/config"
	"github.com/eventpass/backend/internal/infrastructure/logger"
	"github.com/eventpass/backend/internal/interfaces/http/handler"
	"github.com/eventpass/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Event        *handler.EventHandler
	Registration *handler.RegistrationHandler
	Scan         *handler.ScanHandler
	Chat         *handler.ChatHandler
}

// Config carries the router's dependencies
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	HTTPConfig     *config.HTTPConfig
	MaxUploadSize  int64
	Logger         *zap.Logger
}

// New builds the gin engine with all middleware and routes mounted.
// Public routes (event browsing, registration, chat, auth entry points) are
// separated from the authenticated organizer routes.
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)

	corsConfig := middleware.DefaultCORSConfig()
	if cfg.HTTPConfig != nil {
		if len(cfg.HTTPConfig.CORSAllowOrigins) > 0 {
			corsConfig.AllowOrigins = cfg.HTTPConfig.CORSAllowOrigins
		}
		if len(cfg.HTTPConfig.CORSAllowMethods) > 0 {
			corsConfig.AllowMethods = cfg.HTTPConfig.CORSAllowMethods
		}
		if len(cfg.HTTPConfig.CORSAllowHeaders) > 0 {
			corsConfig.AllowHeaders = cfg.HTTPConfig.CORSAllowHeaders
		}
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.MaxUploadSize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxUploadSize))
	}

	engine.GET("/health", cfg.Handlers.System.Health)

	api := engine.Group("/api/v1")
	requireAuth := middleware.JWTAuthMiddleware(cfg.JWTService, cfg.TokenBlacklist, cfg.Logger)
	optionalAuth := middleware.OptionalJWTAuthMiddleware(cfg.JWTService)

	// System
	api.GET("/system/info", cfg.Handlers.System.Info)

	// Auth
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", cfg.Handlers.Auth.SignUp)
		authGroup.POST("/login", cfg.Handlers.Auth.Login)
		authGroup.POST("/refresh", cfg.Handlers.Auth.Refresh)
		authGroup.POST("/logout", requireAuth, cfg.Handlers.Auth.Logout)
		authGroup.GET("/me", requireAuth, cfg.Handlers.Auth.Me)
		authGroup.POST("/change-password", requireAuth, cfg.Handlers.Auth.ChangePassword)
	}

	// Events: reads are public (owners get extra detail via optional auth),
	// writes require an authenticated organizer.
	events := api.Group("/events")
	{
		events.GET("", optionalAuth, cfg.Handlers.Event.List)
		events.GET("/mine", requireAuth, cfg.Handlers.Event.ListMine)
		events.GET("/slug/:slug", cfg.Handlers.Event.GetBySlug)
		events.GET("/:id", optionalAuth, cfg.Handlers.Event.Get)

		events.POST("", requireAuth, cfg.Handlers.Event.Create)
		events.PUT("/:id", requireAuth, cfg.Handlers.Event.Update)
		events.DELETE("/:id", requireAuth, cfg.Handlers.Event.Delete)
		events.POST("/:id/flier", requireAuth, cfg.Handlers.Event.UploadFlier)
		events.POST("/:id/close-registration", requireAuth, cfg.Handlers.Event.CloseRegistration)
		events.GET("/:id/attendees", requireAuth, cfg.Handlers.Event.ListAttendees)

		// Attendee-facing routes authenticate with the ticket passcode
		events.POST("/:id/register", cfg.Handlers.Registration.Register)
		events.POST("/:id/attendees/:passcode/resend", requireAuth, cfg.Handlers.Registration.ResendTicket)
		events.POST("/:id/chat/:passcode", cfg.Handlers.Chat.Send)
		events.GET("/:id/chat/:passcode", cfg.Handlers.Chat.History)
	}

	// Door check-in
	api.POST("/scan", requireAuth, cfg.Handlers.Scan.Scan)

	return engine
}
