package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ripplehq/ripple-backend/internal/handlers"
	"github.com/ripplehq/ripple-backend/internal/middleware"
	"github.com/ripplehq/ripple-backend/internal/models"
	"github.com/ripplehq/ripple-backend/internal/repositories"
	"github.com/ripplehq/ripple-backend/pkg/config"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware, wiring request logging
// into the service logger.
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).Str("uri", v.URI).Int("status", v.Status).Msg("request")
			return nil
		},
	}))
}

// SetupRoutes migrates the schema, wires repositories into handlers, and
// registers every route.
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, log zerolog.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}

	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	api := e.Group("/api")
	requireIdentity := middleware.RequireIdentity(cfg.JWTSecret)

	userHandler := handlers.NewUserHandler(userRepo, log)
	userHandler.RegisterUserRoutes(api, requireIdentity)

	postHandler := handlers.NewPostHandler(postRepo, userRepo, log)
	postHandler.RegisterPostRoutes(api, requireIdentity)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, log)
	commentHandler.RegisterCommentRoutes(api, requireIdentity)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, log)
	notificationHandler.RegisterNotificationRoutes(api, requireIdentity)

	webhookHandler, err := handlers.NewWebhookHandler(userRepo, cfg.IdentityWebhookSecret, log)
	if err != nil {
		return err
	}
	webhookHandler.RegisterWebhookRoutes(api)

	log.Info().Msg("all routes configured")
	return nil
}
