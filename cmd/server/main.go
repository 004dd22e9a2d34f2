package main

import (
	"github.com/labstack/echo/v4"
	"github.com/ripplehq/ripple-backend/internal/router"
	"github.com/ripplehq/ripple-backend/pkg/config"
	"github.com/ripplehq/ripple-backend/pkg/logger"
	"github.com/ripplehq/ripple-backend/validators"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.CloseDB()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e, log)
	if err := router.SetupRoutes(e, db.Postgres, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
