package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/esabling477/sura-trading/internal/account"
	"github.com/esabling477/sura-trading/internal/auth"
	"github.com/esabling477/sura-trading/internal/config"
	"github.com/esabling477/sura-trading/internal/handler"
	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/internal/portfolio"
	"github.com/esabling477/sura-trading/internal/store"
	"github.com/esabling477/sura-trading/pkg/logger"
	"github.com/esabling477/sura-trading/pkg/metrics"
	"github.com/esabling477/sura-trading/pkg/middleware"
	"github.com/esabling477/sura-trading/pkg/response"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init("terminal", cfg.Log.Level, cfg.Log.Pretty)
	logger.Info().Msg("Starting Sura Trading terminal")

	if cfg.Auth.JWTSecret == "dev-only-secret" {
		logger.Warn().Msg("Using the development JWT secret; set SURA_AUTH_JWT_SECRET in production")
	}

	st, err := store.Open(cfg.Storage.Path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Storage.Path).Msg("Failed to open store")
	}
	defer st.Close()

	quotes := market.NewStore(cfg.Market.RefreshDelay, nil)

	hub := market.NewHub(quotes, cfg.Market.StreamInterval)
	go hub.Run()

	jwtMgr := auth.NewJWTManager(&auth.Config{
		Secret:          cfg.Auth.JWTSecret,
		AccessTokenTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTokenTTL: cfg.Auth.RefreshTokenTTL,
	}).WithSessionStore(auth.NewLocalSessionStore(st))

	authSvc := auth.NewService(st, jwtMgr, cfg.Auth.MinPasswordLength)
	portfolioSvc := portfolio.NewService(st, quotes)
	accountSvc := account.NewService(st)

	app := fiber.New(fiber.Config{
		AppName:      "Sura Trading Terminal",
		ErrorHandler: response.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.Logger())
	app.Use(metrics.Middleware(metrics.Config{
		ServiceName: "terminal",
		SkipPaths:   []string{"/health", "/metrics"},
	}))
	app.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		Max:      300,
		Duration: time.Minute,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "terminal",
		})
	})
	app.Get("/metrics", metrics.Handler())

	handler.New(cfg, authSvc, portfolioSvc, accountSvc, quotes, hub).RegisterRoutes(app)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := app.Listen(addr); err != nil && !errors.Is(err, net.ErrClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	hub.Stop()
	if err := app.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
	}
}
