// Package handler wires the terminal's services to the HTTP API.
package handler

import (
	"math/rand"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/esabling477/sura-trading/internal/account"
	"github.com/esabling477/sura-trading/internal/auth"
	"github.com/esabling477/sura-trading/internal/chart"
	"github.com/esabling477/sura-trading/internal/config"
	"github.com/esabling477/sura-trading/internal/market"
	"github.com/esabling477/sura-trading/internal/portfolio"
	"github.com/esabling477/sura-trading/pkg/middleware"
)

type Handler struct {
	cfg       *config.Config
	auth      *auth.Service
	portfolio *portfolio.Service
	account   *account.Service
	quotes    *market.Store
	hub       *market.Hub
	generator *chart.Generator
}

func New(cfg *config.Config, authSvc *auth.Service, portfolioSvc *portfolio.Service, accountSvc *account.Service, quotes *market.Store, hub *market.Hub) *Handler {
	return &Handler{
		cfg:       cfg,
		auth:      authSvc,
		portfolio: portfolioSvc,
		account:   accountSvc,
		quotes:    quotes,
		hub:       hub,
		generator: chart.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now),
	}
}

// RegisterRoutes mounts all API routes on the app.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", h.Register)
	authGroup.Post("/forgot-password", h.ForgotPassword)
	authGroup.Post("/refresh", h.Refresh)
	authGroup.Post("/logout", h.Logout)

	api.Get("/assets", h.ListAssets)
	api.Get("/quotes", h.ListQuotes)
	api.Get("/quotes/:symbol", h.GetQuote)
	api.Post("/quotes/refresh", h.RequestRefresh)

	api.Get("/charts/:symbol", h.GetChart)

	protected := api.Group("", middleware.Auth(h.cfg.Auth.JWTSecret))
	protected.Get("/me", h.Me)
	protected.Get("/portfolio", h.GetPortfolio)
	protected.Put("/portfolio/:assetID", h.UpdateHolding)
	protected.Delete("/portfolio/:assetID", h.RemoveHolding)
	protected.Get("/account/wallet", h.GetWallet)
	protected.Post("/account/deposits", h.Deposit)
	protected.Post("/account/withdrawals", h.Withdraw)
	protected.Get("/account/transfers", h.ListTransfers)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(h.QuoteStream))
}

// QuoteStream upgrades the connection and joins it to the hub.
func (h *Handler) QuoteStream(conn *websocket.Conn) {
	client := market.NewClient(uuid.New().String(), conn, h.hub)
	h.hub.Register(client)

	go client.WritePump()
	client.ReadPump()
}
