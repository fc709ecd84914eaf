package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/esabling477/sura-trading/internal/market"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/format"
	"github.com/esabling477/sura-trading/pkg/response"
)

// QuoteResponse is a quote plus its display strings, so every client renders
// prices identically.
type QuoteResponse struct {
	market.Quote
	PriceDisplay     string `json:"price_display"`
	ChangeDisplay    string `json:"change_display"`
	MarketCapDisplay string `json:"market_cap_display"`
}

func toQuoteResponse(q market.Quote) QuoteResponse {
	return QuoteResponse{
		Quote:            q,
		PriceDisplay:     format.FormatPrice(q.Price, q.Symbol),
		ChangeDisplay:    format.FormatPercentage(q.PctChange24h),
		MarketCapDisplay: format.FormatMarketCap(q.MarketCap),
	}
}

func (h *Handler) ListAssets(c *fiber.Ctx) error {
	return response.Success(c, market.Catalog())
}

func (h *Handler) ListQuotes(c *fiber.Ctx) error {
	quotes := h.quotes.Quotes()
	out := make([]QuoteResponse, len(quotes))
	for i, q := range quotes {
		out[i] = toQuoteResponse(q)
	}

	return response.Success(c, fiber.Map{
		"quotes":       out,
		"last_updated": h.quotes.LastUpdated(),
	})
}

func (h *Handler) GetQuote(c *fiber.Ctx) error {
	symbol, err := url.PathUnescape(c.Params("symbol"))
	if err != nil {
		return apperrors.ErrValidation.WithDetails("invalid symbol")
	}

	// Resolve through the catalog so lookups are case-insensitive.
	asset, ok := market.LookupSymbol(symbol)
	if !ok {
		return apperrors.ErrUnknownAsset.WithDetails("no such symbol: " + symbol)
	}

	quote, ok := h.quotes.QuoteBySymbol(asset.Symbol)
	if !ok {
		return apperrors.ErrNotFound
	}

	return response.Success(c, toQuoteResponse(quote))
}

// RequestRefresh schedules a simulated refresh pass and reports the delay.
// The pass lands asynchronously; clients poll or hold the stream open.
func (h *Handler) RequestRefresh(c *fiber.Ctx) error {
	delay := h.quotes.RequestRefresh()
	return response.Accepted(c, fiber.Map{
		"scheduled_in_ms": delay.Milliseconds(),
	})
}
