package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/esabling477/sura-trading/internal/chart"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
)

// GetChart renders a PNG chart for a symbol. Query parameters:
//
//	days    series length (default from config, clamped to the max)
//	kind    "candlestick" (default) or "line"
//	theme   "dark" (default) or "light"
//	w, h    image size in pixels
//	hover_x, hover_y
//	        pointer position; when both are given the crosshair and
//	        tooltip overlay is drawn
//
// Unknown symbols still render, walking around the default base price, the
// same fallback the series generator applies everywhere.
func (h *Handler) GetChart(c *fiber.Ctx) error {
	symbol, err := url.PathUnescape(c.Params("symbol"))
	if err != nil {
		return apperrors.ErrValidation.WithDetails("invalid symbol")
	}

	days := c.QueryInt("days", h.cfg.Chart.DefaultDays)
	if days < 1 {
		return apperrors.ErrValidation.WithDetails("days must be at least 1")
	}
	if days > h.cfg.Chart.MaxDays {
		days = h.cfg.Chart.MaxDays
	}

	width := c.QueryInt("w", h.cfg.Chart.Width)
	height := c.QueryInt("h", h.cfg.Chart.Height)
	if width < 100 || width > 4000 || height < 100 || height > 4000 {
		return apperrors.ErrValidation.WithDetails("w and h must be between 100 and 4000")
	}

	var hover *chart.Pointer
	if c.Query("hover_x") != "" && c.Query("hover_y") != "" {
		hover = &chart.Pointer{
			X: float64(c.QueryInt("hover_x")),
			Y: float64(c.QueryInt("hover_y")),
		}
	}

	points := h.generator.Series(symbol, days)
	renderer := chart.NewRenderer(chart.ThemeByName(c.Query("theme")))

	img, err := renderer.Render(chart.Kind(c.Query("kind", string(chart.KindCandlestick))), points, symbol, width, height, hover)
	if err != nil {
		return apperrors.ErrInternal.WithError(err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(img)
}
