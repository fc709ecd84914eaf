package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/middleware"
	"github.com/esabling477/sura-trading/pkg/response"
)

type UpdateHoldingRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *Handler) GetPortfolio(c *fiber.Ctx) error {
	valuation, err := h.portfolio.Valuation(middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return response.Success(c, valuation)
}

func (h *Handler) UpdateHolding(c *fiber.Ctx) error {
	var req UpdateHoldingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	holdings, err := h.portfolio.SetQuantity(middleware.GetUserID(c), c.Params("assetID"), req.Quantity)
	if err != nil {
		return err
	}
	return response.Success(c, holdings)
}

func (h *Handler) RemoveHolding(c *fiber.Ctx) error {
	holdings, err := h.portfolio.Remove(middleware.GetUserID(c), c.Params("assetID"))
	if err != nil {
		return err
	}
	return response.Success(c, holdings)
}
