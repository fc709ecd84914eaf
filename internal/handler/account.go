package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/middleware"
	"github.com/esabling477/sura-trading/pkg/response"
)

type DepositRequest struct {
	Network string          `json:"network"`
	Amount  decimal.Decimal `json:"amount"`
}

type WithdrawRequest struct {
	Address string          `json:"address"`
	Amount  decimal.Decimal `json:"amount"`
}

func (h *Handler) GetWallet(c *fiber.Ctx) error {
	wallet, err := h.account.Wallet(middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return response.Success(c, wallet)
}

func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	transfer, err := h.account.Deposit(middleware.GetUserID(c), req.Network, req.Amount)
	if err != nil {
		return err
	}
	return response.Created(c, transfer)
}

func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	transfer, err := h.account.Withdraw(middleware.GetUserID(c), req.Address, req.Amount)
	if err != nil {
		return err
	}
	return response.Created(c, transfer)
}

func (h *Handler) ListTransfers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 20)
	if perPage > 100 {
		perPage = 100
	}

	transfers, total, err := h.account.Transfers(middleware.GetUserID(c), page, perPage)
	if err != nil {
		return err
	}
	return response.Paginated(c, transfers, page, perPage, int64(total))
}
