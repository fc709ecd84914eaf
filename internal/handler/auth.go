package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/esabling477/sura-trading/internal/auth"
	apperrors "github.com/esabling477/sura-trading/pkg/errors"
	"github.com/esabling477/sura-trading/pkg/middleware"
	"github.com/esabling477/sura-trading/pkg/response"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SessionResponse struct {
	User   *auth.User      `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	user, tokens, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.Success(c, SessionResponse{User: user, Tokens: tokens})
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	user, tokens, err := h.auth.Register(req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		return err
	}

	return response.Created(c, SessionResponse{User: user, Tokens: tokens})
}

func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	if err := h.auth.ForgotPassword(req.Email); err != nil {
		return err
	}

	return response.Success(c, fiber.Map{
		"message": "If the address exists, a reset link has been sent",
	})
}

func (h *Handler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	tokens, err := h.auth.Refresh(req.RefreshToken)
	if err != nil {
		return err
	}

	return response.Success(c, tokens)
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.ErrValidation.WithDetails("invalid request body")
	}

	if err := h.auth.Logout(req.RefreshToken); err != nil {
		return err
	}

	return response.NoContent(c)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, err := h.auth.UserByID(middleware.GetUserID(c))
	if err != nil {
		return err
	}
	return response.Success(c, user)
}
