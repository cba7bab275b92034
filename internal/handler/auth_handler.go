package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/service"
	"github.com/jointoit/events-api/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) ObtainToken(c *fiber.Ctx) error {
	var req models.TokenObtainRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	pair, err := h.authService.ObtainPair(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req models.TokenRefreshRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	resp, err := h.authService.Refresh(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	var req models.TokenVerifyRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	if err := h.authService.Verify(c.UserContext(), req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{})
}
