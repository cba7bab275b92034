package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jointoit/events-api/internal/models"
	"github.com/jointoit/events-api/internal/service"
	"github.com/jointoit/events-api/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := bindAndValidate(c, h.validator, &req); err != nil {
		return err
	}

	user, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.NewUserResponse(user))
}
