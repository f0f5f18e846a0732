package userController

import (
	"ecommerce/middleware"
	"ecommerce/models"
	userService "ecommerce/services/user"
	"ecommerce/validators"
	userValidator "ecommerce/validators/user"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	service *userService.Service
}

func New(service *userService.Service) *UserController {
	return &UserController{service: service}
}

func (uc *UserController) Register(c *fiber.Ctx) error {
	reqData := validators.Validated[userValidator.RegisterRequest](c)

	user, err := uc.service.Register(c.UserContext(), userService.RegisterInput{
		Email:    reqData.Email,
		Password: reqData.Password,
		Name:     reqData.Name,
		Role:     models.Role(reqData.Role),
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (uc *UserController) Token(c *fiber.Ctx) error {
	reqData := validators.Validated[userValidator.TokenRequest](c)

	token, err := uc.service.IssueToken(c.UserContext(), reqData.Email, reqData.Password)
	if err != nil {
		return err
	}
	return c.JSON(token)
}

// Me returns the authenticated user
func (uc *UserController) Me(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}
