package userRoutes

import (
	userController "ecommerce/controllers/user"
	"ecommerce/middleware"
	userValidator "ecommerce/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app fiber.Router, ctrl *userController.UserController, gate *middleware.AuthGate) {
	userGroup := app.Group("/users")

	userGroup.Post("/", userValidator.Register(), ctrl.Register)
	userGroup.Post("/token", userValidator.Token(), ctrl.Token)
	userGroup.Get("/me", gate.Authenticate, ctrl.Me)
}
