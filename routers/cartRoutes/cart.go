package cartRoutes

import (
	cartController "ecommerce/controllers/cart"
	"ecommerce/middleware"
	cartValidator "ecommerce/validators/cart"

	"github.com/gofiber/fiber/v2"
)

func SetupCartRoutes(app fiber.Router, ctrl *cartController.CartController, gate *middleware.AuthGate) {
	cartGroup := app.Group("/cart", gate.RequireBuyer())

	cartGroup.Get("/", ctrl.List)
	cartGroup.Post("/items", cartValidator.AddItem(), ctrl.AddItem)
	cartGroup.Put("/items/:product_id", cartValidator.UpdateItem(), ctrl.UpdateItem)
	cartGroup.Delete("/items/:product_id", ctrl.RemoveItem)
	cartGroup.Delete("/", ctrl.Clear)
}
