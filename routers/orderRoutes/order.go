package orderRoutes

import (
	orderController "ecommerce/controllers/order"
	"ecommerce/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app fiber.Router, ctrl *orderController.OrderController, gate *middleware.AuthGate) {
	orderGroup := app.Group("/orders", gate.RequireBuyer())

	orderGroup.Post("/checkout", ctrl.Checkout)
	orderGroup.Get("/", ctrl.List)
	orderGroup.Get("/:order_id", ctrl.Get)
}
