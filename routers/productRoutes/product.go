package productRoutes

import (
	productController "ecommerce/controllers/product"
	"ecommerce/middleware"
	productValidator "ecommerce/validators/product"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(app fiber.Router, ctrl *productController.ProductController, gate *middleware.AuthGate) {
	productGroup := app.Group("/products")

	productGroup.Get("/", ctrl.List)
	productGroup.Get("/category/:category_id", ctrl.ListByCategory)
	productGroup.Get("/:product_id", ctrl.Get)
	productGroup.Post("/", gate.RequireSeller(), productValidator.Product(), ctrl.Create)
	productGroup.Put("/:product_id", gate.RequireSeller(), productValidator.Product(), ctrl.Update)
	productGroup.Delete("/:product_id", gate.RequireSeller(), ctrl.Delete)
}
