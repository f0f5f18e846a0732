package categoryRoutes

import (
	categoryController "ecommerce/controllers/category"
	"ecommerce/middleware"
	categoryValidator "ecommerce/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app fiber.Router, ctrl *categoryController.CategoryController, gate *middleware.AuthGate) {
	categoryGroup := app.Group("/categories")

	categoryGroup.Get("/", ctrl.List)
	categoryGroup.Post("/", gate.RequireAdmin(), categoryValidator.Category(), ctrl.Create)
	categoryGroup.Put("/:category_id", gate.RequireAdmin(), categoryValidator.Category(), ctrl.Update)
	categoryGroup.Delete("/:category_id", gate.RequireAdmin(), ctrl.Delete)
}
