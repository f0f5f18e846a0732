package reviewRoutes

import (
	reviewController "ecommerce/controllers/review"
	"ecommerce/middleware"
	reviewValidator "ecommerce/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app fiber.Router, ctrl *reviewController.ReviewController, gate *middleware.AuthGate) {
	reviewGroup := app.Group("/reviews")

	reviewGroup.Get("/", ctrl.ListReviews)
	reviewGroup.Post("/", gate.RequireBuyer(), reviewValidator.CreateReview(), ctrl.CreateReview)
	reviewGroup.Delete("/:review_id", gate.RequireAdmin(), ctrl.DeleteReview)

	app.Get("/products/:product_id/reviews", ctrl.ListProductReviews)
}
