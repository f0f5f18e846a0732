package reviewValidator

import (
	"ecommerce/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateReviewRequest struct {
	ProductID uint    `json:"product_id" validate:"required"`
	Comment   *string `json:"comment"`
	Grade     int     `json:"grade" validate:"required,min=1,max=5"`
}

// CreateReview validator middleware
func CreateReview() fiber.Handler {
	return validators.Body[CreateReviewRequest]()
}
