package categoryValidator

import (
	"ecommerce/validators"

	"github.com/gofiber/fiber/v2"
)

type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	ParentID *uint  `json:"parent_id" validate:"omitempty,gt=0"`
}

// Category validator middleware, shared by create and update.
func Category() fiber.Handler {
	return validators.Body[CategoryRequest]()
}
