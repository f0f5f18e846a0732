package productValidator

import (
	"ecommerce/validators"

	"github.com/gofiber/fiber/v2"
)

// ProductRequest is the writable part of a product. Rating is derived and never accepted.
type ProductRequest struct {
	Name        string                 `json:"name" validate:"required,min=2,max=100"`
	Description string                 `json:"description" validate:"max=2000"`
	Price       float64                `json:"price" validate:"required,gt=0"`
	ImageURL    string                 `json:"image_url" validate:"omitempty,url"`
	Stock       int                    `json:"stock" validate:"gte=0"`
	CategoryID  uint                   `json:"category_id" validate:"required"`
	Attributes  map[string]interface{} `json:"attributes"`
}

// Product validator middleware, shared by create and update.
func Product() fiber.Handler {
	return validators.Body[ProductRequest]()
}
