package cartValidator

import (
	"ecommerce/validators"

	"github.com/gofiber/fiber/v2"
)

type AddItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1,max=1000"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

// AddItem validator middleware
func AddItem() fiber.Handler {
	return validators.Body[AddItemRequest]()
}

// UpdateItem validator middleware
func UpdateItem() fiber.Handler {
	return validators.Body[UpdateItemRequest]()
}
