package cartController

import (
	"ecommerce/middleware"
	cartService "ecommerce/services/cart"
	"ecommerce/validators"
	cartValidator "ecommerce/validators/cart"

	"github.com/gofiber/fiber/v2"
)

type CartController struct {
	service *cartService.Service
}

func New(service *cartService.Service) *CartController {
	return &CartController{service: service}
}

func (cc *CartController) List(c *fiber.Ctx) error {
	items, err := cc.service.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (cc *CartController) AddItem(c *fiber.Ctx) error {
	reqData := validators.Validated[cartValidator.AddItemRequest](c)

	item, err := cc.service.AddItem(c.UserContext(), middleware.CurrentUser(c), reqData.ProductID, reqData.Quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (cc *CartController) UpdateItem(c *fiber.Ctx) error {
	productID, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}
	reqData := validators.Validated[cartValidator.UpdateItemRequest](c)

	item, err := cc.service.UpdateItem(c.UserContext(), middleware.CurrentUser(c), productID, reqData.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (cc *CartController) RemoveItem(c *fiber.Ctx) error {
	productID, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}
	if err := cc.service.RemoveItem(c.UserContext(), middleware.CurrentUser(c), productID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Item removed"})
}

func (cc *CartController) Clear(c *fiber.Ctx) error {
	if err := cc.service.Clear(c.UserContext(), middleware.CurrentUser(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
