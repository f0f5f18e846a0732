package orderController

import (
	"ecommerce/middleware"
	orderService "ecommerce/services/order"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	service *orderService.Service
}

func New(service *orderService.Service) *OrderController {
	return &OrderController{service: service}
}

func (oc *OrderController) Checkout(c *fiber.Ctx) error {
	order, err := oc.service.Checkout(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (oc *OrderController) List(c *fiber.Ctx) error {
	orders, err := oc.service.List(c.UserContext(), middleware.CurrentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (oc *OrderController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "order_id")
	if err != nil {
		return err
	}
	order, err := oc.service.Get(c.UserContext(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(order)
}
