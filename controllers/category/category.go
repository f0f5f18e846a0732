package categoryController

import (
	"ecommerce/middleware"
	categoryService "ecommerce/services/category"
	"ecommerce/validators"
	categoryValidator "ecommerce/validators/category"

	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	service *categoryService.Service
}

func New(service *categoryService.Service) *CategoryController {
	return &CategoryController{service: service}
}

func (cc *CategoryController) List(c *fiber.Ctx) error {
	categories, err := cc.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (cc *CategoryController) Create(c *fiber.Ctx) error {
	reqData := validators.Validated[categoryValidator.CategoryRequest](c)

	category, err := cc.service.Create(c.UserContext(), categoryService.CategoryInput{
		Name:     reqData.Name,
		ParentID: reqData.ParentID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (cc *CategoryController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "category_id")
	if err != nil {
		return err
	}
	reqData := validators.Validated[categoryValidator.CategoryRequest](c)

	category, err := cc.service.Update(c.UserContext(), id, categoryService.CategoryInput{
		Name:     reqData.Name,
		ParentID: reqData.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(category)
}

func (cc *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "category_id")
	if err != nil {
		return err
	}
	if err := cc.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted"})
}
