package productController

import (
	"ecommerce/middleware"
	productService "ecommerce/services/product"
	"ecommerce/validators"
	productValidator "ecommerce/validators/product"

	"github.com/gofiber/fiber/v2"
)

type ProductController struct {
	service *productService.Service
}

func New(service *productService.Service) *ProductController {
	return &ProductController{service: service}
}

func (pc *ProductController) List(c *fiber.Ctx) error {
	products, err := pc.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (pc *ProductController) ListByCategory(c *fiber.Ctx) error {
	categoryID, err := middleware.ParamID(c, "category_id")
	if err != nil {
		return err
	}
	products, err := pc.service.ListByCategory(c.UserContext(), categoryID)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (pc *ProductController) Get(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}
	product, err := pc.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (pc *ProductController) Create(c *fiber.Ctx) error {
	product, err := pc.service.Create(c.UserContext(), middleware.CurrentUser(c), input(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (pc *ProductController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}
	product, err := pc.service.Update(c.UserContext(), middleware.CurrentUser(c), id, input(c))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (pc *ProductController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}
	if err := pc.service.Delete(c.UserContext(), middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func input(c *fiber.Ctx) productService.ProductInput {
	reqData := validators.Validated[productValidator.ProductRequest](c)
	return productService.ProductInput{
		Name:        reqData.Name,
		Description: reqData.Description,
		Price:       reqData.Price,
		ImageURL:    reqData.ImageURL,
		Stock:       reqData.Stock,
		CategoryID:  reqData.CategoryID,
		Attributes:  reqData.Attributes,
	}
}
