package reviewController

import (
	"ecommerce/middleware"
	reviewService "ecommerce/services/review"
	"ecommerce/validators"
	reviewValidator "ecommerce/validators/review"

	"github.com/gofiber/fiber/v2"
)

type ReviewController struct {
	service *reviewService.Service
}

func New(service *reviewService.Service) *ReviewController {
	return &ReviewController{service: service}
}

// ListReviews returns every active review
func (rc *ReviewController) ListReviews(c *fiber.Ctx) error {
	reviews, err := rc.service.ListActiveReviews(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// ListProductReviews returns the active reviews of one product
func (rc *ReviewController) ListProductReviews(c *fiber.Ctx) error {
	productID, err := middleware.ParamID(c, "product_id")
	if err != nil {
		return err
	}

	reviews, err := rc.service.ListProductReviews(c.UserContext(), productID)
	if err != nil {
		return err
	}
	return c.JSON(reviews)
}

// CreateReview lets the current buyer review a product
func (rc *ReviewController) CreateReview(c *fiber.Ctx) error {
	reqData := validators.Validated[reviewValidator.CreateReviewRequest](c)

	review, err := rc.service.CreateReview(c.UserContext(), middleware.CurrentUser(c), reviewService.CreateReviewInput{
		ProductID: reqData.ProductID,
		Comment:   reqData.Comment,
		Grade:     reqData.Grade,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// DeleteReview soft-deletes a review
func (rc *ReviewController) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := middleware.ParamID(c, "review_id")
	if err != nil {
		return err
	}

	if err := rc.service.DeleteReview(c.UserContext(), reviewID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}
