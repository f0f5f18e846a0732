package reviewService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/metrics"
	"ecommerce/models"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateReviewInput holds the parameters for creating a review.
type CreateReviewInput struct {
	ProductID uint
	Comment   *string
	Grade     int
}

// Service owns reviews and the product rating derived from them. It trusts the caller's role;
// authorization happens in the HTTP gate.
type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(db *gorm.DB, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		db:      db,
		log:     log.Named("reviewService"),
		metrics: m,
		now:     time.Now,
	}
}

// ListActiveReviews returns every active review in storage order.
func (s *Service) ListActiveReviews(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Scopes(models.Active).Order("id").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// ListProductReviews returns the active reviews of an active product.
func (s *Service) ListProductReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	db := s.db.WithContext(ctx)
	if _, err := findActiveProduct(db, productID, "Product not found or inactive"); err != nil {
		return nil, err
	}

	reviews := []models.Review{}
	if err := db.Scopes(models.Active).
		Where("product_id = ?", productID).
		Order("id").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews for product %d: %w", productID, err)
	}
	return reviews, nil
}

// CreateReview stores author's review of an active product and refreshes the product rating in the
// same transaction. A user gets one review per product, even if the earlier one was deleted.
func (s *Service) CreateReview(ctx context.Context, author *models.User, input CreateReviewInput) (*models.Review, error) {
	if input.Grade < 1 || input.Grade > 5 {
		return nil, apperror.InvalidInput("grade must be between 1 and 5")
	}

	var (
		review models.Review
		rating float64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findActiveProduct(tx, input.ProductID, "Product not found"); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND product_id = ?", author.ID, input.ProductID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check existing review: %w", err)
		}
		if existing > 0 {
			return errDuplicateReview()
		}

		review = models.Review{
			UserID:      author.ID,
			ProductID:   input.ProductID,
			Comment:     input.Comment,
			CommentDate: s.now(),
			Grade:       input.Grade,
			IsActive:    true,
		}
		if err := tx.Create(&review).Error; err != nil {
			// A concurrent request won the race past the existence check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errDuplicateReview()
			}
			return fmt.Errorf("insert review: %w", err)
		}

		var err error
		rating, err = RecalculateProductRating(tx, input.ProductID)
		return err
	})
	if err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			s.metrics.ReviewConflicts.Inc()
		}
		return nil, err
	}

	s.metrics.ReviewsCreated.Inc()
	s.log.Info("Review created",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", review.ProductID),
		zap.Uint("user_id", review.UserID),
		zap.Int("grade", review.Grade),
		zap.Float64("product_rating", rating),
	)
	return &review, nil
}

// DeleteReview soft-deletes an active review and refreshes its product's rating atomically.
func (s *Service) DeleteReview(ctx context.Context, reviewID uint) error {
	var (
		review models.Review
		rating float64
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(models.Active).First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Review not found or inactive")
			}
			return fmt.Errorf("load review %d: %w", reviewID, err)
		}

		if err := tx.Model(&review).Update("is_active", false).Error; err != nil {
			return fmt.Errorf("deactivate review %d: %w", reviewID, err)
		}

		var err error
		rating, err = RecalculateProductRating(tx, review.ProductID)
		return err
	})
	if err != nil {
		return err
	}

	s.metrics.ReviewsDeleted.Inc()
	s.log.Info("Review deleted",
		zap.Uint("review_id", review.ID),
		zap.Uint("product_id", review.ProductID),
		zap.Float64("product_rating", rating),
	)
	return nil
}

func findActiveProduct(db *gorm.DB, productID uint, notFoundMessage string) (*models.Product, error) {
	var product models.Product
	if err := db.Scopes(models.Active).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	return &product, nil
}

func errDuplicateReview() error {
	return apperror.Conflict("User already has a review for this product")
}
