package reviewService

import (
	"context"
	"ecommerce/models"
	"fmt"

	"gorm.io/gorm"
)

// AverageGrade is the arithmetic mean of grades, 0 for an empty set. No rounding is applied.
func AverageGrade(grades []int) float64 {
	if len(grades) == 0 {
		return 0
	}
	total := 0
	for _, g := range grades {
		total += g
	}
	return float64(total) / float64(len(grades))
}

// RecalculateProductRating recomputes products.rating from the product's active reviews. It must run
// on the same transaction as the review mutation that triggered it.
func RecalculateProductRating(tx *gorm.DB, productID uint) (float64, error) {
	var grades []int
	if err := tx.Model(&models.Review{}).
		Scopes(models.Active).
		Where("product_id = ?", productID).
		Pluck("grade", &grades).Error; err != nil {
		return 0, fmt.Errorf("load grades for product %d: %w", productID, err)
	}

	rating := AverageGrade(grades)
	if err := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error; err != nil {
		return 0, fmt.Errorf("update rating for product %d: %w", productID, err)
	}
	return rating, nil
}

// ReconcileRatings recomputes the rating of every product, one transaction per product, and returns
// how many products were processed.
func ReconcileRatings(ctx context.Context, db *gorm.DB) (int, error) {
	var productIDs []uint
	if err := db.WithContext(ctx).Model(&models.Product{}).Order("id").Pluck("id", &productIDs).Error; err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	for i, id := range productIDs {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			_, err := RecalculateProductRating(tx, id)
			return err
		})
		if err != nil {
			return i, err
		}
	}
	return len(productIDs), nil
}
