// Package testutil seeds rows shared by service and controller tests.
package testutil

import (
	"ecommerce/models"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"
)

var seq atomic.Int64

// CreateUser inserts an active user with the given role.
func CreateUser(t testing.TB, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	n := seq.Add(1)
	user := &models.User{
		Email:          fmt.Sprintf("%s%d@example.com", role, n),
		Name:           fmt.Sprintf("%s %d", role, n),
		HashedPassword: "not-a-real-hash",
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateCategory inserts an active category.
func CreateCategory(t testing.TB, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{Name: fmt.Sprintf("Category %d", seq.Add(1)), IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

// CreateProduct inserts an active product with stock owned by seller in a fresh category.
func CreateProduct(t testing.TB, db *gorm.DB, seller *models.User) *models.Product {
	t.Helper()
	category := CreateCategory(t, db)
	product := &models.Product{
		Name:       fmt.Sprintf("Product %d", seq.Add(1)),
		Price:      100,
		Stock:      10,
		CategoryID: category.ID,
		SellerID:   seller.ID,
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// Deactivate flips is_active off for the row behind model.
func Deactivate(t testing.TB, db *gorm.DB, model interface{}) {
	t.Helper()
	if err := db.Model(model).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}
}

// CreateReview inserts a review row directly, bypassing the service.
func CreateReview(t testing.TB, db *gorm.DB, user *models.User, product *models.Product, grade int, active bool) *models.Review {
	t.Helper()
	review := &models.Review{
		UserID:      user.ID,
		ProductID:   product.ID,
		Grade:       grade,
		CommentDate: time.Now(),
		IsActive:    true,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}
	if !active {
		Deactivate(t, db, review)
		review.IsActive = false
	}
	return review
}

// ProductRating reads the stored rating of a product.
func ProductRating(t testing.TB, db *gorm.DB, productID uint) float64 {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	return product.Rating
}
