package cartService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/models"
	productService "ecommerce/services/product"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log.Named("cartService")}
}

// List returns the buyer's cart lines with their products.
func (s *Service) List(ctx context.Context, buyer *models.User) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", buyer.ID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

// AddItem puts quantity units of a product in the cart, adding to an existing line.
func (s *Service) AddItem(ctx context.Context, buyer *models.User, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := productService.FindActive(tx, productID)
		if err != nil {
			return err
		}

		err = tx.Where("user_id = ? AND product_id = ?", buyer.ID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{UserID: buyer.ID, ProductID: productID}
		case err != nil:
			return fmt.Errorf("load cart item: %w", err)
		}

		item.Quantity += quantity
		if err := checkStock(product, item.Quantity); err != nil {
			return err
		}
		if err := tx.Save(&item).Error; err != nil {
			return fmt.Errorf("save cart item: %w", err)
		}
		item.Product = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem sets the quantity of an existing cart line.
func (s *Service) UpdateItem(ctx context.Context, buyer *models.User, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").
			Where("user_id = ? AND product_id = ?", buyer.ID, productID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("Cart item not found")
			}
			return fmt.Errorf("load cart item: %w", err)
		}
		if err := checkStock(item.Product, quantity); err != nil {
			return err
		}
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("update cart item: %w", err)
		}
		item.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) RemoveItem(ctx context.Context, buyer *models.User, productID uint) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", buyer.ID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("Cart item not found")
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, buyer *models.User) error {
	if err := ClearTx(s.db.WithContext(ctx), buyer.ID); err != nil {
		return err
	}
	s.log.Debug("Cart cleared", zap.Uint("user_id", buyer.ID))
	return nil
}

// ClearTx empties a user's cart on db, which may be a transaction.
func ClearTx(db *gorm.DB, userID uint) error {
	if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func checkStock(product *models.Product, quantity int) error {
	if product == nil || !product.IsActive {
		return apperror.InvalidInput("Product is no longer available")
	}
	if quantity > product.Stock {
		return apperror.InvalidInput(fmt.Sprintf("Only %d units of %s in stock", product.Stock, product.Name))
	}
	return nil
}
