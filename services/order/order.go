package orderService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/metrics"
	"ecommerce/models"
	cartService "ecommerce/services/cart"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Notifier is told about every committed order.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	metrics   *metrics.Metrics
	notifiers []Notifier
}

func NewService(db *gorm.DB, log *zap.Logger, m *metrics.Metrics, notifiers ...Notifier) *Service {
	return &Service{
		db:        db,
		log:       log.Named("orderService"),
		metrics:   m,
		notifiers: notifiers,
	}
}

// Checkout turns the buyer's cart into a pending order. Stock is decremented and the cart emptied
// in the same transaction.
func (s *Service) Checkout(ctx context.Context, buyer *models.User) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", buyer.ID).Order("id").Find(&lines).Error; err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return apperror.InvalidInput("Cart is empty")
		}

		order = models.Order{
			Number: uuid.NewString(),
			UserID: buyer.ID,
			Status: models.OrderStatusPending,
		}
		for _, line := range lines {
			if line.Product == nil || !line.Product.IsActive {
				return apperror.InvalidInput(fmt.Sprintf("Product %d is no longer available", line.ProductID))
			}

			// Conditional decrement so a concurrent checkout cannot oversell.
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", line.ProductID, line.Quantity).
				Update("stock", gorm.Expr("stock - ?", line.Quantity))
			if result.Error != nil {
				return fmt.Errorf("reserve stock for product %d: %w", line.ProductID, result.Error)
			}
			if result.RowsAffected == 0 {
				return apperror.InvalidInput(fmt.Sprintf("Not enough stock for %s", line.Product.Name))
			}

			total := roundCents(line.Product.Price * float64(line.Quantity))
			order.Items = append(order.Items, models.OrderItem{
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.Product.Price,
				TotalPrice: total,
			})
			order.TotalAmount += total
		}
		order.TotalAmount = roundCents(order.TotalAmount)

		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return cartService.ClearTx(tx, buyer.ID)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.OrdersPlaced.Inc()
	s.log.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.Uint("user_id", buyer.ID),
		zap.Float64("total_amount", order.TotalAmount),
	)

	// Notification failures never undo a committed order.
	for _, n := range s.notifiers {
		if err := n.OrderPlaced(ctx, &order); err != nil {
			s.log.Warn("Order notification failed", zap.String("order_number", order.Number), zap.Error(err))
		}
	}
	return &order, nil
}

// List returns the buyer's orders with their items, oldest first.
func (s *Service) List(ctx context.Context, buyer *models.User) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", buyer.ID).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns one of the buyer's orders. Another user's order reads as not found.
func (s *Service) Get(ctx context.Context, buyer *models.User, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", buyer.ID).
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Order not found")
		}
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	return &order, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
