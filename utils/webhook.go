package utils

import (
	"context"
	"ecommerce/models"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// OrderEvent is the body posted to the order webhook.
type OrderEvent struct {
	Event       string             `json:"event"`
	OrderNumber string             `json:"order_number"`
	UserID      uint               `json:"user_id"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
	PlacedAt    time.Time          `json:"placed_at"`
}

// OrderWebhook posts order events to an external URL. An empty URL turns it into a no-op.
type OrderWebhook struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

func NewOrderWebhook(url string, timeout time.Duration, log *zap.Logger) *OrderWebhook {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Content-Type", "application/json")
	return &OrderWebhook{client: client, url: url, log: log.Named("orderWebhook")}
}

func (w *OrderWebhook) OrderPlaced(ctx context.Context, order *models.Order) error {
	if w.url == "" {
		return nil
	}

	event := OrderEvent{
		Event:       "order.placed",
		OrderNumber: order.Number,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
		PlacedAt:    order.CreatedAt,
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(event).
		Post(w.url)
	if err != nil {
		return fmt.Errorf("post order event: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("order webhook responded %d: %s", resp.StatusCode(), resp.String())
	}

	w.log.Debug("Order event delivered", zap.String("order_number", order.Number))
	return nil
}
