package orderService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/database"
	"ecommerce/metrics"
	"ecommerce/models"
	cartService "ecommerce/services/cart"
	"ecommerce/testutil"
	"errors"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	orders []string
	err    error
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, order *models.Order) error {
	n.orders = append(n.orders, order.Number)
	return n.err
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	cart     *cartService.Service
	metrics  *metrics.Metrics
	notifier *recordingNotifier
	buyer    *models.User
	product  *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.NewTestDB(t)
	m := metrics.New()
	n := &recordingNotifier{}
	seller := testutil.CreateUser(t, db, models.RoleSeller)
	return &fixture{
		db:       db,
		svc:      NewService(db, zap.NewNop(), m, n),
		cart:     cartService.NewService(db, zap.NewNop()),
		metrics:  m,
		notifier: n,
		buyer:    testutil.CreateUser(t, db, models.RoleBuyer),
		product:  testutil.CreateProduct(t, db, seller),
	}
}

func stock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var p models.Product
	require.NoError(t, db.First(&p, productID).Error)
	return p.Stock
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, f.buyer, f.product.ID, 3)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, f.buyer)

	require.NoError(t, err)
	assert.Len(t, order.Number, 36)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 300.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, 7, stock(t, f.db, f.product.ID))

	items, err := f.cart.List(ctx, f.buyer)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []string{order.Number}, f.notifier.orders)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.OrdersPlaced))
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), f.buyer)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, f.notifier.orders)
}

func TestCheckout_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, f.buyer, f.product.ID, 4)
	require.NoError(t, err)
	require.NoError(t, f.db.Model(f.product).Update("stock", 2).Error)

	_, err = f.svc.Checkout(ctx, f.buyer)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 2, stock(t, f.db, f.product.ID))
	items, err := f.cart.List(ctx, f.buyer)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	var orders int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestCheckout_NotifierErrorDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("webhook down")
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, f.buyer, f.product.ID, 1)
	require.NoError(t, err)

	order, err := f.svc.Checkout(ctx, f.buyer)

	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestListAndGet_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.cart.AddItem(ctx, f.buyer, f.product.ID, 1)
	require.NoError(t, err)
	order, err := f.svc.Checkout(ctx, f.buyer)
	require.NoError(t, err)

	orders, err := f.svc.List(ctx, f.buyer)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1)

	got, err := f.svc.Get(ctx, f.buyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Number, got.Number)

	stranger := testutil.CreateUser(t, f.db, models.RoleBuyer)
	_, err = f.svc.Get(ctx, stranger, order.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	others, err := f.svc.List(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, others)
}
