package reviewService

import (
	"context"
	"ecommerce/apperror"
	"ecommerce/database"
	"ecommerce/metrics"
	"ecommerce/models"
	"ecommerce/testutil"
	"errors"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	metrics *metrics.Metrics
	seller  *models.User
	buyerA  *models.User
	buyerB  *models.User
	product *models.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.NewTestDB(t)
	m := metrics.New()
	seller := testutil.CreateUser(t, db, models.RoleSeller)
	return &fixture{
		db:      db,
		svc:     NewService(db, zap.NewNop(), m),
		metrics: m,
		seller:  seller,
		buyerA:  testutil.CreateUser(t, db, models.RoleBuyer),
		buyerB:  testutil.CreateUser(t, db, models.RoleBuyer),
		product: testutil.CreateProduct(t, db, seller),
	}
}

func (f *fixture) reviewCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Review{}).Count(&n).Error)
	return n
}

func TestCreateReview_Success(t *testing.T) {
	f := newFixture(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }
	comment := "Great phone"

	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{
		ProductID: f.product.ID,
		Comment:   &comment,
		Grade:     5,
	})

	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, f.buyerA.ID, review.UserID)
	assert.Equal(t, f.product.ID, review.ProductID)
	assert.Equal(t, "Great phone", *review.Comment)
	assert.True(t, review.CommentDate.Equal(fixed))
	assert.True(t, review.IsActive)
	assert.Equal(t, 5.0, testutil.ProductRating(t, f.db, f.product.ID))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.ReviewsCreated))
}

func TestCreateReview_WithoutComment(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 3})

	require.NoError(t, err)
	assert.Nil(t, review.Comment)
}

func TestCreateReview_RecomputesMean(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 3, true)

	_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})

	require.NoError(t, err)
	assert.Equal(t, 4.0, testutil.ProductRating(t, f.db, f.product.ID))
}

func TestCreateReview_IgnoresInactiveReviewsInMean(t *testing.T) {
	f := newFixture(t)
	buyerC := testutil.CreateUser(t, f.db, models.RoleBuyer)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 1, false)

	_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 4})
	require.NoError(t, err)
	_, err = f.svc.CreateReview(context.Background(), buyerC, CreateReviewInput{ProductID: f.product.ID, Grade: 5})
	require.NoError(t, err)

	assert.Equal(t, 4.5, testutil.ProductRating(t, f.db, f.product.ID))
}

func TestCreateReview_ProductNotFound(t *testing.T) {
	f := newFixture(t)

	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: 9999, Grade: 4})

	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, int64(0), f.reviewCount(t))
}

func TestCreateReview_InactiveProduct(t *testing.T) {
	f := newFixture(t)
	testutil.Deactivate(t, f.db, f.product)

	_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 4})

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, int64(0), f.reviewCount(t))
}

func TestCreateReview_DuplicateIsConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 2})
	require.NoError(t, err)

	_, err = f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, int64(1), f.reviewCount(t))
	assert.Equal(t, 2.0, testutil.ProductRating(t, f.db, f.product.ID))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.ReviewConflicts))
}

func TestCreateReview_ConflictEvenWhenPreviousReviewDeleted(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerA, f.product, 1, false)

	_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})

	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, int64(1), f.reviewCount(t))
	assert.Equal(t, 0.0, testutil.ProductRating(t, f.db, f.product.ID))
}

func TestReviewUniqueIndex_RejectsSecondRow(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerA, f.product, 3, true)

	dup := models.Review{UserID: f.buyerA.ID, ProductID: f.product.ID, Grade: 5, CommentDate: time.Now(), IsActive: true}
	err := f.db.Create(&dup).Error

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCreateReview_InsertLosesRaceToConcurrentReview(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 2, true)
	require.NoError(t, f.db.Model(f.product).Update("rating", 2.0).Error)

	// Another request commits the same (user, product) pair after the existence check has passed.
	var (
		inserted  bool
		insertErr error
	)
	err := f.db.Callback().Create().Before("gorm:create").Register("test:concurrent_review", func(tx *gorm.DB) {
		if inserted || tx.Statement.Table != "reviews" {
			return
		}
		inserted = true
		insertErr = tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO reviews (user_id, product_id, comment_date, grade, is_active) VALUES (?, ?, ?, ?, ?)",
			f.buyerA.ID, f.product.ID, time.Now(), 1, true,
		).Error
	})
	require.NoError(t, err)

	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})

	require.True(t, inserted)
	require.NoError(t, insertErr)
	assert.Nil(t, review)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, "User already has a review for this product", apperror.Message(err))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.ReviewConflicts))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(f.metrics.ReviewsCreated))
	assert.Equal(t, int64(1), f.reviewCount(t))
	var own int64
	require.NoError(t, f.db.Model(&models.Review{}).Where("user_id = ?", f.buyerA.ID).Count(&own).Error)
	assert.Zero(t, own)
	assert.Equal(t, 2.0, testutil.ProductRating(t, f.db, f.product.ID))
}

func TestCreateReview_InvalidGrade(t *testing.T) {
	f := newFixture(t)

	for _, grade := range []int{0, 6, -1} {
		_, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: grade})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "grade %d", grade)
	}
	assert.Equal(t, int64(0), f.reviewCount(t))
}

func TestListActiveReviews_ExcludesInactive(t *testing.T) {
	f := newFixture(t)
	active := testutil.CreateReview(t, f.db, f.buyerA, f.product, 4, true)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 2, false)

	reviews, err := f.svc.ListActiveReviews(context.Background())

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, active.ID, reviews[0].ID)
}

func TestListActiveReviews_EmptyIsNotNil(t *testing.T) {
	f := newFixture(t)

	reviews, err := f.svc.ListActiveReviews(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestListProductReviews(t *testing.T) {
	f := newFixture(t)
	other := testutil.CreateProduct(t, f.db, f.seller)
	mine := testutil.CreateReview(t, f.db, f.buyerA, f.product, 5, true)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 1, false)
	testutil.CreateReview(t, f.db, f.buyerB, other, 3, true)

	reviews, err := f.svc.ListProductReviews(context.Background(), f.product.ID)

	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, mine.ID, reviews[0].ID)
}

func TestListProductReviews_InactiveProductIsNotFound(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerA, f.product, 5, true)
	testutil.Deactivate(t, f.db, f.product)

	reviews, err := f.svc.ListProductReviews(context.Background(), f.product.ID)

	assert.Nil(t, reviews)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteReview_OnlyReviewResetsRating(t *testing.T) {
	f := newFixture(t)
	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(context.Background(), review.ID))

	assert.Equal(t, 0.0, testutil.ProductRating(t, f.db, f.product.ID))
	var stored models.Review
	require.NoError(t, f.db.First(&stored, review.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, 1.0, promtestutil.ToFloat64(f.metrics.ReviewsDeleted))
}

func TestDeleteReview_RecomputesOverRemaining(t *testing.T) {
	f := newFixture(t)
	keep, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 4})
	require.NoError(t, err)
	drop, err := f.svc.CreateReview(context.Background(), f.buyerB, CreateReviewInput{ProductID: f.product.ID, Grade: 2})
	require.NoError(t, err)
	require.Equal(t, 3.0, testutil.ProductRating(t, f.db, f.product.ID))

	require.NoError(t, f.svc.DeleteReview(context.Background(), drop.ID))

	assert.Equal(t, 4.0, testutil.ProductRating(t, f.db, f.product.ID))
	reviews, err := f.svc.ListProductReviews(context.Background(), f.product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, keep.ID, reviews[0].ID)
}

func TestDeleteReview_SecondDeleteIsNotFound(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 3, true)
	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(context.Background(), review.ID))
	require.Equal(t, 3.0, testutil.ProductRating(t, f.db, f.product.ID))

	err = f.svc.DeleteReview(context.Background(), review.ID)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, 3.0, testutil.ProductRating(t, f.db, f.product.ID))
}

func TestDeleteReview_Missing(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteReview(context.Background(), 12345)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func failRatingUpdates(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Callback().Update().Before("gorm:update").Register("test:fail_rating", func(tx *gorm.DB) {
		if tx.Statement.Table == "products" {
			_ = tx.AddError(errors.New("rating update failed"))
		}
	})
	require.NoError(t, err)
}

func TestCreateReview_RatingFailureRollsBackInsert(t *testing.T) {
	f := newFixture(t)
	testutil.CreateReview(t, f.db, f.buyerB, f.product, 3, true)
	require.NoError(t, f.db.Model(f.product).Update("rating", 3.0).Error)
	failRatingUpdates(t, f.db)

	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 5})

	assert.Nil(t, review)
	require.Error(t, err)
	assert.Equal(t, int64(1), f.reviewCount(t))
	assert.Equal(t, 3.0, testutil.ProductRating(t, f.db, f.product.ID))
	assert.Equal(t, 0.0, promtestutil.ToFloat64(f.metrics.ReviewsCreated))
}

func TestDeleteReview_RatingFailureKeepsReviewActive(t *testing.T) {
	f := newFixture(t)
	review, err := f.svc.CreateReview(context.Background(), f.buyerA, CreateReviewInput{ProductID: f.product.ID, Grade: 4})
	require.NoError(t, err)
	failRatingUpdates(t, f.db)

	err = f.svc.DeleteReview(context.Background(), review.ID)

	require.Error(t, err)
	var stored models.Review
	require.NoError(t, f.db.First(&stored, review.ID).Error)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 4.0, testutil.ProductRating(t, f.db, f.product.ID))
}
