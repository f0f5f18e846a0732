package utils

import (
	"context"
	reviewService "ecommerce/services/review"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reconcileTimeout = 10 * time.Minute

// RatingScheduler periodically recomputes every product rating from its active reviews, repairing
// drift left by writes that bypassed the review service.
type RatingScheduler struct {
	cron *cron.Cron
	db   *gorm.DB
	log  *zap.Logger
}

// InitializeRatingScheduler registers the reconcile job under spec and starts it. An empty spec
// returns nil and nothing is scheduled.
func InitializeRatingScheduler(db *gorm.DB, log *zap.Logger, spec string) (*RatingScheduler, error) {
	log = log.Named("ratingScheduler")
	if spec == "" {
		log.Info("Rating reconciler disabled")
		return nil, nil
	}

	s := &RatingScheduler{cron: cron.New(), db: db, log: log}
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return nil, err
	}

	s.cron.Start()
	log.Info("Rating reconciler started", zap.String("schedule", spec))
	return s, nil
}

// Run reconciles all ratings once.
func (s *RatingScheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	started := time.Now()
	n, err := reviewService.ReconcileRatings(ctx, s.db)
	if err != nil {
		s.log.Error("Rating reconcile failed", zap.Int("products_done", n), zap.Error(err))
		return
	}
	s.log.Info("Rating reconcile finished", zap.Int("products", n), zap.Duration("took", time.Since(started)))
}

// Stop halts the schedule and waits for a running job to finish.
func (s *RatingScheduler) Stop() {
	if s == nil {
		return
	}
	<-s.cron.Stop().Done()
}
