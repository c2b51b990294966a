package ordergen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/logctx"
	"github.com/tiffinly/dabba/pkg/metrics"
	"github.com/tiffinly/dabba/pkg/tool"
	"github.com/tiffinly/dabba/pkg/types"
)

var (
	ErrDailyMealNotFound = errors.New("daily meal not found")
	ErrLogNotFound       = errors.New("order creation log not found")
	ErrBadFailureIndex   = errors.New("failure index out of range")
)

// Result summarizes one generation batch. Per-subscription failures live in
// Failures; they never abort the batch.
type Result struct {
	Created         []*models.Order               `json:"created"`
	SkippedExisting int                           `json:"skipped_existing"`
	Failures        []models.OrderCreationFailure `json:"failures"`
	LogID           string                        `json:"log_id"`
}

// Service is the daily order generation engine: it fans order creation out
// across every eligible subscription for a daily meal selection, collecting
// partial failures into a retryable creation log.
type Service struct {
	db     *gorm.DB
	cfg    *config.Config
	log    *zap.SugaredLogger
	subs   *subscription.Service
	clk    clock.Clock
	genDur *prometheus.HistogramVec
}

func NewService(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger, subs *subscription.Service, clk clock.Clock) (*Service, error) {
	genDur, err := metrics.RegisterGenerationBatch("dabba")
	if err != nil {
		return nil, fmt.Errorf("failed to register generation metric: %w", err)
	}
	return &Service{db: db, cfg: cfg, log: log, subs: subs, clk: clk, genDur: genDur}, nil
}

// GetDailyMeal loads the selection for one (vendor category, date).
func (s *Service) GetDailyMeal(ctx context.Context, vendorCategory, date string) (*models.DailyMeal, error) {
	var meal models.DailyMeal
	err := s.db.WithContext(ctx).
		Where("vendor_category = ? AND meal_date = ?", vendorCategory, date).
		First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s on %s", ErrDailyMealNotFound, vendorCategory, date)
		}
		return nil, fmt.Errorf("failed to load daily meal: %w", err)
	}
	return &meal, nil
}

// Generate creates one order per eligible (subscription, meal type) for the
// daily meal. Re-invocation is safe: existing orders are skipped, so the
// whole operation is the basis for the admin refresh.
func (s *Service) Generate(ctx context.Context, meal *models.DailyMeal, triggeredBy string) (*Result, error) {
	subs, err := s.subs.ListEligible(ctx, meal.VendorCategory, meal.MealDate)
	if err != nil {
		return nil, err
	}
	return s.generateFor(ctx, meal, subs, triggeredBy)
}

// RefreshSubscription resyncs one subscription against today's meal.
func (s *Service) RefreshSubscription(ctx context.Context, subscriptionID, date, triggeredBy string) (*Result, error) {
	sub, err := s.subs.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !sub.ActiveOn(date) {
		return nil, fmt.Errorf("subscription %s is not active on %s", subscriptionID, date)
	}
	meal, err := s.GetDailyMeal(ctx, sub.VendorCategory, date)
	if err != nil {
		return nil, err
	}
	return s.generateFor(ctx, meal, []*models.UserSubscription{sub}, triggeredBy)
}

// unit is one independently schedulable piece of the fan-out.
type unit struct {
	sub  *models.UserSubscription
	meal types.MealType
}

func (s *Service) concurrency() int {
	if n := s.cfg.Orders.GenerationConcurrency; n > 0 {
		return n
	}
	return 8
}

func (s *Service) storeTimeout() time.Duration {
	if n := s.cfg.Orders.StoreTimeoutSeconds; n > 0 {
		return time.Duration(n) * time.Second
	}
	return 10 * time.Second
}

func (s *Service) generateFor(ctx context.Context, meal *models.DailyMeal, subs []*models.UserSubscription, triggeredBy string) (*Result, error) {
	start := time.Now()

	var units []unit
	for _, sub := range subs {
		for _, mt := range []types.MealType{types.MealTypeLunch, types.MealTypeDinner} {
			if sub.MealEnabled(mt) && meal.OffersMeal(mt) {
				units = append(units, unit{sub: sub, meal: mt})
			}
		}
	}

	res := &Result{Failures: []models.OrderCreationFailure{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for _, u := range units {
		g.Go(func() error {
			uctx, cancel := context.WithTimeout(gctx, s.storeTimeout())
			defer cancel()

			ord, created, err := s.createOne(uctx, s.db, meal, u.sub, u.meal)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				res.Failures = append(res.Failures, models.OrderCreationFailure{
					SubscriptionID: u.sub.ID,
					MealType:       u.meal,
					Reason:         err.Error(),
					Retryable:      true,
				})
			case created:
				res.Created = append(res.Created, ord)
			default:
				res.SkippedExisting++
			}
			// a unit failure never fails the batch
			return nil
		})
	}
	_ = g.Wait()

	entry := &models.OrderCreationLog{
		ID:              tool.GenerateUUIDV7(),
		DailyMealID:     meal.ID,
		VendorCategory:  meal.VendorCategory,
		MealDate:        meal.MealDate,
		TotalAttempted:  len(units),
		CreatedCount:    len(res.Created),
		SkippedExisting: res.SkippedExisting,
		Failures:        datatypes.NewJSONType(res.Failures),
		TriggeredBy:     triggeredBy,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to persist order creation log: %w", err)
	}
	res.LogID = entry.ID

	s.genDur.WithLabelValues(meal.VendorCategory).Observe(metrics.MillisecondsSince(start))
	logctx.FromCtx(ctx, s.log).Infow("order generation batch",
		"daily_meal_id", meal.ID,
		"meal_date", meal.MealDate,
		"attempted", len(units),
		"created", len(res.Created),
		"skipped_existing", res.SkippedExisting,
		"failed", len(res.Failures),
	)
	return res, nil
}

// createOne builds and persists a single order. The (subscription, date,
// meal type) unique index is the idempotency key: a concurrent duplicate
// insert reads as "already exists", not as an error.
func (s *Service) createOne(ctx context.Context, db *gorm.DB, meal *models.DailyMeal, sub *models.UserSubscription, mt types.MealType) (*models.Order, bool, error) {
	if sub.VendorID == "" {
		return nil, false, fmt.Errorf("subscription has no vendor assignment")
	}
	addr := sub.DeliveryAddress.Data()
	if addr == nil || addr.Line1 == "" {
		return nil, false, fmt.Errorf("subscription has no valid delivery address")
	}
	deliveryTime := sub.DeliveryTimeFor(mt)
	if err := clock.ParseHHMM(deliveryTime); err != nil {
		return nil, false, fmt.Errorf("subscription has no valid %s delivery time: %w", mt, err)
	}

	var existing models.Order
	err := db.WithContext(ctx).
		Where("user_subscription_id = ? AND delivery_date = ? AND meal_type = ?", sub.ID, meal.MealDate, mt).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to check existing order: %w", err)
	}

	ord := &models.Order{
		ID:                 tool.GenerateUUIDV7(),
		UserID:             sub.UserID,
		UserSubscriptionID: sub.ID,
		DailyMealID:        meal.ID,
		VendorID:           sub.VendorID,
		MealType:           mt,
		DeliveryDate:       meal.MealDate,
		DeliveryTime:       deliveryTime,
		SelectedMenus:      datatypes.NewJSONType(meal.MenusFor(mt)),
		DeliveryAddress:    sub.DeliveryAddress,
		Status:             types.OrderStatusUpcoming,
	}
	if err := db.WithContext(ctx).Create(ord).Error; err != nil {
		// lost the race on the unique key: some other invocation created it
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to create order: %w", err)
	}
	return ord, true, nil
}
