package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/logctx"
	"github.com/tiffinly/dabba/pkg/tool"
	"github.com/tiffinly/dabba/pkg/types"
)

var (
	ErrNotFound     = errors.New("subscription not found")
	ErrPlanNotFound = errors.New("meal plan not found")
)

// Service owns the subscription ledger: plan instances, their validity
// windows and credit counters. Counters are only mutated by the order
// lifecycle service, inside the same transaction as the order write.
type Service struct {
	db  *gorm.DB
	cfg *config.Config
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{db: db, cfg: cfg, log: log}
}

// Get loads one subscription by id.
func (s *Service) Get(ctx context.Context, id string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return &sub, nil
}

// ListEligible returns every subscription that should receive an order for
// the vendor category on the given civil date: active status, date inside
// the plan window.
func (s *Service) ListEligible(ctx context.Context, vendorCategory, date string) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	err := s.db.WithContext(ctx).
		Where("vendor_category = ?", vendorCategory).
		Where("status = ?", types.SubscriptionStatusActive).
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible subscriptions: %w", err)
	}
	return subs, nil
}

// ListByUser returns a user's subscriptions, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*models.UserSubscription, error) {
	var subs []*models.UserSubscription
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user subscriptions: %w", err)
	}
	return subs, nil
}

// ExpireDue flips active subscriptions whose window has closed to expired.
// Status moves are monotonic; expired rows are never reactivated.
func (s *Service) ExpireDue(ctx context.Context, today string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.UserSubscription{}).
		Where("status = ?", types.SubscriptionStatusActive).
		Where("end_date < ?", today).
		Update("status", types.SubscriptionStatusExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to expire subscriptions: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		logctx.FromCtx(ctx, s.log).Infow("expired subscriptions", "count", res.RowsAffected, "as_of", today)
	}
	return res.RowsAffected, nil
}

// CreateParams describes a plan purchase.
type CreateParams struct {
	UserID     string
	PlanID     string
	VendorID   string
	StartDate  string
	Address    *models.DeliveryAddress
	PushTokens []string
}

// Create materializes a plan instance from the configured catalog. Payment
// capture happens upstream; by the time this is called the purchase is final.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.UserSubscription, error) {
	plan := s.cfg.GetMealPlanByID(p.PlanID)
	if plan == nil {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, p.PlanID)
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user id required")
	}
	if err := clock.ParseDate(p.StartDate); err != nil {
		return nil, err
	}

	start, _ := time.Parse(clock.DateLayout, p.StartDate)
	end := start.AddDate(0, 0, plan.DurationDays-1)

	sub := &models.UserSubscription{
		ID:             tool.GenerateUUIDV7(),
		UserID:         p.UserID,
		PlanID:         plan.ID,
		VendorCategory: plan.VendorCategory,
		VendorID:       p.VendorID,
		Status:         types.SubscriptionStatusActive,
		StartDate:      p.StartDate,
		EndDate:        end.Format(clock.DateLayout),
		LunchEnabled:   plan.MealEnabled(types.MealTypeLunch),
		LunchTime:      plan.LunchTime,
		DinnerEnabled:  plan.MealEnabled(types.MealTypeDinner),
		DinnerTime:     plan.DinnerTime,
		CreditsTotal:   plan.CreditsTotal,
		SkipAllowance:  plan.SkipAllowance,
		DeliveryAddress: datatypes.NewJSONType(p.Address),
		PushTokens:      datatypes.NewJSONSlice(p.PushTokens),
	}

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("subscription created",
		"subscription_id", sub.ID, "user_id", sub.UserID, "plan_id", plan.ID)
	return sub, nil
}

// Cancel marks a subscription cancelled. Existing orders are untouched; the
// generation engine simply stops enumerating it.
func (s *Service) Cancel(ctx context.Context, id string) error {
	sub, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if sub.Status == types.SubscriptionStatusExpired || sub.Status == types.SubscriptionStatusCancelled {
		return fmt.Errorf("subscription is already %s", sub.Status)
	}
	if err := s.db.WithContext(ctx).Model(sub).Update("status", types.SubscriptionStatusCancelled).Error; err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}
	return nil
}
