package dailymeal

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/app/service/ordergen"
	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/logctx"
	"github.com/tiffinly/dabba/pkg/tool"
)

var (
	// ErrAlreadySet: the selection is create-once per (category, date).
	// Use the refresh operation to resync orders, not a second set.
	ErrAlreadySet = errors.New("meal already set for this category and date")
	ErrNoMenus    = errors.New("at least one lunch or dinner menu is required")
)

// Service records the daily meal selection and triggers order generation.
type Service struct {
	db   *gorm.DB
	log  *zap.SugaredLogger
	gen  *ordergen.Service
	subs *subscription.Service
	clk  clock.Clock
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, gen *ordergen.Service, subs *subscription.Service, clk clock.Clock) *Service {
	return &Service{db: db, log: log, gen: gen, subs: subs, clk: clk}
}

// SetTodayMealParams is an admin's selection for one vendor category.
type SetTodayMealParams struct {
	VendorCategory string
	Date           string
	LunchMenus     []models.MenuItemRef
	DinnerMenus    []models.MenuItemRef
	ActorID        string
}

// SetTodayMeal persists the selection and fans order generation out across
// every eligible subscription. The selection is immutable once created; a
// second call for the same (category, date) is a hard stop, never an upsert.
func (s *Service) SetTodayMeal(ctx context.Context, p SetTodayMealParams) (*models.DailyMeal, *ordergen.Result, error) {
	if p.VendorCategory == "" {
		return nil, nil, fmt.Errorf("vendor category required")
	}
	if err := clock.ParseDate(p.Date); err != nil {
		return nil, nil, err
	}
	if len(p.LunchMenus) == 0 && len(p.DinnerMenus) == 0 {
		return nil, nil, ErrNoMenus
	}

	var existing models.DailyMeal
	err := s.db.WithContext(ctx).
		Where("vendor_category = ? AND meal_date = ?", p.VendorCategory, p.Date).
		First(&existing).Error
	if err == nil {
		return nil, nil, fmt.Errorf("%w: %s on %s", ErrAlreadySet, p.VendorCategory, p.Date)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("failed to check existing daily meal: %w", err)
	}

	meal := &models.DailyMeal{
		ID:             tool.GenerateUUIDV7(),
		VendorCategory: p.VendorCategory,
		MealDate:       p.Date,
		LunchMenus:     datatypes.NewJSONType(p.LunchMenus),
		DinnerMenus:    datatypes.NewJSONType(p.DinnerMenus),
		CreatedBy:      p.ActorID,
	}
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		// the unique index is the arbiter under concurrent set attempts
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, fmt.Errorf("%w: %s on %s", ErrAlreadySet, p.VendorCategory, p.Date)
		}
		return nil, nil, fmt.Errorf("failed to create daily meal: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("daily meal set",
		"daily_meal_id", meal.ID, "vendor_category", p.VendorCategory,
		"meal_date", p.Date, "actor_id", p.ActorID)

	// sweep lapsed subscriptions before enumerating eligibility
	if _, err := s.subs.ExpireDue(ctx, p.Date); err != nil {
		logctx.FromCtx(ctx, s.log).Warnw("expiry sweep failed", "err", err)
	}

	result, err := s.gen.Generate(ctx, meal, p.ActorID)
	if err != nil {
		return meal, nil, err
	}
	return meal, result, nil
}

// Get returns the selection for one (category, date).
func (s *Service) Get(ctx context.Context, vendorCategory, date string) (*models.DailyMeal, error) {
	return s.gen.GetDailyMeal(ctx, vendorCategory, date)
}
