package dailymeal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/app/service/ordergen"
	"github.com/tiffinly/dabba/internal/app/service/subscription"
	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/clock"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/tool"
	"github.com/tiffinly/dabba/pkg/types"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserSubscription{},
		&models.DailyMeal{},
		&models.Order{},
		&models.OrderCreationLog{},
	))

	log := zap.NewNop().Sugar()
	cfg := &config.Config{Orders: config.OrdersConfig{GenerationConcurrency: 4, StoreTimeoutSeconds: 5}}
	subs := subscription.NewService(db, cfg, log)
	gen, err := ordergen.NewService(db, cfg, log, subs, clock.Fixed{T: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	return NewService(db, log, gen, subs, clock.Fixed{T: time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)}), db
}

func seedSub(t *testing.T, db *gorm.DB, userID, endDate string) *models.UserSubscription {
	t.Helper()
	sub := &models.UserSubscription{
		ID:             tool.GenerateUUIDV7(),
		UserID:         userID,
		PlanID:         "plan-1",
		VendorCategory: "home-style",
		VendorID:       "vendor-1",
		Status:         types.SubscriptionStatusActive,
		StartDate:      "2026-03-01",
		EndDate:        endDate,
		LunchEnabled:   true,
		LunchTime:      "12:30",
		CreditsTotal:   30,
		SkipAllowance:  4,
		DeliveryAddress: datatypes.NewJSONType(&models.DeliveryAddress{
			Line1: "12 MG Road", City: "Pune", Pincode: "411001", Phone: "9999999999",
		}),
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func lunchMenus() []models.MenuItemRef {
	return []models.MenuItemRef{{ID: "m1", Name: "Dal Tadka"}}
}

func TestSetTodayMealGeneratesOrders(t *testing.T) {
	svc, db := newTestService(t)
	seedSub(t, db, "user-1", "2026-03-30")
	seedSub(t, db, "user-2", "2026-03-30")

	meal, res, err := svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
		LunchMenus:     lunchMenus(),
		ActorID:        "admin-1",
	})
	require.NoError(t, err)
	require.NotNil(t, meal)
	require.Equal(t, "2026-03-10", meal.MealDate)
	require.Len(t, res.Created, 2)
	require.Empty(t, res.Failures)
}

func TestSetTodayMealIsCreateOnce(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
		LunchMenus:     lunchMenus(),
		ActorID:        "admin-1",
	})
	require.NoError(t, err)

	// a second selection for the same day is a hard stop, not an upsert
	_, _, err = svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
		DinnerMenus:    []models.MenuItemRef{{ID: "m2", Name: "Paneer Bhurji"}},
		ActorID:        "admin-1",
	})
	require.ErrorIs(t, err, ErrAlreadySet)

	// a different category on the same day is independent
	_, _, err = svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "diet",
		Date:           "2026-03-10",
		LunchMenus:     lunchMenus(),
		ActorID:        "admin-1",
	})
	require.NoError(t, err)
}

func TestSetTodayMealValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
	})
	require.ErrorIs(t, err, ErrNoMenus)

	_, _, err = svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		Date:       "2026-03-10",
		LunchMenus: lunchMenus(),
	})
	require.Error(t, err)

	_, _, err = svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "10-03-2026",
		LunchMenus:     lunchMenus(),
	})
	require.Error(t, err)
}

func TestSetTodayMealSweepsLapsedSubscriptions(t *testing.T) {
	svc, db := newTestService(t)
	lapsed := seedSub(t, db, "user-1", "2026-03-05")
	seedSub(t, db, "user-2", "2026-03-30")

	_, res, err := svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
		LunchMenus:     lunchMenus(),
		ActorID:        "admin-1",
	})
	require.NoError(t, err)
	require.Len(t, res.Created, 1, "lapsed subscription must not receive an order")

	var fresh models.UserSubscription
	require.NoError(t, db.First(&fresh, "id = ?", lapsed.ID).Error)
	require.Equal(t, types.SubscriptionStatusExpired, fresh.Status)
}

func TestGet(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.SetTodayMeal(context.Background(), SetTodayMealParams{
		VendorCategory: "home-style",
		Date:           "2026-03-10",
		LunchMenus:     lunchMenus(),
		ActorID:        "admin-1",
	})
	require.NoError(t, err)

	meal, err := svc.Get(context.Background(), "home-style", "2026-03-10")
	require.NoError(t, err)
	require.True(t, meal.OffersMeal(types.MealTypeLunch))

	_, err = svc.Get(context.Background(), "home-style", "2026-03-11")
	require.ErrorIs(t, err, ordergen.ErrDailyMealNotFound)
}
