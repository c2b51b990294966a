package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tiffinly/dabba/internal/models"
	"github.com/tiffinly/dabba/pkg/config"
	"github.com/tiffinly/dabba/pkg/tool"
	"github.com/tiffinly/dabba/pkg/types"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserSubscription{}))

	cfg := &config.Config{
		MealPlans: []*types.MealPlan{
			{
				ID:             "tiffin-both-30",
				Name:           "Lunch + Dinner Tiffin (30 days)",
				VendorCategory: "home-style",
				DurationDays:   30,
				CreditsTotal:   60,
				SkipAllowance:  8,
				LunchTime:      "12:30",
				DinnerTime:     "19:30",
			},
		},
	}
	return NewService(db, cfg, zap.NewNop().Sugar()), db
}

func seed(t *testing.T, db *gorm.DB, status types.SubscriptionStatus, category, start, end string) *models.UserSubscription {
	t.Helper()
	sub := &models.UserSubscription{
		ID:             tool.GenerateUUIDV7(),
		UserID:         "user-1",
		PlanID:         "plan-1",
		VendorCategory: category,
		VendorID:       "vendor-1",
		Status:         status,
		StartDate:      start,
		EndDate:        end,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestListEligible(t *testing.T) {
	svc, db := newTestService(t)

	inWindow := seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-03-01", "2026-03-30")
	seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-03-11", "2026-03-30") // starts tomorrow
	seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-02-01", "2026-03-09") // ended yesterday
	seed(t, db, types.SubscriptionStatusActive, "diet", "2026-03-01", "2026-03-30")       // other category
	seed(t, db, types.SubscriptionStatusCancelled, "home-style", "2026-03-01", "2026-03-30")
	seed(t, db, types.SubscriptionStatusExpired, "home-style", "2026-03-01", "2026-03-30")

	subs, err := svc.ListEligible(context.Background(), "home-style", "2026-03-10")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, inWindow.ID, subs[0].ID)

	// window edges are inclusive
	subs, err = svc.ListEligible(context.Background(), "home-style", "2026-03-01")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	subs, err = svc.ListEligible(context.Background(), "home-style", "2026-03-30")
	require.NoError(t, err)
	require.Len(t, subs, 2)
}

func TestExpireDue(t *testing.T) {
	svc, db := newTestService(t)

	due := seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-02-01", "2026-03-09")
	current := seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-03-01", "2026-03-30")
	cancelled := seed(t, db, types.SubscriptionStatusCancelled, "home-style", "2026-02-01", "2026-03-05")

	n, err := svc.ExpireDue(context.Background(), "2026-03-10")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	var fresh models.UserSubscription
	require.NoError(t, db.First(&fresh, "id = ?", due.ID).Error)
	require.Equal(t, types.SubscriptionStatusExpired, fresh.Status)

	fresh = models.UserSubscription{}
	require.NoError(t, db.First(&fresh, "id = ?", current.ID).Error)
	require.Equal(t, types.SubscriptionStatusActive, fresh.Status)

	// cancelled rows stay cancelled, never flipped to expired
	fresh = models.UserSubscription{}
	require.NoError(t, db.First(&fresh, "id = ?", cancelled.ID).Error)
	require.Equal(t, types.SubscriptionStatusCancelled, fresh.Status)

	// re-running the sweep is a no-op
	n, err = svc.ExpireDue(context.Background(), "2026-03-10")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCreateFromPlanCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	sub, err := svc.Create(context.Background(), CreateParams{
		UserID:    "user-9",
		PlanID:    "tiffin-both-30",
		VendorID:  "vendor-1",
		StartDate: "2026-03-10",
		Address:   &models.DeliveryAddress{Line1: "12 MG Road", City: "Pune", Pincode: "411001"},
	})
	require.NoError(t, err)
	require.Equal(t, types.SubscriptionStatusActive, sub.Status)
	require.Equal(t, "2026-03-10", sub.StartDate)
	require.Equal(t, "2026-04-08", sub.EndDate, "30-day plan spans start date plus 29")
	require.Equal(t, 60, sub.CreditsTotal)
	require.Equal(t, 8, sub.SkipAllowance)
	require.True(t, sub.LunchEnabled)
	require.True(t, sub.DinnerEnabled)
	require.Equal(t, "12:30", sub.LunchTime)
	require.Equal(t, "19:30", sub.DinnerTime)

	_, err = svc.Create(context.Background(), CreateParams{
		UserID:    "user-9",
		PlanID:    "no-such-plan",
		StartDate: "2026-03-10",
	})
	require.ErrorIs(t, err, ErrPlanNotFound)

	_, err = svc.Create(context.Background(), CreateParams{
		PlanID:    "tiffin-both-30",
		StartDate: "2026-03-10",
	})
	require.Error(t, err)
}

func TestCancel(t *testing.T) {
	svc, db := newTestService(t)
	sub := seed(t, db, types.SubscriptionStatusActive, "home-style", "2026-03-01", "2026-03-30")

	require.NoError(t, svc.Cancel(context.Background(), sub.ID))

	var fresh models.UserSubscription
	require.NoError(t, db.First(&fresh, "id = ?", sub.ID).Error)
	require.Equal(t, types.SubscriptionStatusCancelled, fresh.Status)

	require.Error(t, svc.Cancel(context.Background(), sub.ID), "already cancelled")
	require.ErrorIs(t, svc.Cancel(context.Background(), "no-such-id"), ErrNotFound)
}
