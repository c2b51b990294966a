package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tiffinly/dabba/pkg/types"
)

// DeliveryAddress is the drop location for a subscription's meals.
type DeliveryAddress struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
	Landmark string `json:"landmark,omitempty"`
}

// UserSubscription is one purchased, time-bounded plan instance.
// Credits are mutated only by the order lifecycle service, inside the same
// transaction as the order status write.
type UserSubscription struct {
	ID             string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID         string                   `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	PlanID         string                   `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	VendorCategory string                   `gorm:"column:vendor_category;type:varchar(64);not null;index" json:"vendor_category"`
	// VendorID is the kitchen assigned to deliver this subscription's meals.
	VendorID string                         `gorm:"column:vendor_id;type:varchar(64)" json:"vendor_id"`
	Status   types.SubscriptionStatus       `gorm:"column:status;type:varchar(32);not null" json:"status"`
	// StartDate/EndDate are civil dates (YYYY-MM-DD) in the business timezone.
	StartDate string `gorm:"column:start_date;type:varchar(10);not null" json:"start_date"`
	EndDate   string `gorm:"column:end_date;type:varchar(10);not null" json:"end_date"`

	LunchEnabled  bool   `gorm:"column:lunch_enabled;not null;default:false" json:"lunch_enabled"`
	LunchTime     string `gorm:"column:lunch_time;type:varchar(5)" json:"lunch_time"`
	DinnerEnabled bool   `gorm:"column:dinner_enabled;not null;default:false" json:"dinner_enabled"`
	DinnerTime    string `gorm:"column:dinner_time;type:varchar(5)" json:"dinner_time"`

	CreditsTotal  int `gorm:"column:credits_total;not null;default:0" json:"credits_total"`
	CreditsUsed   int `gorm:"column:credits_used;not null;default:0" json:"credits_used"`
	SkipAllowance int `gorm:"column:skip_allowance;not null;default:0" json:"skip_allowance"`
	SkipsUsed     int `gorm:"column:skips_used;not null;default:0" json:"skips_used"`

	DeliveryAddress datatypes.JSONType[*DeliveryAddress] `gorm:"column:delivery_address;type:jsonb;default:'{}'" json:"delivery_address"`
	// PushTokens holds the subscriber's device tokens for best-effort notifications.
	PushTokens datatypes.JSONSlice[string] `gorm:"column:push_tokens;type:jsonb;default:'[]'" json:"push_tokens"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserSubscription) TableName() string {
	return "user_subscription"
}

// ActiveOn reports whether the subscription can receive an order on date.
// Dates are ISO strings, so lexical comparison matches chronological order.
func (s *UserSubscription) ActiveOn(date string) bool {
	return s != nil &&
		s.Status == types.SubscriptionStatusActive &&
		s.StartDate <= date && date <= s.EndDate
}

func (s *UserSubscription) MealEnabled(meal types.MealType) bool {
	switch meal {
	case types.MealTypeLunch:
		return s.LunchEnabled
	case types.MealTypeDinner:
		return s.DinnerEnabled
	}
	return false
}

// DeliveryTimeFor returns the HH:MM delivery slot for the meal type.
func (s *UserSubscription) DeliveryTimeFor(meal types.MealType) string {
	switch meal {
	case types.MealTypeLunch:
		return s.LunchTime
	case types.MealTypeDinner:
		return s.DinnerTime
	}
	return ""
}
