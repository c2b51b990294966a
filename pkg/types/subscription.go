package types

// SubscriptionStatus is the lifecycle state of a purchased plan instance.
// Transitions are monotonic: an expired or cancelled subscription is never
// re-activated.
type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// MealPlan is a catalog entry describing a purchasable subscription plan.
// The catalog lives in config; subscriptions reference plans by ID.
type MealPlan struct {
	ID             string `json:"id" mapstructure:"id"`
	Name           string `json:"name" mapstructure:"name"`
	VendorCategory string `json:"vendor_category" mapstructure:"vendor_category"`
	// DurationDays is the plan validity window starting at purchase.
	DurationDays int `json:"duration_days" mapstructure:"duration_days"`
	// CreditsTotal is the number of deliverable meals the plan grants.
	CreditsTotal int `json:"credits_total" mapstructure:"credits_total"`
	// SkipAllowance bounds how many meals can be skipped without
	// consuming a delivery credit.
	SkipAllowance int `json:"skip_allowance" mapstructure:"skip_allowance"`
	// Default delivery times, HH:MM in the business timezone.
	LunchTime  string `json:"lunch_time" mapstructure:"lunch_time"`
	DinnerTime string `json:"dinner_time" mapstructure:"dinner_time"`
}

func (p *MealPlan) MealEnabled(meal MealType) bool {
	switch meal {
	case MealTypeLunch:
		return p.LunchTime != ""
	case MealTypeDinner:
		return p.DinnerTime != ""
	}
	return false
}
