package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tiffinly/dabba/pkg/types"
)

// OrderCreationFailure is one per-subscription failure inside a generation batch.
type OrderCreationFailure struct {
	SubscriptionID string         `json:"subscription_id"`
	MealType       types.MealType `json:"meal_type"`
	Reason         string         `json:"reason"`
	Retryable      bool           `json:"retryable"`
	// Retried/Resolved are flipped by the admin retry operation.
	Retried  bool `json:"retried"`
	Resolved bool `json:"resolved"`
}

// OrderCreationLog is the append-only record of one generation batch.
// Failed items are retried one at a time through the admin retry operation;
// the batch row itself is never rewritten beyond those flags.
type OrderCreationLog struct {
	ID             string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	DailyMealID    string `gorm:"column:daily_meal_id;type:uuid;not null;index" json:"daily_meal_id"`
	VendorCategory string `gorm:"column:vendor_category;type:varchar(64);not null;index" json:"vendor_category"`
	MealDate       string `gorm:"column:meal_date;type:varchar(10);not null;index" json:"meal_date"`

	TotalAttempted  int `gorm:"column:total_attempted;not null;default:0" json:"total_attempted"`
	CreatedCount    int `gorm:"column:created_count;not null;default:0" json:"created_count"`
	SkippedExisting int `gorm:"column:skipped_existing;not null;default:0" json:"skipped_existing"`

	Failures datatypes.JSONType[[]OrderCreationFailure] `gorm:"column:failures;type:jsonb;default:'[]'" json:"failures"`

	TriggeredBy string    `gorm:"column:triggered_by;type:varchar(64);not null" json:"triggered_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (OrderCreationLog) TableName() string {
	return "order_creation_log"
}
