package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tiffinly/dabba/pkg/types"
)

// ActionDetails records who skipped or cancelled an order, and why.
type ActionDetails struct {
	Reason string    `json:"reason"`
	By     string    `json:"by"`
	At     time.Time `json:"at"`
}

// DeliveryConfirmation is stamped by the admin-only confirmation operation.
type DeliveryConfirmation struct {
	ConfirmedAt time.Time `json:"confirmed_at"`
	By          string    `json:"by"`
}

// Order is one deliverable meal instance for one subscriber, one meal slot,
// one day. The compound unique index is the generation idempotency key: a
// duplicate insert for the same (subscription, date, meal) is read as
// "already exists", never as a second order.
type Order struct {
	ID                 string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID             string `gorm:"column:user_id;type:varchar(64);not null;index" json:"user_id"`
	UserSubscriptionID string `gorm:"column:user_subscription_id;type:uuid;not null;uniqueIndex:uniq_subscription_date_meal,priority:1" json:"user_subscription_id"`
	DailyMealID        string `gorm:"column:daily_meal_id;type:uuid;not null;index" json:"daily_meal_id"`
	VendorID           string `gorm:"column:vendor_id;type:varchar(64);not null;index" json:"vendor_id"`

	MealType     types.MealType `gorm:"column:meal_type;type:varchar(16);not null;uniqueIndex:uniq_subscription_date_meal,priority:3" json:"meal_type"`
	DeliveryDate string         `gorm:"column:delivery_date;type:varchar(10);not null;uniqueIndex:uniq_subscription_date_meal,priority:2" json:"delivery_date"`
	// DeliveryTime is the HH:MM slot in the business timezone.
	DeliveryTime string `gorm:"column:delivery_time;type:varchar(5);not null" json:"delivery_time"`

	SelectedMenus   datatypes.JSONType[[]MenuItemRef]    `gorm:"column:selected_menus;type:jsonb;default:'[]'" json:"selected_menus"`
	DeliveryAddress datatypes.JSONType[*DeliveryAddress] `gorm:"column:delivery_address;type:jsonb;default:'{}'" json:"delivery_address"`

	Status types.OrderStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`

	SkipDetails          datatypes.JSONType[*ActionDetails]        `gorm:"column:skip_details;type:jsonb;default:'{}'" json:"skip_details"`
	CancellationDetails  datatypes.JSONType[*ActionDetails]        `gorm:"column:cancellation_details;type:jsonb;default:'{}'" json:"cancellation_details"`
	DeliveryConfirmation datatypes.JSONType[*DeliveryConfirmation] `gorm:"column:delivery_confirmation;type:jsonb;default:'{}'" json:"delivery_confirmation"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string {
	return "order_item"
}
