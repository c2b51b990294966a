package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/tiffinly/dabba/pkg/types"
)

// MenuItemRef is a snapshot reference to one offered menu item.
type MenuItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// DailyMeal records which menus a vendor category offers on one civil day.
// At most one row exists per (vendor_category, meal_date); the unique index
// is the arbiter under concurrent set attempts, not the prior lookup.
type DailyMeal struct {
	ID             string `gorm:"column:id;type:uuid;primary_key" json:"id"`
	VendorCategory string `gorm:"column:vendor_category;type:varchar(64);not null;uniqueIndex:uniq_category_meal_date,priority:1" json:"vendor_category"`
	MealDate       string `gorm:"column:meal_date;type:varchar(10);not null;uniqueIndex:uniq_category_meal_date,priority:2" json:"meal_date"`

	LunchMenus  datatypes.JSONType[[]MenuItemRef] `gorm:"column:lunch_menus;type:jsonb;default:'[]'" json:"lunch_menus"`
	DinnerMenus datatypes.JSONType[[]MenuItemRef] `gorm:"column:dinner_menus;type:jsonb;default:'[]'" json:"dinner_menus"`

	CreatedBy string    `gorm:"column:created_by;type:varchar(64);not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DailyMeal) TableName() string {
	return "daily_meal"
}

// MenusFor returns the offered menus for one meal slot.
func (d *DailyMeal) MenusFor(meal types.MealType) []MenuItemRef {
	if d == nil {
		return nil
	}
	switch meal {
	case types.MealTypeLunch:
		return d.LunchMenus.Data()
	case types.MealTypeDinner:
		return d.DinnerMenus.Data()
	}
	return nil
}

// OffersMeal reports whether any menu was selected for the meal slot.
func (d *DailyMeal) OffersMeal(meal types.MealType) bool {
	return len(d.MenusFor(meal)) > 0
}
