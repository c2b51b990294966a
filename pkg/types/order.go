package types

// MealType identifies which meal slot of the day an order belongs to.
type MealType string

const (
	MealTypeLunch  MealType = "lunch"
	MealTypeDinner MealType = "dinner"
)

func (m MealType) Valid() bool {
	return m == MealTypeLunch || m == MealTypeDinner
}

// OrderStatus is the delivery lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusUpcoming       OrderStatus = "upcoming"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusSkipped        OrderStatus = "skipped"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted out of the status.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusDelivered, OrderStatusSkipped, OrderStatusCancelled:
		return true
	}
	return false
}

// ActorRole identifies who is invoking a lifecycle operation.
type ActorRole string

const (
	ActorRoleUser   ActorRole = "user"
	ActorRoleVendor ActorRole = "vendor"
	ActorRoleAdmin  ActorRole = "admin"
)

// Actor is an authenticated caller extracted from the request token.
type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}
