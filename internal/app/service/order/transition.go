package order

import (
	"errors"
	"fmt"

	"github.com/tiffinly/dabba/pkg/types"
)

// Action is a lifecycle operation requested against an order.
type Action string

const (
	ActionMarkPreparing      Action = "mark_preparing"
	ActionMarkOutForDelivery Action = "mark_out_for_delivery"
	ActionConfirmDelivery    Action = "confirm_delivery"
	ActionSkip               Action = "skip"
	ActionCancel             Action = "cancel"
)

var (
	ErrTerminalState     = errors.New("order is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRoleForbidden     = errors.New("actor role may not perform this action")
	ErrUnknownStatus     = errors.New("unknown target status")
)

// LedgerDelta is the credit-counter change a transition applies to the
// subscription, in the same transaction as the order write.
type LedgerDelta struct {
	CreditsUsed int
	SkipsUsed   int
}

// Decision is the outcome of a valid transition: the next status and the
// ledger change that must accompany it.
type Decision struct {
	Next  types.OrderStatus
	Delta LedgerDelta
}

// actionFrom is the only status each action may fire from. The lifecycle is
// linear, so one source status per action is the whole table.
var actionFrom = map[Action]types.OrderStatus{
	ActionMarkPreparing:      types.OrderStatusUpcoming,
	ActionMarkOutForDelivery: types.OrderStatusPreparing,
	ActionConfirmDelivery:    types.OrderStatusOutForDelivery,
	ActionSkip:               types.OrderStatusUpcoming,
	ActionCancel:             types.OrderStatusUpcoming,
}

var actionNext = map[Action]types.OrderStatus{
	ActionMarkPreparing:      types.OrderStatusPreparing,
	ActionMarkOutForDelivery: types.OrderStatusOutForDelivery,
	ActionConfirmDelivery:    types.OrderStatusDelivered,
	ActionSkip:               types.OrderStatusSkipped,
	ActionCancel:             types.OrderStatusCancelled,
}

// actionDelta: a delivered or cancelled meal consumes a delivery credit; a
// skip consumes only the dedicated skip allowance. The asymmetry is
// intentional: skip is a bounded convenience, cancel always spends a meal.
var actionDelta = map[Action]LedgerDelta{
	ActionConfirmDelivery: {CreditsUsed: 1},
	ActionCancel:          {CreditsUsed: 1},
	ActionSkip:            {SkipsUsed: 1},
}

// roleCaps is the capability set per actor role. Vendors progress
// preparation and dispatch but never confirm delivery; that is an admin-only
// operation so the confirmation stamp is always attributable.
var roleCaps = map[types.ActorRole]map[Action]bool{
	types.ActorRoleUser: {
		ActionSkip:   true,
		ActionCancel: true,
	},
	types.ActorRoleVendor: {
		ActionMarkPreparing:      true,
		ActionMarkOutForDelivery: true,
	},
	types.ActorRoleAdmin: {
		ActionMarkPreparing:      true,
		ActionMarkOutForDelivery: true,
		ActionConfirmDelivery:    true,
	},
}

// Decide is the pure transition function: given the order's current status,
// the requested action and the actor's role, it returns the next status and
// the ledger delta, or the first violated policy. It touches no storage.
func Decide(current types.OrderStatus, action Action, role types.ActorRole) (Decision, error) {
	if current.Terminal() {
		return Decision{}, fmt.Errorf("%w: status is %q, no further changes permitted", ErrTerminalState, current)
	}
	if !roleCaps[role][action] {
		return Decision{}, fmt.Errorf("%w: role %q cannot %s", ErrRoleForbidden, role, action)
	}
	from, ok := actionFrom[action]
	if !ok {
		return Decision{}, fmt.Errorf("%w: %s", ErrInvalidTransition, action)
	}
	if current != from {
		return Decision{}, fmt.Errorf("%w: cannot %s an order in status %q (requires %q)",
			ErrInvalidTransition, action, current, from)
	}
	return Decision{Next: actionNext[action], Delta: actionDelta[action]}, nil
}

// ActionForStatus maps a requested target status from the status-update
// operation onto the action that produces it. A target of delivered maps to
// delivery confirmation, so role gating falls out of the capability set.
func ActionForStatus(target types.OrderStatus) (Action, error) {
	switch target {
	case types.OrderStatusPreparing:
		return ActionMarkPreparing, nil
	case types.OrderStatusOutForDelivery:
		return ActionMarkOutForDelivery, nil
	case types.OrderStatusDelivered:
		return ActionConfirmDelivery, nil
	case types.OrderStatusSkipped:
		return ActionSkip, nil
	case types.OrderStatusCancelled:
		return ActionCancel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
}
