package order

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tiffinly/dabba/pkg/types"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		current types.OrderStatus
		action  Action
		role    types.ActorRole
		wantErr error
		want    Decision
	}{
		{
			name:    "vendor marks preparing",
			current: types.OrderStatusUpcoming,
			action:  ActionMarkPreparing,
			role:    types.ActorRoleVendor,
			want:    Decision{Next: types.OrderStatusPreparing},
		},
		{
			name:    "vendor dispatches",
			current: types.OrderStatusPreparing,
			action:  ActionMarkOutForDelivery,
			role:    types.ActorRoleVendor,
			want:    Decision{Next: types.OrderStatusOutForDelivery},
		},
		{
			name:    "admin confirms delivery consumes a credit",
			current: types.OrderStatusOutForDelivery,
			action:  ActionConfirmDelivery,
			role:    types.ActorRoleAdmin,
			want:    Decision{Next: types.OrderStatusDelivered, Delta: LedgerDelta{CreditsUsed: 1}},
		},
		{
			name:    "vendor cannot confirm delivery",
			current: types.OrderStatusOutForDelivery,
			action:  ActionConfirmDelivery,
			role:    types.ActorRoleVendor,
			wantErr: ErrRoleForbidden,
		},
		{
			name:    "user skips consumes skip allowance only",
			current: types.OrderStatusUpcoming,
			action:  ActionSkip,
			role:    types.ActorRoleUser,
			want:    Decision{Next: types.OrderStatusSkipped, Delta: LedgerDelta{SkipsUsed: 1}},
		},
		{
			name:    "user cancels consumes a delivery credit",
			current: types.OrderStatusUpcoming,
			action:  ActionCancel,
			role:    types.ActorRoleUser,
			want:    Decision{Next: types.OrderStatusCancelled, Delta: LedgerDelta{CreditsUsed: 1}},
		},
		{
			name:    "user cannot progress preparation",
			current: types.OrderStatusUpcoming,
			action:  ActionMarkPreparing,
			role:    types.ActorRoleUser,
			wantErr: ErrRoleForbidden,
		},
		{
			name:    "vendor cannot skip",
			current: types.OrderStatusUpcoming,
			action:  ActionSkip,
			role:    types.ActorRoleVendor,
			wantErr: ErrRoleForbidden,
		},
		{
			name:    "skip only fires from upcoming",
			current: types.OrderStatusPreparing,
			action:  ActionSkip,
			role:    types.ActorRoleUser,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "no stage skipping",
			current: types.OrderStatusUpcoming,
			action:  ActionMarkOutForDelivery,
			role:    types.ActorRoleVendor,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "delivered is terminal",
			current: types.OrderStatusDelivered,
			action:  ActionSkip,
			role:    types.ActorRoleUser,
			wantErr: ErrTerminalState,
		},
		{
			name:    "skipped is terminal",
			current: types.OrderStatusSkipped,
			action:  ActionMarkPreparing,
			role:    types.ActorRoleAdmin,
			wantErr: ErrTerminalState,
		},
		{
			name:    "cancelled is terminal",
			current: types.OrderStatusCancelled,
			action:  ActionConfirmDelivery,
			role:    types.ActorRoleAdmin,
			wantErr: ErrTerminalState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.current, tt.action, tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestActionForStatus(t *testing.T) {
	act, err := ActionForStatus(types.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, ActionConfirmDelivery, act)

	act, err = ActionForStatus(types.OrderStatusPreparing)
	require.NoError(t, err)
	require.Equal(t, ActionMarkPreparing, act)

	_, err = ActionForStatus(types.OrderStatusUpcoming)
	require.ErrorIs(t, err, ErrUnknownStatus)

	_, err = ActionForStatus("totally-bogus")
	require.ErrorIs(t, err, ErrUnknownStatus)
}
