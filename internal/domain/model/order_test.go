package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Next(t *testing.T) {
	tests := []struct {
		current OrderStatus
		next    OrderStatus
		ok      bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderConfirmed, OrderPreparing, true},
		{OrderPreparing, OrderReady, true},
		{OrderReady, OrderPickedUp, true},
		{OrderPickedUp, "", false},
		{OrderDelivered, "", false},
		{OrderCancelled, "", false},
	}

	for _, tt := range tests {
		next, ok := tt.current.Next()
		assert.Equal(t, tt.ok, ok, "Next(%s)", tt.current)
		assert.Equal(t, tt.next, next, "Next(%s)", tt.current)
	}
}

func TestAdvanceStatus(t *testing.T) {
	t.Run("walks the full fulfillment flow", func(t *testing.T) {
		status := OrderPending
		var seen []OrderStatus
		for {
			next, err := AdvanceStatus(status)
			if err != nil {
				break
			}
			seen = append(seen, next)
			status = next
		}
		assert.Equal(t, []OrderStatus{OrderConfirmed, OrderPreparing, OrderReady, OrderPickedUp}, seen)
	})

	t.Run("terminal states cannot advance", func(t *testing.T) {
		for _, s := range []OrderStatus{OrderPickedUp, OrderDelivered, OrderCancelled} {
			_, err := AdvanceStatus(s)
			require.Error(t, err, "AdvanceStatus(%s)", s)
			assert.ErrorIs(t, err, ErrOrderNotAdvanceable)
		}
	})
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, OrderDelivered.Terminal())
	assert.True(t, OrderCancelled.Terminal())
	for _, s := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderPickedUp} {
		assert.False(t, s.Terminal(), "%s should not be terminal", s)
	}
}

func TestOrderStatus_CanCancel(t *testing.T) {
	assert.True(t, OrderPending.CanCancel())
	assert.True(t, OrderConfirmed.CanCancel())
	for _, s := range []OrderStatus{OrderPreparing, OrderReady, OrderPickedUp, OrderDelivered, OrderCancelled} {
		assert.False(t, s.CanCancel(), "%s should not be cancellable", s)
	}
}

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		input string
		want  OrderStatus
		ok    bool
	}{
		{"pending", OrderPending, true},
		{"PENDING", OrderPending, true},
		{" picked_up ", OrderPickedUp, true},
		{"delivered", OrderDelivered, true},
		{"shipped", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseOrderStatus(tt.input)
		assert.Equal(t, tt.ok, ok, "ParseOrderStatus(%q)", tt.input)
		assert.Equal(t, tt.want, got, "ParseOrderStatus(%q)", tt.input)
	}
}
