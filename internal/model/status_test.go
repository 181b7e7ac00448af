package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusOrderAccepted, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusOrderAccepted, StatusShipped, true},
		{StatusOrderAccepted, StatusCancelled, false},
		{StatusOrderAccepted, StatusPending, false},
		{StatusShipped, StatusOutForDelivery, true},
		{StatusShipped, StatusOrderAccepted, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusShipped, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusOutForDelivery.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		StatusPending, StatusOrderAccepted, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	} {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, OrderStatus("Returned").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
