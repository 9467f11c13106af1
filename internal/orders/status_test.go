package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusShipped},
		{StatusConfirmed, StatusDelivered},
		{StatusConfirmed, StatusCancelled},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusCancelled, StatusDelivered},
		{StatusCancelled, StatusConfirmed},
		{StatusDelivered, StatusCancelled},
		{StatusDelivered, StatusShipped},
		{StatusShipped, StatusConfirmed},
		{StatusShipped, StatusPending},
		{StatusConfirmed, StatusPending},
	}
	for _, tc := range forbidden {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, to := range []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.False(t, CanTransition(StatusDelivered, to))
		assert.False(t, CanTransition(StatusCancelled, to))
	}
}

// Every status an order can actually be in before delivery must admit it.
func TestDeliveredReachableFromAllNonTerminalStates(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed, StatusShipped} {
		assert.True(t, CanTransition(from, StatusDelivered), "%s -> Delivered", from)
	}
}
