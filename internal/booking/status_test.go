package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusCheckedIn, StatusCancelled, true},

		// CANCELLED is terminal and nothing re-enters PENDING.
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCheckedIn, false},
		{StatusCheckedIn, StatusConfirmed, false},
		{StatusCheckedIn, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
		// Self-transitions are not in the table.
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.allowed, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("EXPIRED"))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestTransitionErrorMessage(t *testing.T) {
	err := &TransitionError{From: StatusCancelled, To: StatusConfirmed}
	assert.Equal(t, "cannot transition booking from CANCELLED to CONFIRMED", err.Error())
}
