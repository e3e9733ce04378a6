// Package booking implements the reservation lifecycle: creation
// with PNR minting and seat reservation, the status state machine,
// ticket issuance, seat assignment and deletion. Every mutating
// operation runs inside a single database transaction.
package booking

import "fmt"

// Booking lifecycle statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
	StatusCheckedIn = "CHECKED_IN"
)

// transitions is the explicit state machine: the set of allowed
// (from, to) pairs. Any live booking can be cancelled or checked in;
// nothing re-enters PENDING and CANCELLED is terminal. Everything
// absent is rejected, including self-transitions.
var transitions = map[string]map[string]struct{}{
	StatusPending: {
		StatusConfirmed: {},
		StatusCancelled: {},
		StatusCheckedIn: {},
	},
	StatusConfirmed: {
		StatusCancelled: {},
		StatusCheckedIn: {},
	},
	StatusCheckedIn: {
		StatusCancelled: {},
	},
}

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	_, ok := transitions[from][to]
	return ok
}

// TransitionError reports a rejected status change.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
