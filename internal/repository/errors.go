// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and the booking engine to distinguish between different
// failure scenarios. For example, ErrInsufficientSeats indicates that
// an inventory reservation would exceed the seats available, while
// ErrDuplicateKey signals that a unique constraint rejected an insert
// (e.g. a colliding PNR or ticket number).
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrInsufficientSeats is returned when a reserve operation asks for
// more seats than are available on the flight or fare. Handlers
// should translate this into an HTTP 400 response.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting state, such as deleting a confirmed booking or
// assigning an already-taken seat. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrDuplicateKey is returned when an insert violates a unique
// constraint. The booking engine uses it to retry identifier
// generation with a fresh candidate.
var ErrDuplicateKey = errors.New("duplicate key")

// Not-found sentinels for the individual aggregates.
var (
	ErrFlightNotFound   = errors.New("flight not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrAirportNotFound  = errors.New("airport not found")
	ErrFareNotFound     = errors.New("fare not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPromoNotFound    = errors.New("promo code not found")
)

// mysqlDuplicateEntry is the MySQL error number raised when an insert
// violates a unique index.
const mysqlDuplicateEntry = 1062

// isDuplicateEntry reports whether err is a MySQL duplicate-entry
// error. The unique indexes on bookings.pnr, tickets.ticket_number
// and seat_assignments are the authoritative uniqueness guards; the
// in-process retry loops only pick fresh candidates after one fires.
func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
