package repository

import (
	"context"
	"database/sql"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// InventoryRepo is the inventory ledger. It owns the seat-count
// invariants for flights (booked + available == total) and for fares
// (booked + available == class allotment) and is the only component
// allowed to mutate either pair of counters.
//
// Reserve and Release always cover both counter pairs in one
// transaction when a fare class is given: there is no path that
// mutates the flight counters without the matching fare counters.
// Two concurrent reserves against the same flight can never both
// pass the capacity check, because the flight-level decrement is a
// single conditional UPDATE guarded by available_seats >= n.
type InventoryRepo struct {
	db *sql.DB
}

// NewInventoryRepo returns an InventoryRepo bound to the given database.
func NewInventoryRepo(db *sql.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// ReserveTx atomically takes seats on a flight and, when class is
// non-empty, on the flight's active fare for that class, inside the
// caller's transaction. It returns ErrInsufficientSeats when either
// counter pair cannot cover the request, leaving all counters
// unchanged. The flight row is always adjusted first so that all
// writers take locks in the same order.
func (r *InventoryRepo) ReserveTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error {
	if seats == 0 {
		return nil
	}
	// Flight-level counters. The availability guard lives in the
	// UPDATE itself, so the check and the decrement are one atomic
	// statement.
	const fq = `UPDATE flights
	            SET available_seats = available_seats - ?, booked_seats = booked_seats + ?
	            WHERE id = ? AND available_seats >= ?`
	res, err := tx.ExecContext(ctx, fq, seats, seats, flightID, seats)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the flight does not exist or it lacks capacity.
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM flights WHERE id = ?`, flightID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrFlightNotFound
			}
			return err
		}
		return ErrInsufficientSeats
	}
	if class == "" {
		return nil
	}
	// Class-scoped counters on the active fare row.
	const cq = `UPDATE fares
	            SET available_seats = available_seats - ?, booked_seats = booked_seats + ?
	            WHERE flight_id = ? AND fare_class = ? AND is_active = 1 AND available_seats >= ?`
	res, err = tx.ExecContext(ctx, cq, seats, seats, flightID, class, seats)
	if err != nil {
		return err
	}
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM fares WHERE flight_id = ? AND fare_class = ? AND is_active = 1`,
			flightID, class,
		).Scan(&one)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrFareNotFound
			}
			return err
		}
		return ErrInsufficientSeats
	}
	return nil
}

// ReleaseTx returns seats to a flight and, when class is non-empty,
// to the flight's active fare, inside the caller's transaction.
// Counters never go negative: the release is clamped so that booked
// seats bottom out at zero and available seats are recomputed from
// the invariant (total for flights, allotment for fares), keeping
// both pairs consistent even if a caller over-releases.
func (r *InventoryRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error {
	if seats == 0 {
		return nil
	}
	// Lock the flight row, clamp in Go, write both counters back.
	var total, booked uint32
	err := tx.QueryRowContext(ctx,
		`SELECT total_seats, booked_seats FROM flights WHERE id = ? FOR UPDATE`, flightID,
	).Scan(&total, &booked)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrFlightNotFound
		}
		return err
	}
	released := seats
	if released > booked {
		released = booked
	}
	newBooked := booked - released
	if _, err := tx.ExecContext(ctx,
		`UPDATE flights SET booked_seats = ?, available_seats = ? WHERE id = ?`,
		newBooked, total-newBooked, flightID,
	); err != nil {
		return err
	}
	if class == "" {
		return nil
	}
	var avail, fareBooked uint32
	var fareID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id, available_seats, booked_seats FROM fares
		 WHERE flight_id = ? AND fare_class = ? AND is_active = 1 FOR UPDATE`,
		flightID, class,
	).Scan(&fareID, &avail, &fareBooked)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrFareNotFound
		}
		return err
	}
	allotment := avail + fareBooked
	released = seats
	if released > fareBooked {
		released = fareBooked
	}
	newFareBooked := fareBooked - released
	_, err = tx.ExecContext(ctx,
		`UPDATE fares SET booked_seats = ?, available_seats = ? WHERE id = ?`,
		newFareBooked, allotment-newFareBooked, fareID,
	)
	return err
}
