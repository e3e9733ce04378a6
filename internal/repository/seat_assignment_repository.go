package repository

import (
	"context"
	"database/sql"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// SeatAssignmentRepo provides data access to the seat_assignments
// table. Two unique indexes back the write-time invariants: one on
// (booking_id, seat_number) and one on (booking_id, passenger_id).
type SeatAssignmentRepo struct {
	db *sql.DB
}

// NewSeatAssignmentRepo returns a new SeatAssignmentRepo bound to the given database.
func NewSeatAssignmentRepo(db *sql.DB) *SeatAssignmentRepo { return &SeatAssignmentRepo{db: db} }

// CreateTx inserts a seat assignment within the provided
// transaction. A violation of either uniqueness invariant surfaces
// as ErrDuplicateKey; callers translate it into the appropriate
// Conflict response after their own pre-checks have narrowed the
// cause.
func (r *SeatAssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.SeatAssignment) error {
	const q = `INSERT INTO seat_assignments (booking_id, passenger_id, seat_number, seat_type, fare_class, price_cents, is_preferred)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		a.BookingID, a.PassengerID, a.SeatNumber, a.SeatType, a.Class, a.PriceCents, a.IsPreferred,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateKey
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// SeatTakenTx reports whether the seat number is already assigned
// within the booking.
func (r *SeatAssignmentRepo) SeatTakenTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatNumber string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM seat_assignments WHERE booking_id = ? AND seat_number = ?`,
		bookingID, seatNumber,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PassengerHasSeatTx reports whether the passenger already holds a
// seat within the booking.
func (r *SeatAssignmentRepo) PassengerHasSeatTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM seat_assignments WHERE booking_id = ? AND passenger_id = ?`,
		bookingID, passengerID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByBooking returns all seat assignments of a booking ordered by
// seat number for deterministic output.
func (r *SeatAssignmentRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.SeatAssignment, error) {
	const q = `SELECT id, booking_id, passenger_id, seat_number, seat_type, fare_class, price_cents, is_preferred, created_at
	           FROM seat_assignments WHERE booking_id = ? ORDER BY seat_number ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SeatAssignment, 0)
	for rows.Next() {
		var a model.SeatAssignment
		if err := rows.Scan(
			&a.ID, &a.BookingID, &a.PassengerID, &a.SeatNumber,
			&a.SeatType, &a.Class, &a.PriceCents, &a.IsPreferred, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
