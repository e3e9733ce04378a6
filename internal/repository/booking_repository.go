package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// BookingRepo provides CRUD operations for bookings. A booking
// groups the passengers of a single reservation on one flight and is
// identified externally by its PNR. All timestamp fields are stored
// in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, pnr, flight_id, fare_class, user_id, status, total_amount_cents, currency,
	booking_date, confirmation_date, cancellation_date, cancellation_reason, notes,
	created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	var userID sql.NullInt64
	var confirmed, cancelled sql.NullTime
	var reason, notes sql.NullString
	if err := row.Scan(
		&b.ID, &b.PNR, &b.FlightID, &b.FareClass, &userID, &b.Status, &b.TotalAmountCents, &b.Currency,
		&b.BookingDate, &confirmed, &cancelled, &reason, &notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		v := uint64(userID.Int64)
		b.UserID = &v
	}
	if confirmed.Valid {
		t := confirmed.Time
		b.ConfirmationDate = &t
	}
	if cancelled.Valid {
		t := cancelled.Time
		b.CancellationDate = &t
	}
	if reason.Valid {
		s := reason.String
		b.CancellationReason = &s
	}
	if notes.Valid {
		s := notes.String
		b.Notes = &s
	}
	return &b, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the generated ID and DB-default fields
// on the provided struct. The unique index on pnr is the
// authoritative uniqueness guard: a colliding PNR surfaces as
// ErrDuplicateKey so the caller can retry with a fresh candidate.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (pnr, flight_id, fare_class, user_id, status, total_amount_cents, currency, booking_date, notes)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var userID any
	if b.UserID != nil {
		userID = *b.UserID
	}
	var notes any
	if b.Notes != nil {
		notes = *b.Notes
	}
	res, err := tx.ExecContext(ctx, q,
		b.PNR, b.FlightID, b.FareClass, userID, b.Status, b.TotalAmountCents, b.Currency,
		b.BookingDate.UTC().Format("2006-01-02 15:04:05"), notes,
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
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetByID returns a booking by its numeric ID, or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByPNR returns a booking by its record locator, or
// ErrBookingNotFound. PNRs are stored upper-case.
func (r *BookingRepo) GetByPNR(ctx context.Context, pnr string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE pnr = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, pnr))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetByIDForUpdateTx loads a booking inside the given transaction
// with a row lock, serialising status transitions against each
// other.
func (r *BookingRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ? FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatusTx writes a booking's status together with the
// transition's timestamp side effects. Only the fields relevant to
// the new status are touched: confirmation_date for confirmations,
// cancellation_date and cancellation_reason for cancellations.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, confirmedAt, cancelledAt *time.Time, cancellationReason *string) error {
	const q = `UPDATE bookings
	           SET status = ?,
	               confirmation_date = COALESCE(?, confirmation_date),
	               cancellation_date = COALESCE(?, cancellation_date),
	               cancellation_reason = COALESCE(?, cancellation_reason)
	           WHERE id = ?`
	var conf, canc, reason any
	if confirmedAt != nil {
		conf = confirmedAt.UTC().Format("2006-01-02 15:04:05")
	}
	if cancelledAt != nil {
		canc = cancelledAt.UTC().Format("2006-01-02 15:04:05")
	}
	if cancellationReason != nil {
		reason = *cancellationReason
	}
	_, err := tx.ExecContext(ctx, q, status, conf, canc, reason, id)
	return err
}

// DeleteTx removes a booking row. Passengers, tickets and seat
// assignments cascade via foreign keys.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}
