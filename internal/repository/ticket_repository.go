package repository

import (
	"context"
	"database/sql"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// TicketRepo provides data access to the tickets table. Tickets are
// issued exactly once per booking, one per passenger, inside the
// confirmation transaction.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateTx inserts one ticket within the provided transaction. The
// unique index on ticket_number is the authoritative uniqueness
// guard; a collision surfaces as ErrDuplicateKey so the caller can
// retry with a fresh candidate number.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	const q = `INSERT INTO tickets (ticket_number, booking_id, passenger_id, fare_cents, tax_cents, fee_cents, fare_class, issue_date, expiry_date, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		t.TicketNumber, t.BookingID, t.PassengerID,
		t.FareCents, t.TaxCents, t.FeeCents, t.Class,
		t.IssueDate.UTC().Format("2006-01-02"), t.ExpiryDate.UTC().Format("2006-01-02"),
		t.IsActive,
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
	t.ID = uint64(id)
	return nil
}

// CountByBookingTx returns the number of tickets already issued for
// a booking, read inside the caller's transaction. Confirmation uses
// it to make ticket issuance idempotent-with-error: a second
// issuance attempt is rejected instead of minting duplicates.
func (r *TicketRepo) CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tickets WHERE booking_id = ?`, bookingID,
	).Scan(&n)
	return n, err
}

// ListByBooking returns all tickets of a booking ordered by
// passenger.
func (r *TicketRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Ticket, error) {
	const q = `SELECT id, ticket_number, booking_id, passenger_id, fare_cents, tax_cents, fee_cents, fare_class, issue_date, expiry_date, is_active, created_at
	           FROM tickets WHERE booking_id = ? ORDER BY passenger_id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(
			&t.ID, &t.TicketNumber, &t.BookingID, &t.PassengerID,
			&t.FareCents, &t.TaxCents, &t.FeeCents, &t.Class,
			&t.IssueDate, &t.ExpiryDate, &t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
