package repository

import (
	"context"
	"database/sql"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// PassengerRepo provides data access to the passengers table.
// Passengers are created together with their booking and keep an
// immutable reference to it.
type PassengerRepo struct {
	db *sql.DB
}

// NewPassengerRepo returns a new PassengerRepo bound to the given database.
func NewPassengerRepo(db *sql.DB) *PassengerRepo { return &PassengerRepo{db: db} }

// CreateBulkTx inserts all passengers of a booking in a single
// statement within the provided transaction. The generated IDs are
// not populated on the inputs; callers that need them should reload
// via ListByBookingTx. Passing an empty slice has no effect and
// returns nil.
func (r *PassengerRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, passengers []model.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}
	query := `INSERT INTO passengers (booking_id, first_name, last_name, date_of_birth, nationality, passport_number, passport_expiry) VALUES `
	args := make([]any, 0, len(passengers)*7)
	for i, p := range passengers {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?)"
		var dob, passNo, passExp any
		if p.DateOfBirth != nil {
			dob = p.DateOfBirth.UTC().Format("2006-01-02")
		}
		if p.PassportNumber != nil {
			passNo = *p.PassportNumber
		}
		if p.PassportExpiry != nil {
			passExp = p.PassportExpiry.UTC().Format("2006-01-02")
		}
		args = append(args, p.BookingID, p.FirstName, p.LastName, dob, p.Nationality, passNo, passExp)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const passengerColumns = `id, booking_id, first_name, last_name, date_of_birth, nationality, passport_number, passport_expiry, created_at`

func scanPassenger(row interface{ Scan(...any) error }) (*model.Passenger, error) {
	var p model.Passenger
	var dob, passExp sql.NullTime
	var passNo sql.NullString
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.FirstName, &p.LastName,
		&dob, &p.Nationality, &passNo, &passExp, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if dob.Valid {
		t := dob.Time
		p.DateOfBirth = &t
	}
	if passNo.Valid {
		s := passNo.String
		p.PassportNumber = &s
	}
	if passExp.Valid {
		t := passExp.Time
		p.PassportExpiry = &t
	}
	return &p, nil
}

// ListByBooking returns all passengers of a booking ordered by ID.
func (r *PassengerRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Passenger, error) {
	const q = `SELECT ` + passengerColumns + ` FROM passengers WHERE booking_id = ? ORDER BY id ASC`
	return r.list(ctx, r.db.QueryContext, q, bookingID)
}

// ListByBookingTx is ListByBooking executed inside the caller's
// transaction, used during ticket issuance so the passenger set the
// tickets are minted for is the one the transaction sees.
func (r *PassengerRepo) ListByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]model.Passenger, error) {
	const q = `SELECT ` + passengerColumns + ` FROM passengers WHERE booking_id = ? ORDER BY id ASC`
	return r.list(ctx, tx.QueryContext, q, bookingID)
}

type queryFunc func(ctx context.Context, query string, args ...any) (*sql.Rows, error)

func (r *PassengerRepo) list(ctx context.Context, query queryFunc, q string, args ...any) ([]model.Passenger, error) {
	rows, err := query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Passenger, 0)
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistsInBookingTx reports whether the passenger belongs to the
// booking. Seat assignment uses it to reject cross-booking
// passenger references.
func (r *PassengerRepo) ExistsInBookingTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM passengers WHERE id = ? AND booking_id = ?`, passengerID, bookingID,
	).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// CountByBookingTx returns the number of passengers on a booking
// within the caller's transaction.
func (r *PassengerRepo) CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error) {
	var n uint32
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM passengers WHERE booking_id = ?`, bookingID,
	).Scan(&n)
	return n, err
}
