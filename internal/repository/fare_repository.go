package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// FareRepo manages persistence for fares. A fare prices one fare
// class on one flight and carries class-scoped seat counters that
// are mutated only through the InventoryRepo.
type FareRepo struct {
	db *sql.DB
}

// NewFareRepo constructs a FareRepo with the given DB handle.
func NewFareRepo(db *sql.DB) *FareRepo {
	return &FareRepo{db: db}
}

const fareColumns = `id, flight_id, fare_class, base_fare_cents, adjustment_cents,
	available_seats, booked_seats, currency, valid_from, valid_to,
	is_active, created_at, updated_at`

func scanFare(row interface{ Scan(...any) error }) (*model.Fare, error) {
	var f model.Fare
	if err := row.Scan(
		&f.ID, &f.FlightID, &f.Class, &f.BaseFareCents, &f.AdjustmentCents,
		&f.AvailableSeats, &f.BookedSeats, &f.Currency, &f.ValidFrom, &f.ValidTo,
		&f.IsActive, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// GetActiveByFlightAndClass returns the active fare for the given
// flight and fare class. It returns ErrFareNotFound when no active
// fare exists for the class.
func (r *FareRepo) GetActiveByFlightAndClass(ctx context.Context, flightID uint64, class model.FareClass) (*model.Fare, error) {
	const q = `SELECT ` + fareColumns + ` FROM fares
	           WHERE flight_id = ? AND fare_class = ? AND is_active = 1`
	f, err := scanFare(r.db.QueryRowContext(ctx, q, flightID, class))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFareNotFound
		}
		return nil, err
	}
	return f, nil
}

// FlightIDsByPrice returns the set of flight IDs that have an active
// fare matching the optional class restriction whose effective
// per-passenger price (base fare + adjustment) falls within
// [minCents, maxCents]. Zero bounds disable the respective side.
// The search engine intersects this set with its candidate flights.
func (r *FareRepo) FlightIDsByPrice(ctx context.Context, class model.FareClass, minCents, maxCents int64) (map[uint64]struct{}, error) {
	q := `SELECT DISTINCT flight_id FROM fares
	      WHERE is_active = 1 AND GREATEST(base_fare_cents + adjustment_cents, 0) >= ?`
	args := []any{minCents}
	if maxCents > 0 {
		q += ` AND GREATEST(base_fare_cents + adjustment_cents, 0) <= ?`
		args = append(args, maxCents)
	}
	if class != "" {
		q += ` AND fare_class = ?`
		args = append(args, class)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
