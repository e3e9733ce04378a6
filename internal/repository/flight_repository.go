package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// FlightRepo manages persistence for flights. Seat counters on a
// flight row are only ever mutated through the InventoryRepo; this
// repository is read-only.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo constructs a FlightRepo with the given DB handle.
func NewFlightRepo(db *sql.DB) *FlightRepo {
	return &FlightRepo{db: db}
}

const flightColumns = `id, flight_number, route_id, aircraft_id,
	scheduled_departure, scheduled_arrival, actual_departure, actual_arrival,
	status, total_seats, booked_seats, available_seats, created_at, updated_at`

func scanFlight(row interface{ Scan(...any) error }) (*model.Flight, error) {
	var f model.Flight
	var actualDep, actualArr sql.NullTime
	if err := row.Scan(
		&f.ID, &f.FlightNumber, &f.RouteID, &f.AircraftID,
		&f.ScheduledDeparture, &f.ScheduledArrival, &actualDep, &actualArr,
		&f.Status, &f.TotalSeats, &f.BookedSeats, &f.AvailableSeats,
		&f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if actualDep.Valid {
		t := actualDep.Time
		f.ActualDeparture = &t
	}
	if actualArr.Valid {
		t := actualArr.Time
		f.ActualArrival = &t
	}
	return &f, nil
}

// GetByID retrieves a flight by its ID. It returns ErrFlightNotFound
// if there is no matching row.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	const q = `SELECT ` + flightColumns + ` FROM flights WHERE id = ?`
	f, err := scanFlight(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}
