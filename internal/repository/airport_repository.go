package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// AirportRepo provides read access to the airports table. Airports
// are reference data: the search engine resolves IATA codes through
// this repository and loads coordinate-bearing airports for
// nearby-airport expansion.
type AirportRepo struct {
	db *sql.DB
}

// NewAirportRepo returns a new AirportRepo bound to the given database.
func NewAirportRepo(db *sql.DB) *AirportRepo { return &AirportRepo{db: db} }

const airportColumns = `id, iata_code, name, city, country, latitude, longitude, timezone, is_active, created_at, updated_at`

func scanAirport(row interface{ Scan(...any) error }) (*model.Airport, error) {
	var a model.Airport
	var lat, lng sql.NullFloat64
	if err := row.Scan(
		&a.ID, &a.IATACode, &a.Name, &a.City, &a.Country,
		&lat, &lng, &a.Timezone, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if lat.Valid {
		v := lat.Float64
		a.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		a.Longitude = &v
	}
	return &a, nil
}

// GetByCode returns the active airport with the given IATA code.
// The lookup is case-insensitive; codes are stored upper-case. It
// returns ErrAirportNotFound when no matching airport exists.
func (r *AirportRepo) GetByCode(ctx context.Context, code string) (*model.Airport, error) {
	const q = `SELECT ` + airportColumns + ` FROM airports WHERE iata_code = ? AND is_active = 1`
	a, err := scanAirport(r.db.QueryRowContext(ctx, q, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAirportNotFound
		}
		return nil, err
	}
	return a, nil
}

// ListWithCoordinates returns every active airport that has both a
// latitude and a longitude. The search engine measures great-circle
// distance against this set when expanding an origin or destination
// to nearby airports.
func (r *AirportRepo) ListWithCoordinates(ctx context.Context) ([]model.Airport, error) {
	const q = `SELECT ` + airportColumns + `
	           FROM airports
	           WHERE is_active = 1 AND latitude IS NOT NULL AND longitude IS NOT NULL`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Airport
	for rows.Next() {
		a, err := scanAirport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
