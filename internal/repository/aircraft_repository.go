package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// AircraftRepo provides read access to the aircraft table. The
// availability engine reads the equipment's display fields and
// per-class seat allotments through it.
type AircraftRepo struct {
	db *sql.DB
}

// NewAircraftRepo returns a new AircraftRepo bound to the given database.
func NewAircraftRepo(db *sql.DB) *AircraftRepo { return &AircraftRepo{db: db} }

// GetByID returns the aircraft with the given ID, or
// ErrAircraftNotFound when no such row exists.
func (r *AircraftRepo) GetByID(ctx context.Context, id uint64) (*model.Aircraft, error) {
	const q = `SELECT id, model, manufacturer, registration,
	                  economy_seats, premium_seats, business_seats, first_class_seats,
	                  is_active, created_at, updated_at
	           FROM aircraft WHERE id = ?`
	var a model.Aircraft
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.Model, &a.Manufacturer, &a.Registration,
		&a.EconomySeats, &a.PremiumSeats, &a.BusinessSeats, &a.FirstClassSeats,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAircraftNotFound
		}
		return nil, err
	}
	return &a, nil
}
