package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// RouteRepo provides read access to the routes table. The search
// engine matches the cross-product of expanded origin and
// destination airport sets against active routes through this
// repository.
type RouteRepo struct {
	db *sql.DB
}

// NewRouteRepo returns a new RouteRepo bound to the given database.
func NewRouteRepo(db *sql.DB) *RouteRepo { return &RouteRepo{db: db} }

// FindActiveByAirports returns all active routes whose origin is in
// originIDs and whose destination is in destIDs. An empty input set
// on either side yields an empty result, not an error.
func (r *RouteRepo) FindActiveByAirports(ctx context.Context, originIDs, destIDs []uint64) ([]model.Route, error) {
	if len(originIDs) == 0 || len(destIDs) == 0 {
		return []model.Route{}, nil
	}
	q := `SELECT id, origin_airport_id, destination_airport_id, distance_km, duration_min, is_active, created_at, updated_at
	      FROM routes
	      WHERE is_active = 1
	        AND origin_airport_id IN (` + placeholders(len(originIDs)) + `)
	        AND destination_airport_id IN (` + placeholders(len(destIDs)) + `)`
	args := make([]any, 0, len(originIDs)+len(destIDs))
	for _, id := range originIDs {
		args = append(args, id)
	}
	for _, id := range destIDs {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	routes := make([]model.Route, 0)
	for rows.Next() {
		var rt model.Route
		if err := rows.Scan(
			&rt.ID, &rt.OriginID, &rt.DestinationID, &rt.DistanceKm,
			&rt.DurationMin, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt,
		); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}

// placeholders builds a "?, ?, ?" list of n placeholders for IN
// clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
