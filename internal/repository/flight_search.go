package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// FlightSearchQuery defines filters & pagination for searching flights.
// RouteIDs is the resolved route set from the availability engine; an
// empty set yields an empty result. FlightIDs, when non-nil, is the
// price-filter intersection set computed against the fares table.
type FlightSearchQuery struct {
	RouteIDs          []uint64
	DateFrom          time.Time
	DateTo            time.Time
	MinAvailableSeats uint32
	Statuses          []model.FlightStatus // empty => exclude CANCELLED
	DepartureAfter    string               // time of day "15:04:05"
	DepartureBefore   string
	ArrivalAfter      string
	ArrivalBefore     string
	MaxDurationMin    uint32
	AircraftModel     string // substring match
	Manufacturer      string // substring match
	FlightIDs         map[uint64]struct{}
	SortBy            string // departure_time | arrival_time | duration | price
	SortDesc          bool
	Page              int
	PageSize          int
}

// FlightSearchRow is one flight in a search result, denormalised
// with route, airport and aircraft display fields.
type FlightSearchRow struct {
	ID                 uint64    `json:"id"`
	FlightNumber       string    `json:"flight_number"`
	RouteID            uint64    `json:"route_id"`
	OriginCode         string    `json:"origin"`
	DestinationCode    string    `json:"destination"`
	ScheduledDeparture time.Time `json:"scheduled_departure"`
	ScheduledArrival   time.Time `json:"scheduled_arrival"`
	Status             string    `json:"status"`
	AvailableSeats     uint32    `json:"available_seats"`
	TotalSeats         uint32    `json:"total_seats"`
	AircraftModel      string    `json:"aircraft_model"`
	Manufacturer       string    `json:"manufacturer"`
	DurationMin        uint32    `json:"duration_min"`
}

// Search executes the flight search. It returns the page of matching
// rows plus the total match count for pagination. Filtering is
// conjunctive across every populated field.
//
// Sorting by price is not joined against fares here; it degrades to
// departure-time order (the availability engine documents this
// limitation to its callers).
func (r *FlightRepo) Search(ctx context.Context, q FlightSearchQuery) ([]FlightSearchRow, int64, error) {
	if len(q.RouteIDs) == 0 {
		return []FlightSearchRow{}, 0, nil
	}

	where := []string{"f.route_id IN (" + placeholders(len(q.RouteIDs)) + ")"}
	args := []any{}
	for _, id := range q.RouteIDs {
		args = append(args, id)
	}

	if !q.DateFrom.IsZero() {
		where = append(where, "f.scheduled_departure >= ?")
		args = append(args, q.DateFrom.UTC().Format("2006-01-02 15:04:05"))
	}
	if !q.DateTo.IsZero() {
		where = append(where, "f.scheduled_departure < ?")
		args = append(args, q.DateTo.UTC().Format("2006-01-02 15:04:05"))
	}
	if q.MinAvailableSeats > 0 {
		where = append(where, "f.available_seats >= ?")
		args = append(args, q.MinAvailableSeats)
	}
	if len(q.Statuses) > 0 {
		where = append(where, "f.status IN ("+placeholders(len(q.Statuses))+")")
		for _, s := range q.Statuses {
			args = append(args, string(s))
		}
	} else {
		where = append(where, "f.status <> ?")
		args = append(args, string(model.FlightCancelled))
	}
	if q.DepartureAfter != "" {
		where = append(where, "TIME(f.scheduled_departure) >= ?")
		args = append(args, q.DepartureAfter)
	}
	if q.DepartureBefore != "" {
		where = append(where, "TIME(f.scheduled_departure) <= ?")
		args = append(args, q.DepartureBefore)
	}
	if q.ArrivalAfter != "" {
		where = append(where, "TIME(f.scheduled_arrival) >= ?")
		args = append(args, q.ArrivalAfter)
	}
	if q.ArrivalBefore != "" {
		where = append(where, "TIME(f.scheduled_arrival) <= ?")
		args = append(args, q.ArrivalBefore)
	}
	if q.MaxDurationMin > 0 {
		where = append(where, "TIMESTAMPDIFF(MINUTE, f.scheduled_departure, f.scheduled_arrival) <= ?")
		args = append(args, q.MaxDurationMin)
	}
	if q.AircraftModel != "" {
		where = append(where, "LOWER(ac.model) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.AircraftModel)+"%")
	}
	if q.Manufacturer != "" {
		where = append(where, "LOWER(ac.manufacturer) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Manufacturer)+"%")
	}
	if q.FlightIDs != nil {
		if len(q.FlightIDs) == 0 {
			return []FlightSearchRow{}, 0, nil
		}
		ids := make([]uint64, 0, len(q.FlightIDs))
		for id := range q.FlightIDs {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		where = append(where, "f.id IN ("+placeholders(len(ids))+")")
		for _, id := range ids {
			args = append(args, id)
		}
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*)
		FROM flights f
		JOIN routes r    ON r.id = f.route_id
		JOIN aircraft ac ON ac.id = f.aircraft_id
		WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	order := "f.scheduled_departure"
	switch q.SortBy {
	case "arrival_time":
		order = "f.scheduled_arrival"
	case "duration":
		order = "TIMESTAMPDIFF(MINUTE, f.scheduled_departure, f.scheduled_arrival)"
	case "departure_time", "price", "":
		// price sort degrades to departure time, see above
	}
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	dataSQL := `SELECT
			f.id,
			f.flight_number,
			f.route_id,
			orig.iata_code AS origin,
			dest.iata_code AS destination,
			f.scheduled_departure,
			f.scheduled_arrival,
			f.status,
			f.available_seats,
			f.total_seats,
			ac.model,
			ac.manufacturer,
			TIMESTAMPDIFF(MINUTE, f.scheduled_departure, f.scheduled_arrival) AS duration_min
		FROM flights f
		JOIN routes r     ON r.id = f.route_id
		JOIN airports orig ON orig.id = r.origin_airport_id
		JOIN airports dest ON dest.id = r.destination_airport_id
		JOIN aircraft ac  ON ac.id = f.aircraft_id
		WHERE ` + cond + `
		ORDER BY ` + order + ` ` + dir + `
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]FlightSearchRow, 0, limit)
	for rows.Next() {
		var d FlightSearchRow
		if err := rows.Scan(
			&d.ID,
			&d.FlightNumber,
			&d.RouteID,
			&d.OriginCode,
			&d.DestinationCode,
			&d.ScheduledDeparture,
			&d.ScheduledArrival,
			&d.Status,
			&d.AvailableSeats,
			&d.TotalSeats,
			&d.AircraftModel,
			&d.Manufacturer,
			&d.DurationMin,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
