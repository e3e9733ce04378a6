package search

import (
	"context"
	"time"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

// overbookingPct is the percentage of physical capacity the airline
// is willing to sell. Bookings beyond AvailableSeats but under the
// ceiling go to the waitlist instead of being rejected outright.
const overbookingPct = 110

// Stores consumed by the engine. The repository types satisfy these;
// tests substitute fakes.
type AirportStore interface {
	GetByCode(ctx context.Context, code string) (*model.Airport, error)
	ListWithCoordinates(ctx context.Context) ([]model.Airport, error)
}

type RouteStore interface {
	FindActiveByAirports(ctx context.Context, originIDs, destIDs []uint64) ([]model.Route, error)
}

type FlightStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
	Search(ctx context.Context, q repository.FlightSearchQuery) ([]repository.FlightSearchRow, int64, error)
}

type FareStore interface {
	GetActiveByFlightAndClass(ctx context.Context, flightID uint64, class model.FareClass) (*model.Fare, error)
	FlightIDsByPrice(ctx context.Context, class model.FareClass, minCents, maxCents int64) (map[uint64]struct{}, error)
}

type AircraftStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Aircraft, error)
}

// Params describes one search leg. Origin and Destination are IATA
// codes. RadiusKm, when positive, expands each endpoint to every
// airport within that great-circle distance of it. All remaining
// filters are conjunctive; zero values disable them.
type Params struct {
	Origin      string
	Destination string
	RadiusKm    float64

	// Date is the departure day; flights are matched on the whole
	// calendar day in UTC.
	Date time.Time

	Passengers uint32
	Class      model.FareClass

	MinPriceCents int64
	MaxPriceCents int64

	DepartureAfter  string // time of day "15:04:05"
	DepartureBefore string
	ArrivalAfter    string
	ArrivalBefore   string
	MaxDurationMin  uint32
	AircraftModel   string
	Manufacturer    string
	Statuses        []model.FlightStatus

	SortBy   string // departure_time | arrival_time | duration | price
	SortDesc bool
	Page     int
	PageSize int
}

// Result is one page of matching flights. HasMore reports whether
// pages beyond this one exist.
type Result struct {
	Flights []repository.FlightSearchRow `json:"flights"`
	Total   int64                        `json:"total"`
	Page    int                          `json:"page"`
	Limit   int                          `json:"limit"`
	HasMore bool                         `json:"has_more"`
}

// RoundTrip pairs the outbound and return legs of a round-trip
// search.
type RoundTrip struct {
	Outbound *Result `json:"outbound"`
	Return   *Result `json:"return"`
}

// Availability reports whether a party can be seated on a flight.
// When the request exceeds the free seats but stays under the
// overbooking ceiling, Waitlist is set instead of Bookable.
type Availability struct {
	FlightID           uint64          `json:"flight_id"`
	Class              model.FareClass `json:"fare_class,omitempty"`
	RequestedSeats     uint32          `json:"requested_seats"`
	AvailableSeats     uint32          `json:"available_seats"`
	TotalSeats         uint32          `json:"total_seats"`
	OverbookingCeiling uint32          `json:"overbooking_ceiling"`
	Bookable           bool            `json:"bookable"`
	Waitlist           bool            `json:"waitlist_available"`
	AircraftModel      string          `json:"aircraft_model"`
	Manufacturer       string          `json:"manufacturer"`
	FarePerSeatCents   int64           `json:"fare_per_seat_cents,omitempty"`
}

// Engine answers search and availability queries. It only reads;
// inventory mutation lives in the booking engine.
type Engine struct {
	airports AirportStore
	routes   RouteStore
	flights  FlightStore
	fares    FareStore
	aircraft AircraftStore
}

// NewEngine constructs an Engine over the given stores.
func NewEngine(airports AirportStore, routes RouteStore, flights FlightStore, fares FareStore, aircraft AircraftStore) *Engine {
	return &Engine{airports: airports, routes: routes, flights: flights, fares: fares, aircraft: aircraft}
}

// SearchOneWay runs a single-leg search: resolve both endpoints,
// optionally expand them to nearby airports, match active routes
// over the expanded cross-product and page through the matching
// flights. It returns repository.ErrAirportNotFound when either IATA
// code is unknown.
func (e *Engine) SearchOneWay(ctx context.Context, p Params) (*Result, error) {
	originIDs, err := e.resolveAirports(ctx, p.Origin, p.RadiusKm)
	if err != nil {
		return nil, err
	}
	destIDs, err := e.resolveAirports(ctx, p.Destination, p.RadiusKm)
	if err != nil {
		return nil, err
	}
	return e.searchRoutes(ctx, originIDs, destIDs, p)
}

// SearchRoundTrip runs the outbound leg and the reversed return leg
// as two independent one-way searches sharing the same filters.
func (e *Engine) SearchRoundTrip(ctx context.Context, outbound Params, returnDate time.Time) (*RoundTrip, error) {
	out, err := e.SearchOneWay(ctx, outbound)
	if err != nil {
		return nil, err
	}
	ret := outbound
	ret.Origin, ret.Destination = outbound.Destination, outbound.Origin
	ret.Date = returnDate
	back, err := e.SearchOneWay(ctx, ret)
	if err != nil {
		return nil, err
	}
	return &RoundTrip{Outbound: out, Return: back}, nil
}

// SearchMultiCity runs each segment as an independent one-way search
// and returns the per-segment results in order. A failing segment
// fails the whole search.
func (e *Engine) SearchMultiCity(ctx context.Context, segments []Params) ([]*Result, error) {
	results := make([]*Result, 0, len(segments))
	for _, seg := range segments {
		r, err := e.SearchOneWay(ctx, seg)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// CheckAvailability reports seating for a party on one flight. With a
// fare class it checks the class allotment; without one it checks the
// flight-level counters. The overbooking ceiling is always derived
// from the flight's physical capacity.
func (e *Engine) CheckAvailability(ctx context.Context, flightID uint64, passengers uint32, class model.FareClass) (*Availability, error) {
	flight, err := e.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	ac, err := e.aircraft.GetByID(ctx, flight.AircraftID)
	if err != nil {
		return nil, err
	}

	av := &Availability{
		FlightID:           flightID,
		Class:              class,
		RequestedSeats:     passengers,
		AvailableSeats:     flight.AvailableSeats,
		TotalSeats:         flight.TotalSeats,
		OverbookingCeiling: flight.TotalSeats * overbookingPct / 100,
		AircraftModel:      ac.Model,
		Manufacturer:       ac.Manufacturer,
	}
	if class != "" {
		fare, err := e.fares.GetActiveByFlightAndClass(ctx, flightID, class)
		if err != nil {
			return nil, err
		}
		av.AvailableSeats = fare.AvailableSeats
		av.TotalSeats = ac.SeatsForClass(class)
		av.FarePerSeatCents = fare.TotalFareCents()
	}

	av.Bookable = passengers > 0 && passengers <= av.AvailableSeats
	if !av.Bookable && passengers > 0 {
		// Sold out at the requested level; offer the waitlist while
		// total sales stay under the ceiling.
		av.Waitlist = flight.BookedSeats+passengers <= av.OverbookingCeiling
	}
	return av, nil
}

// resolveAirports maps an IATA code to the airport ID set to search:
// just the airport itself, or every airport within radiusKm of it.
// Airports without coordinates cannot be expanded and resolve to
// themselves.
func (e *Engine) resolveAirports(ctx context.Context, code string, radiusKm float64) ([]uint64, error) {
	a, err := e.airports.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if radiusKm <= 0 || a.Latitude == nil || a.Longitude == nil {
		return []uint64{a.ID}, nil
	}
	candidates, err := e.airports.ListWithCoordinates(ctx)
	if err != nil {
		return nil, err
	}
	nearby := NearbyAirports(*a.Latitude, *a.Longitude, candidates, radiusKm)
	ids := make([]uint64, 0, len(nearby)+1)
	seen := map[uint64]struct{}{a.ID: {}}
	ids = append(ids, a.ID)
	for _, n := range nearby {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		ids = append(ids, n.ID)
	}
	return ids, nil
}

// searchRoutes matches routes over the resolved airport sets and
// executes the flight query.
func (e *Engine) searchRoutes(ctx context.Context, originIDs, destIDs []uint64, p Params) (*Result, error) {
	routes, err := e.routes.FindActiveByAirports(ctx, originIDs, destIDs)
	if err != nil {
		return nil, err
	}

	page := p.Page
	if page <= 0 {
		page = 1
	}
	limit := p.PageSize
	if limit <= 0 {
		limit = 20
	}
	res := &Result{Flights: []repository.FlightSearchRow{}, Page: page, Limit: limit}
	if len(routes) == 0 {
		return res, nil
	}

	routeIDs := make([]uint64, len(routes))
	for i, rt := range routes {
		routeIDs[i] = rt.ID
	}

	q := repository.FlightSearchQuery{
		RouteIDs:          routeIDs,
		MinAvailableSeats: p.Passengers,
		Statuses:          p.Statuses,
		DepartureAfter:    p.DepartureAfter,
		DepartureBefore:   p.DepartureBefore,
		ArrivalAfter:      p.ArrivalAfter,
		ArrivalBefore:     p.ArrivalBefore,
		MaxDurationMin:    p.MaxDurationMin,
		AircraftModel:     p.AircraftModel,
		Manufacturer:      p.Manufacturer,
		SortBy:            p.SortBy,
		SortDesc:          p.SortDesc,
		Page:              page,
		PageSize:          limit,
	}
	if !p.Date.IsZero() {
		day := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
		q.DateFrom = day
		q.DateTo = day.Add(24 * time.Hour)
	}
	if p.MinPriceCents > 0 || p.MaxPriceCents > 0 {
		ids, err := e.fares.FlightIDsByPrice(ctx, p.Class, p.MinPriceCents, p.MaxPriceCents)
		if err != nil {
			return nil, err
		}
		q.FlightIDs = ids
	}

	rows, total, err := e.flights.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	res.Flights = rows
	res.Total = total
	res.HasMore = total > int64(page)*int64(limit)
	return res, nil
}
