package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

type fakeStores struct {
	airports map[string]*model.Airport
	all      []model.Airport
	routes   []model.Route
	flight   *model.Flight
	fare     *model.Fare

	rows  []repository.FlightSearchRow
	total int64

	lastQuery repository.FlightSearchQuery
}

// fakeAircraft keeps the aircraft lookup apart from fakeStores because
// both stores name their lookup GetByID.
type fakeAircraft struct {
	aircraft *model.Aircraft
}

func (f *fakeAircraft) GetByID(ctx context.Context, id uint64) (*model.Aircraft, error) {
	if f.aircraft == nil || f.aircraft.ID != id {
		return nil, repository.ErrAircraftNotFound
	}
	return f.aircraft, nil
}

func (f *fakeStores) GetByCode(ctx context.Context, code string) (*model.Airport, error) {
	a, ok := f.airports[code]
	if !ok {
		return nil, repository.ErrAirportNotFound
	}
	return a, nil
}

func (f *fakeStores) ListWithCoordinates(ctx context.Context) ([]model.Airport, error) {
	return f.all, nil
}

func (f *fakeStores) FindActiveByAirports(ctx context.Context, originIDs, destIDs []uint64) ([]model.Route, error) {
	in := func(ids []uint64, id uint64) bool {
		for _, v := range ids {
			if v == id {
				return true
			}
		}
		return false
	}
	var out []model.Route
	for _, rt := range f.routes {
		if in(originIDs, rt.OriginID) && in(destIDs, rt.DestinationID) {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (f *fakeStores) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, repository.ErrFlightNotFound
	}
	return f.flight, nil
}

func (f *fakeStores) Search(ctx context.Context, q repository.FlightSearchQuery) ([]repository.FlightSearchRow, int64, error) {
	f.lastQuery = q
	return f.rows, f.total, nil
}

func (f *fakeStores) GetActiveByFlightAndClass(ctx context.Context, flightID uint64, class model.FareClass) (*model.Fare, error) {
	if f.fare == nil || f.fare.FlightID != flightID || f.fare.Class != class {
		return nil, repository.ErrFareNotFound
	}
	return f.fare, nil
}

func (f *fakeStores) FlightIDsByPrice(ctx context.Context, class model.FareClass, minCents, maxCents int64) (map[uint64]struct{}, error) {
	return map[uint64]struct{}{42: {}}, nil
}

func newTestEngine(f *fakeStores) *Engine {
	ac := &fakeAircraft{aircraft: &model.Aircraft{ID: 9, Model: "A320neo", Manufacturer: "Airbus", EconomySeats: 88, BusinessSeats: 12}}
	return NewEngine(f, f, f, f, ac)
}

func searchFixture() *fakeStores {
	jfkLat, jfkLon := coords(40.6413, -73.7781)
	// Newark is ~33 km from JFK; Boston is ~300 km away.
	ewrLat, ewrLon := coords(40.6895, -74.1745)
	bosLat, bosLon := coords(42.3656, -71.0096)
	laxLat, laxLon := coords(33.9416, -118.4085)

	jfk := model.Airport{ID: 1, IATACode: "JFK", Latitude: jfkLat, Longitude: jfkLon, IsActive: true}
	ewr := model.Airport{ID: 2, IATACode: "EWR", Latitude: ewrLat, Longitude: ewrLon, IsActive: true}
	bos := model.Airport{ID: 3, IATACode: "BOS", Latitude: bosLat, Longitude: bosLon, IsActive: true}
	lax := model.Airport{ID: 4, IATACode: "LAX", Latitude: laxLat, Longitude: laxLon, IsActive: true}

	return &fakeStores{
		airports: map[string]*model.Airport{"JFK": &jfk, "EWR": &ewr, "BOS": &bos, "LAX": &lax},
		all:      []model.Airport{jfk, ewr, bos, lax},
		routes: []model.Route{
			{ID: 100, OriginID: 1, DestinationID: 4, IsActive: true}, // JFK -> LAX
			{ID: 101, OriginID: 2, DestinationID: 4, IsActive: true}, // EWR -> LAX
			{ID: 102, OriginID: 3, DestinationID: 4, IsActive: true}, // BOS -> LAX
			{ID: 103, OriginID: 4, DestinationID: 1, IsActive: true}, // LAX -> JFK
		},
	}
}

func TestSearchOneWayUnknownAirport(t *testing.T) {
	e := newTestEngine(searchFixture())
	_, err := e.SearchOneWay(context.Background(), Params{Origin: "XXX", Destination: "LAX"})
	assert.ErrorIs(t, err, repository.ErrAirportNotFound)
}

func TestSearchOneWayExactAirportsOnly(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	_, err := e.SearchOneWay(context.Background(), Params{Origin: "JFK", Destination: "LAX"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{100}, f.lastQuery.RouteIDs)
}

func TestSearchOneWayNearbyExpansion(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	// A 50 km radius around JFK pulls in Newark but not Boston.
	_, err := e.SearchOneWay(context.Background(), Params{Origin: "JFK", Destination: "LAX", RadiusKm: 50})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100, 101}, f.lastQuery.RouteIDs)
}

func TestSearchOneWayPassesFiltersThrough(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	date := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	_, err := e.SearchOneWay(context.Background(), Params{
		Origin:        "JFK",
		Destination:   "LAX",
		Date:          date,
		Passengers:    3,
		MinPriceCents: 5000,
	})
	require.NoError(t, err)
	q := f.lastQuery
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), q.DateFrom)
	assert.Equal(t, time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC), q.DateTo)
	assert.Equal(t, uint32(3), q.MinAvailableSeats)
	// The price filter resolves to a flight-ID intersection set.
	assert.Equal(t, map[uint64]struct{}{42: {}}, q.FlightIDs)
}

func TestSearchOneWayPagination(t *testing.T) {
	f := searchFixture()
	f.rows = make([]repository.FlightSearchRow, 10)
	f.total = 45
	e := newTestEngine(f)

	res, err := e.SearchOneWay(context.Background(), Params{Origin: "JFK", Destination: "LAX", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(45), res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 10, res.Limit)
	assert.True(t, res.HasMore) // 45 > 2*10

	f.total = 20
	res, err = e.SearchOneWay(context.Background(), Params{Origin: "JFK", Destination: "LAX", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.False(t, res.HasMore) // 20 == 2*10, nothing beyond this page
}

func TestSearchOneWayNoRoutes(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	res, err := e.SearchOneWay(context.Background(), Params{Origin: "LAX", Destination: "EWR"})
	require.NoError(t, err)
	assert.Empty(t, res.Flights)
	assert.Zero(t, res.Total)
	assert.False(t, res.HasMore)
}

func TestSearchRoundTripReversesLeg(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	outDate := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	retDate := time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC)

	rt, err := e.SearchRoundTrip(context.Background(), Params{Origin: "JFK", Destination: "LAX", Date: outDate}, retDate)
	require.NoError(t, err)
	require.NotNil(t, rt.Outbound)
	require.NotNil(t, rt.Return)
	// The last executed query is the return leg: LAX -> JFK on the
	// return date.
	assert.Equal(t, []uint64{103}, f.lastQuery.RouteIDs)
	assert.Equal(t, retDate, f.lastQuery.DateFrom)
}

func TestSearchMultiCity(t *testing.T) {
	f := searchFixture()
	e := newTestEngine(f)
	results, err := e.SearchMultiCity(context.Background(), []Params{
		{Origin: "JFK", Destination: "LAX"},
		{Origin: "LAX", Destination: "JFK"},
	})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCheckAvailability(t *testing.T) {
	f := searchFixture()
	f.flight = &model.Flight{ID: 7, AircraftID: 9, TotalSeats: 100, BookedSeats: 98, AvailableSeats: 2}
	e := newTestEngine(f)

	// Fits in the free seats.
	av, err := e.CheckAvailability(context.Background(), 7, 2, "")
	require.NoError(t, err)
	assert.True(t, av.Bookable)
	assert.False(t, av.Waitlist)
	assert.Equal(t, uint32(110), av.OverbookingCeiling)

	// Over the free seats but under the 110% ceiling: waitlist.
	av, err = e.CheckAvailability(context.Background(), 7, 5, "")
	require.NoError(t, err)
	assert.False(t, av.Bookable)
	assert.True(t, av.Waitlist)

	// Over the ceiling: neither.
	av, err = e.CheckAvailability(context.Background(), 7, 20, "")
	require.NoError(t, err)
	assert.False(t, av.Bookable)
	assert.False(t, av.Waitlist)
}

func TestCheckAvailabilityFareClass(t *testing.T) {
	f := searchFixture()
	f.flight = &model.Flight{ID: 7, AircraftID: 9, TotalSeats: 100, BookedSeats: 40, AvailableSeats: 60}
	f.fare = &model.Fare{FlightID: 7, Class: model.FareClassBusiness, BaseFareCents: 45000, AvailableSeats: 1, BookedSeats: 11}
	e := newTestEngine(f)

	// The class allotment, not the flight counters, decides.
	av, err := e.CheckAvailability(context.Background(), 7, 2, model.FareClassBusiness)
	require.NoError(t, err)
	assert.False(t, av.Bookable)
	assert.Equal(t, uint32(1), av.AvailableSeats)
	assert.Equal(t, uint32(12), av.TotalSeats)
	assert.Equal(t, int64(45000), av.FarePerSeatCents)
	assert.True(t, av.Waitlist)

	_, err = e.CheckAvailability(context.Background(), 7, 1, model.FareClassFirst)
	assert.ErrorIs(t, err, repository.ErrFareNotFound)
}
