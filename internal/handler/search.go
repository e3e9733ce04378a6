package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing query and path parameters
    "time"     // parsing the departure date

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/search"
)

// SearchHandler exposes the flight search and availability endpoints.
// All endpoints are read-only and safe to cache.
type SearchHandler struct {
    Engine *search.Engine
}

// NewSearchHandler constructs a SearchHandler around the search engine.
func NewSearchHandler(e *search.Engine) *SearchHandler {
    if e == nil {
        panic("nil engine passed to NewSearchHandler")
    }
    return &SearchHandler{Engine: e}
}

// searchParams builds one search leg from query parameters.  origin and
// destination are required IATA codes; everything else is optional.
func searchParams(c echo.Context) (search.Params, bool) {
    p := search.Params{
        Origin:          c.QueryParam("origin"),
        Destination:     c.QueryParam("destination"),
        DepartureAfter:  c.QueryParam("departure_after"),
        DepartureBefore: c.QueryParam("departure_before"),
        ArrivalAfter:    c.QueryParam("arrival_after"),
        ArrivalBefore:   c.QueryParam("arrival_before"),
        AircraftModel:   c.QueryParam("aircraft_model"),
        Manufacturer:    c.QueryParam("manufacturer"),
        Class:           model.FareClass(c.QueryParam("fare_class")),
        SortBy:          c.QueryParam("sort_by"),
        SortDesc:        c.QueryParam("sort_order") == "desc",
    }
    if p.Origin == "" || p.Destination == "" {
        return p, false
    }
    if v := c.QueryParam("date"); v != "" {
        if d, err := time.Parse("2006-01-02", v); err == nil {
            p.Date = d
        }
    }
    if v := c.QueryParam("radius_km"); v != "" {
        if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
            p.RadiusKm = f
        }
    }
    if v := c.QueryParam("passengers"); v != "" {
        if n, err := strconv.ParseUint(v, 10, 32); err == nil {
            p.Passengers = uint32(n)
        }
    }
    if v := c.QueryParam("min_price_cents"); v != "" {
        if n, err := strconv.ParseInt(v, 10, 64); err == nil {
            p.MinPriceCents = n
        }
    }
    if v := c.QueryParam("max_price_cents"); v != "" {
        if n, err := strconv.ParseInt(v, 10, 64); err == nil {
            p.MaxPriceCents = n
        }
    }
    if v := c.QueryParam("max_duration_min"); v != "" {
        if n, err := strconv.ParseUint(v, 10, 32); err == nil {
            p.MaxDurationMin = uint32(n)
        }
    }
    if v := c.QueryParam("status"); v != "" {
        p.Statuses = []model.FlightStatus{model.FlightStatus(v)}
    }
    if v := c.QueryParam("page"); v != "" {
        p.Page, _ = strconv.Atoi(v)
    }
    if v := c.QueryParam("limit"); v != "" {
        p.PageSize, _ = strconv.Atoi(v)
    }
    return p, true
}

// SearchFlights handles GET /v1/search/flights.  It runs a one-way search
// between two IATA codes, optionally expanding both endpoints to nearby
// airports with radius_km.
func (h *SearchHandler) SearchFlights(c echo.Context) error {
    p, ok := searchParams(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
    }
    res, err := h.Engine.SearchOneWay(c.Request().Context(), p)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// SearchRoundTrip handles GET /v1/search/round-trip.  The outbound leg is
// described by the same parameters as the one-way search; return_date
// selects the reversed leg's day.
func (h *SearchHandler) SearchRoundTrip(c echo.Context) error {
    p, ok := searchParams(c)
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "origin and destination are required"})
    }
    rd := c.QueryParam("return_date")
    returnDate, err := time.Parse("2006-01-02", rd)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "return_date is required (YYYY-MM-DD)"})
    }
    res, err := h.Engine.SearchRoundTrip(c.Request().Context(), p, returnDate)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, res)
}

// SearchMultiCity handles POST /v1/search/multi-city.  The body carries an
// ordered list of segments, each searched independently.
func (h *SearchHandler) SearchMultiCity(c echo.Context) error {
    var body struct {
        Segments []struct {
            Origin      string `json:"origin"`
            Destination string `json:"destination"`
            Date        string `json:"date"`
        } `json:"segments"`
        Passengers uint32  `json:"passengers"`
        FareClass  string  `json:"fare_class"`
        RadiusKm   float64 `json:"radius_km"`
        Page       int     `json:"page"`
        Limit      int     `json:"limit"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if len(body.Segments) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "segments is required"})
    }
    segments := make([]search.Params, 0, len(body.Segments))
    for _, s := range body.Segments {
        if s.Origin == "" || s.Destination == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "every segment needs origin and destination"})
        }
        p := search.Params{
            Origin:      s.Origin,
            Destination: s.Destination,
            Passengers:  body.Passengers,
            Class:       model.FareClass(body.FareClass),
            RadiusKm:    body.RadiusKm,
            Page:        body.Page,
            PageSize:    body.Limit,
        }
        if s.Date != "" {
            d, err := time.Parse("2006-01-02", s.Date)
            if err != nil {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "segment date must be YYYY-MM-DD"})
            }
            p.Date = d
        }
        segments = append(segments, p)
    }
    res, err := h.Engine.SearchMultiCity(c.Request().Context(), segments)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"segments": res})
}

// Availability handles GET /v1/flights/:id/availability.  passengers
// defaults to 1; fare_class narrows the check to one class's allotment.
func (h *SearchHandler) Availability(c echo.Context) error {
    flightID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || flightID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    passengers := uint32(1)
    if v := c.QueryParam("passengers"); v != "" {
        n, err := strconv.ParseUint(v, 10, 32)
        if err != nil || n == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengers must be a positive integer"})
        }
        passengers = uint32(n)
    }
    class := model.FareClass(c.QueryParam("fare_class"))
    if class != "" && !model.ValidFareClass(class) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown fare class"})
    }
    av, err := h.Engine.CheckAvailability(c.Request().Context(), flightID, passengers, class)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, av)
}
