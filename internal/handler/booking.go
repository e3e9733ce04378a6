package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "strings"  // normalising PNR input
    "time"     // parsing passenger dates

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/booking"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/middleware"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// BookingHandler exposes the reservation lifecycle over HTTP.  All state
// changes are delegated to the booking engine, which runs each of them in a
// single database transaction; the handler's job is parsing, identity and
// status-code mapping.
type BookingHandler struct {
    Engine *booking.Engine
}

// NewBookingHandler constructs a BookingHandler around the booking engine.
func NewBookingHandler(e *booking.Engine) *BookingHandler {
    if e == nil {
        panic("nil engine passed to NewBookingHandler")
    }
    return &BookingHandler{Engine: e}
}

// passengerBody is the wire shape of one passenger in a create request.
type passengerBody struct {
    FirstName      string `json:"first_name"`
    LastName       string `json:"last_name"`
    DateOfBirth    string `json:"date_of_birth"`
    Nationality    string `json:"nationality"`
    PassportNumber string `json:"passport_number"`
    PassportExpiry string `json:"passport_expiry"`
}

func (p passengerBody) toModel() (model.Passenger, bool) {
    if p.FirstName == "" || p.LastName == "" {
        return model.Passenger{}, false
    }
    m := model.Passenger{
        FirstName:   p.FirstName,
        LastName:    p.LastName,
        Nationality: p.Nationality,
    }
    if p.DateOfBirth != "" {
        if d, err := time.Parse("2006-01-02", p.DateOfBirth); err == nil {
            m.DateOfBirth = &d
        }
    }
    if p.PassportNumber != "" {
        n := p.PassportNumber
        m.PassportNumber = &n
    }
    if p.PassportExpiry != "" {
        if d, err := time.Parse("2006-01-02", p.PassportExpiry); err == nil {
            m.PassportExpiry = &d
        }
    }
    return m, true
}

// Create handles POST /v1/bookings.  An authenticated request attaches the
// caller's user ID to the booking; guests book anonymously.  The response
// carries the new booking together with its price breakdown.
func (h *BookingHandler) Create(c echo.Context) error {
    var body struct {
        FlightID   uint64          `json:"flight_id"`
        FareClass  string          `json:"fare_class"`
        Passengers []passengerBody `json:"passengers"`
        PromoCode  string          `json:"promo_code"`
        Notes      string          `json:"notes"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.FlightID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id is required"})
    }
    if len(body.Passengers) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengers is required"})
    }
    passengers := make([]model.Passenger, 0, len(body.Passengers))
    for _, pb := range body.Passengers {
        p, ok := pb.toModel()
        if !ok {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "every passenger needs first_name and last_name"})
        }
        passengers = append(passengers, p)
    }

    params := booking.CreateParams{
        FlightID:   body.FlightID,
        Class:      model.FareClass(body.FareClass),
        UserID:     middleware.UserID(c),
        Passengers: passengers,
        PromoCode:  body.PromoCode,
    }
    if body.Notes != "" {
        params.Notes = &body.Notes
    }

    b, quote, err := h.Engine.Create(c.Request().Context(), params)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"booking": b, "pricing": quote})
}

// GetByPNR handles GET /v1/bookings/:pnr.  The record locator lookup is
// case-insensitive.
func (h *BookingHandler) GetByPNR(c echo.Context) error {
    pnr := strings.ToUpper(strings.TrimSpace(c.Param("pnr")))
    if len(pnr) != 6 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "pnr must be six characters"})
    }
    detail, err := h.Engine.GetByPNR(c.Request().Context(), pnr)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, detail)
}

// UpdateStatus handles PATCH /v1/bookings/:id/status.  Confirming issues
// tickets; cancelling releases the seats back to inventory.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        Status string `json:"status"`
        Reason string `json:"reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Status == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
    }

    b, tickets, err := h.Engine.UpdateStatus(c.Request().Context(), id, strings.ToUpper(body.Status), body.Reason)
    if err != nil {
        return domainError(c, err)
    }
    resp := echo.Map{"booking": b}
    if len(tickets) > 0 {
        resp["tickets"] = tickets
    }
    return c.JSON(http.StatusOK, resp)
}

// GenerateTickets handles POST /v1/bookings/:id/tickets.  It issues the
// booking's tickets when confirmation did not, one per passenger; a booking
// that already holds tickets is a conflict.
func (h *BookingHandler) GenerateTickets(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    tickets, err := h.Engine.GenerateTickets(c.Request().Context(), id)
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"tickets": tickets})
}

// AssignSeat handles POST /v1/bookings/:id/seats.
func (h *BookingHandler) AssignSeat(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    var body struct {
        PassengerID uint64 `json:"passenger_id"`
        SeatNumber  string `json:"seat_number"`
        SeatType    string `json:"seat_type"`
        PriceCents  int64  `json:"price_cents"`
        IsPreferred bool   `json:"is_preferred"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.PassengerID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "passenger_id is required"})
    }

    a, err := h.Engine.AssignSeat(c.Request().Context(), booking.AssignSeatParams{
        BookingID:   id,
        PassengerID: body.PassengerID,
        SeatNumber:  strings.ToUpper(strings.TrimSpace(body.SeatNumber)),
        SeatType:    strings.ToUpper(body.SeatType),
        PriceCents:  body.PriceCents,
        IsPreferred: body.IsPreferred,
    })
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"seat_assignment": a})
}

// Delete handles DELETE /v1/bookings/:id.  Only bookings that were never
// confirmed can be deleted; pending ones release their seats first.
func (h *BookingHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }
    if err := h.Engine.Delete(c.Request().Context(), id); err != nil {
        return domainError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
