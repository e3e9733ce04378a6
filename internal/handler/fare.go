package handler

import (
    "net/http" // HTTP status codes
    "strconv"  // parsing query parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/pricing"
)

// FareHandler exposes fare quoting and promo-code validation.  Quotes are
// advisory; the authoritative price is computed again when the booking is
// created.
type FareHandler struct {
    Pricer *pricing.Engine
}

// NewFareHandler constructs a FareHandler around the pricing engine.
func NewFareHandler(p *pricing.Engine) *FareHandler {
    if p == nil {
        panic("nil engine passed to NewFareHandler")
    }
    return &FareHandler{Pricer: p}
}

// Quote handles GET /v1/fares/quote.  flight_id and fare_class are
// required; passengers defaults to 1; promo_code is optional and a quote
// with an invalid code fails rather than silently dropping the discount.
func (h *FareHandler) Quote(c echo.Context) error {
    flightID, err := strconv.ParseUint(c.QueryParam("flight_id"), 10, 64)
    if err != nil || flightID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_id is required"})
    }
    class := model.FareClass(c.QueryParam("fare_class"))
    if !model.ValidFareClass(class) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown fare class"})
    }
    passengers := uint32(1)
    if v := c.QueryParam("passengers"); v != "" {
        n, err := strconv.ParseUint(v, 10, 32)
        if err != nil || n == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "passengers must be a positive integer"})
        }
        passengers = uint32(n)
    }

    b, err := h.Pricer.Quote(c.Request().Context(), flightID, class, passengers, c.QueryParam("promo_code"))
    if err != nil {
        return domainError(c, err)
    }
    return c.JSON(http.StatusOK, b)
}

// ValidatePromo handles POST /v1/promo-codes/validate.  It reports
// whether a code is usable for a given purchase without redeeming it.
func (h *FareHandler) ValidatePromo(c echo.Context) error {
    var body struct {
        Code          string `json:"code"`
        PurchaseCents int64  `json:"purchase_cents"`
        FareClass     string `json:"fare_class"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Code == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "code is required"})
    }
    class := model.FareClass(body.FareClass)
    if class != "" && !model.ValidFareClass(class) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown fare class"})
    }

    reason, err := h.Pricer.ValidatePromo(c.Request().Context(), body.Code, body.PurchaseCents, class)
    if err != nil {
        return domainError(c, err)
    }
    if reason != "" {
        return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": reason})
    }
    return c.JSON(http.StatusOK, echo.Map{"valid": true})
}
