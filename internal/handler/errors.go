package handler

import (
    "errors"   // errors.Is / errors.As for sentinel and typed error checks
    "net/http" // HTTP status codes

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/booking"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/pricing"
    "github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

// domainError translates engine and repository errors into HTTP
// responses.  Every handler funnels its non-nil errors through here so the
// mapping from sentinel to status code lives in one place:
//
//   not-found sentinels        -> 404
//   validation / bad promo     -> 400
//   insufficient seats         -> 400
//   conflicts / transitions    -> 409
//   anything else              -> 500 (details stay in the server log)
func domainError(c echo.Context, err error) error {
    var ve *booking.ValidationError
    var te *booking.TransitionError
    var pe *pricing.InvalidPromoError

    switch {
    case errors.Is(err, repository.ErrFlightNotFound),
        errors.Is(err, repository.ErrAirportNotFound),
        errors.Is(err, repository.ErrAircraftNotFound),
        errors.Is(err, repository.ErrFareNotFound),
        errors.Is(err, repository.ErrBookingNotFound),
        errors.Is(err, repository.ErrPromoNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrInsufficientSeats):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "not enough seats available"})
    case errors.As(err, &pe):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid promo code", "reason": pe.Reason})
    case errors.As(err, &ve):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Msg})
    case errors.As(err, &te):
        return c.JSON(http.StatusConflict, echo.Map{"error": te.Error()})
    case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrDuplicateKey):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    }
    c.Logger().Errorf("internal error: %v", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
