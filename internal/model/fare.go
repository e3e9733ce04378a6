package model

import "time"

// FareClass enumerates the priced service tiers offered on a flight.
type FareClass string

const (
    FareClassEconomy        FareClass = "ECONOMY"
    FareClassPremiumEconomy FareClass = "PREMIUM_ECONOMY"
    FareClassBusiness       FareClass = "BUSINESS"
    FareClassFirst          FareClass = "FIRST"
)

// ValidFareClass reports whether c names a known fare class.
func ValidFareClass(c FareClass) bool {
    switch c {
    case FareClassEconomy, FareClassPremiumEconomy, FareClassBusiness, FareClassFirst:
        return true
    }
    return false
}

// Fare is a priced offering of one fare class on one flight.  Its
// seat counters are scoped to the class and are independent from
// the flight-level counters: BookedSeats + AvailableSeats must
// equal the class allotment from the aircraft's seat configuration.
// A flight has at most one active fare per class.
//
// Fields:
//  ID              – primary key identifier.
//  FlightID        – flight this fare belongs to.
//  Class           – fare class being priced.
//  BaseFareCents   – base fare per passenger in cents.
//  AdjustmentCents – dynamic price adjustment in cents (may be negative).
//  AvailableSeats  – class-scoped seats still available.
//  BookedSeats     – class-scoped seats booked.
//  Currency        – ISO 4217 currency code.
//  ValidFrom       – start of the fare's validity window.
//  ValidTo         – end of the fare's validity window.
//  IsActive        – whether the fare is currently on sale.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Fare struct {
    ID              uint64    // fares.id
    FlightID        uint64    // fares.flight_id
    Class           FareClass // fares.fare_class
    BaseFareCents   int64     // fares.base_fare_cents
    AdjustmentCents int64     // fares.adjustment_cents
    AvailableSeats  uint32    // fares.available_seats
    BookedSeats     uint32    // fares.booked_seats
    Currency        string    // fares.currency
    ValidFrom       time.Time // fares.valid_from
    ValidTo         time.Time // fares.valid_to
    IsActive        bool      // fares.is_active
    CreatedAt       time.Time // fares.created_at
    UpdatedAt       time.Time // fares.updated_at
}

// TotalFareCents returns the effective per-passenger fare: base fare
// plus the dynamic adjustment, floored at zero.
func (f *Fare) TotalFareCents() int64 {
    total := f.BaseFareCents + f.AdjustmentCents
    if total < 0 {
        return 0
    }
    return total
}
