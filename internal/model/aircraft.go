package model

import "time"

// Aircraft describes an airframe type that operates flights.  The
// per-class seat counts form the seat configuration from which a
// flight's total capacity and each fare class's allotment are
// derived.
//
// Fields:
//  ID               – primary key identifier.
//  Model            – aircraft model (e.g. "A320neo").
//  Manufacturer     – manufacturer name (e.g. "Airbus").
//  Registration     – unique tail number.
//  EconomySeats     – seats allotted to economy.
//  PremiumSeats     – seats allotted to premium economy.
//  BusinessSeats    – seats allotted to business.
//  FirstClassSeats  – seats allotted to first.
//  IsActive         – whether the aircraft is in service.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Aircraft struct {
    ID              uint64    // aircraft.id
    Model           string    // aircraft.model
    Manufacturer    string    // aircraft.manufacturer
    Registration    string    // aircraft.registration
    EconomySeats    uint32    // aircraft.economy_seats
    PremiumSeats    uint32    // aircraft.premium_seats
    BusinessSeats   uint32    // aircraft.business_seats
    FirstClassSeats uint32    // aircraft.first_class_seats
    IsActive        bool      // aircraft.is_active
    CreatedAt       time.Time // aircraft.created_at
    UpdatedAt       time.Time // aircraft.updated_at
}

// SeatsForClass returns the seat allotment for the given fare class.
// Unknown classes map to zero.
func (a *Aircraft) SeatsForClass(class FareClass) uint32 {
    switch class {
    case FareClassEconomy:
        return a.EconomySeats
    case FareClassPremiumEconomy:
        return a.PremiumSeats
    case FareClassBusiness:
        return a.BusinessSeats
    case FareClassFirst:
        return a.FirstClassSeats
    }
    return 0
}
