package model

import "time"

// Route links an origin airport to a destination airport.  Flights
// are scheduled operations of a route on a date.  A route is
// directional: the return leg of a round trip is a separate route.
//
// Fields:
//  ID             – primary key identifier.
//  OriginID       – origin airport reference.
//  DestinationID  – destination airport reference.
//  DistanceKm     – great-circle distance in kilometres.
//  DurationMin    – typical block time in minutes.
//  IsActive       – whether the route is currently operated.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Route struct {
    ID            uint64    // routes.id
    OriginID      uint64    // routes.origin_airport_id
    DestinationID uint64    // routes.destination_airport_id
    DistanceKm    uint32    // routes.distance_km
    DurationMin   uint32    // routes.duration_min
    IsActive      bool      // routes.is_active
    CreatedAt     time.Time // routes.created_at
    UpdatedAt     time.Time // routes.updated_at
}
