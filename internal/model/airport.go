package model

import "time"

// Airport represents an airport that can appear as the origin or
// destination of a route.  Airports are identified externally by
// their three-letter IATA code.  Latitude and longitude are
// optional; airports without coordinates are excluded from
// nearby-airport expansion.
//
// Fields:
//  ID        – primary key identifier.
//  IATACode  – unique three-letter IATA code (e.g. "JFK").
//  Name      – full airport name.
//  City      – city served by the airport.
//  Country   – country of the airport.
//  Latitude  – decimal latitude (nil when unknown).
//  Longitude – decimal longitude (nil when unknown).
//  Timezone  – IANA timezone name of the airport.
//  IsActive  – whether the airport is active.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Airport struct {
    ID        uint64    // airports.id
    IATACode  string    // airports.iata_code
    Name      string    // airports.name
    City      string    // airports.city
    Country   string    // airports.country
    Latitude  *float64  // airports.latitude (nullable)
    Longitude *float64  // airports.longitude (nullable)
    Timezone  string    // airports.timezone
    IsActive  bool      // airports.is_active
    CreatedAt time.Time // airports.created_at
    UpdatedAt time.Time // airports.updated_at
}
