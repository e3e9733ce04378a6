package model

import "time"

// FlightStatus enumerates the operational states of a flight.
type FlightStatus string

const (
    FlightScheduled FlightStatus = "SCHEDULED"
    FlightDelayed   FlightStatus = "DELAYED"
    FlightBoarding  FlightStatus = "BOARDING"
    FlightDeparted  FlightStatus = "DEPARTED"
    FlightArrived   FlightStatus = "ARRIVED"
    FlightCancelled FlightStatus = "CANCELLED"
    FlightDiverted  FlightStatus = "DIVERTED"
)

// Flight represents a scheduled operation of a route on a date.
// TotalSeats is derived from the aircraft's seat configuration when
// the flight is created and never changes afterwards.  The seat
// counters must always satisfy BookedSeats + AvailableSeats ==
// TotalSeats; they are mutated only through the inventory ledger.
//
// Fields:
//  ID                 – primary key identifier.
//  FlightNumber       – public flight designator (e.g. "SB204").
//  RouteID            – route being operated.
//  AircraftID         – aircraft assigned to the flight.
//  ScheduledDeparture – planned departure time (UTC).
//  ScheduledArrival   – planned arrival time (UTC).
//  ActualDeparture    – actual departure time, nil until departed.
//  ActualArrival      – actual arrival time, nil until arrived.
//  Status             – operational status of the flight.
//  TotalSeats         – immutable capacity of the flight.
//  BookedSeats        – seats currently booked.
//  AvailableSeats     – seats still available.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Flight struct {
    ID                 uint64       // flights.id
    FlightNumber       string       // flights.flight_number
    RouteID            uint64       // flights.route_id
    AircraftID         uint64       // flights.aircraft_id
    ScheduledDeparture time.Time    // flights.scheduled_departure
    ScheduledArrival   time.Time    // flights.scheduled_arrival
    ActualDeparture    *time.Time   // flights.actual_departure (nullable)
    ActualArrival      *time.Time   // flights.actual_arrival (nullable)
    Status             FlightStatus // flights.status
    TotalSeats         uint32       // flights.total_seats
    BookedSeats        uint32       // flights.booked_seats
    AvailableSeats     uint32       // flights.available_seats
    CreatedAt          time.Time    // flights.created_at
    UpdatedAt          time.Time    // flights.updated_at
}
