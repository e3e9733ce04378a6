package model

import "time"

// SeatAssignment attaches a concrete seat to a passenger of a
// booking.  Two uniqueness rules are enforced at write time: a
// seat number may be assigned at most once within a booking, and a
// passenger may hold at most one seat within a booking.
type SeatAssignment struct {
    ID          uint64    // seat_assignments.id
    BookingID   uint64    // seat_assignments.booking_id
    PassengerID uint64    // seat_assignments.passenger_id
    SeatNumber  string    // seat_assignments.seat_number (e.g. "14C")
    SeatType    string    // seat_assignments.seat_type (WINDOW, MIDDLE, AISLE)
    Class       FareClass // seat_assignments.fare_class
    PriceCents  int64     // seat_assignments.price_cents
    IsPreferred bool      // seat_assignments.is_preferred
    CreatedAt   time.Time // seat_assignments.created_at
}
