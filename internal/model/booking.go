package model

import "time"

// Booking is a reservation on a single flight, identified by a
// six-character alphanumeric PNR that is unique across all
// bookings.  A booking owns one or more passengers and, once
// confirmed, one ticket per passenger.  UserID is nil for guest
// bookings.
//
// Fields:
//  ID                 – primary key identifier.
//  PNR                – six-character booking reference.
//  FlightID           – flight being booked.
//  FareClass          – fare class the seats were reserved in.
//  UserID             – optional user reference (nil for guests).
//  Status             – lifecycle status (see booking package).
//  TotalAmountCents   – total price for the whole booking in cents.
//  Currency           – ISO 4217 currency code.
//  BookingDate        – when the booking was created.
//  ConfirmationDate   – when the booking was confirmed (nullable).
//  CancellationDate   – when the booking was cancelled (nullable).
//  CancellationReason – free-text reason for cancellation (nullable).
//  Notes              – optional free-text notes.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type Booking struct {
    ID                 uint64     // bookings.id
    PNR                string     // bookings.pnr
    FlightID           uint64     // bookings.flight_id
    FareClass          FareClass  // bookings.fare_class
    UserID             *uint64    // bookings.user_id (nullable)
    Status             string     // bookings.status
    TotalAmountCents   int64      // bookings.total_amount_cents
    Currency           string     // bookings.currency
    BookingDate        time.Time  // bookings.booking_date
    ConfirmationDate   *time.Time // bookings.confirmation_date (nullable)
    CancellationDate   *time.Time // bookings.cancellation_date (nullable)
    CancellationReason *string    // bookings.cancellation_reason (nullable)
    Notes              *string    // bookings.notes (nullable)
    CreatedAt          time.Time  // bookings.created_at
    UpdatedAt          time.Time  // bookings.updated_at
}

// Passenger belongs to exactly one booking and carries the identity
// and travel-document fields needed for ticketing.  Passengers are
// created together with their booking; the booking reference is
// immutable afterwards.
type Passenger struct {
    ID             uint64     // passengers.id
    BookingID      uint64     // passengers.booking_id
    FirstName      string     // passengers.first_name
    LastName       string     // passengers.last_name
    DateOfBirth    *time.Time // passengers.date_of_birth (nullable)
    Nationality    string     // passengers.nationality
    PassportNumber *string    // passengers.passport_number (nullable)
    PassportExpiry *time.Time // passengers.passport_expiry (nullable)
    CreatedAt      time.Time  // passengers.created_at
}
