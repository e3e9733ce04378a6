package model

import "time"

// Ticket is the travel document issued for one passenger of a
// confirmed booking.  The thirteen-digit ticket number is unique
// across all tickets.  Tickets are created exactly once, on booking
// confirmation; regenerating tickets for a booking is an error.
//
// Fields:
//  ID           – primary key identifier.
//  TicketNumber – thirteen-digit numeric ticket number.
//  BookingID    – owning booking.
//  PassengerID  – passenger the ticket is issued to.
//  FareCents    – fare portion for this passenger in cents.
//  TaxCents     – taxes for this passenger in cents.
//  FeeCents     – fees for this passenger in cents.
//  Class        – fare class the ticket is issued in.
//  IssueDate    – when the ticket was issued.
//  ExpiryDate   – when the ticket expires.
//  IsActive     – whether the ticket is valid for travel.
//  CreatedAt    – creation timestamp.
type Ticket struct {
    ID           uint64    // tickets.id
    TicketNumber string    // tickets.ticket_number
    BookingID    uint64    // tickets.booking_id
    PassengerID  uint64    // tickets.passenger_id
    FareCents    int64     // tickets.fare_cents
    TaxCents     int64     // tickets.tax_cents
    FeeCents     int64     // tickets.fee_cents
    Class        FareClass // tickets.fare_class
    IssueDate    time.Time // tickets.issue_date
    ExpiryDate   time.Time // tickets.expiry_date
    IsActive     bool      // tickets.is_active
    CreatedAt    time.Time // tickets.created_at
}
