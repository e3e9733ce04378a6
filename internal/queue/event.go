// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the booking.events queue.
const (
    EventBookingConfirmed = "booking.confirmed"
    EventBookingCancelled = "booking.cancelled"
)

// BookingEvent is published when a booking is confirmed or cancelled.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database. EventID is a
// random UUID so consumers can deduplicate redeliveries.
type BookingEvent struct {
    EventID          string   `json:"event_id"`
    Type             string   `json:"type"`
    BookingID        uint64   `json:"booking_id"`
    PNR              string   `json:"pnr"`
    FlightID         uint64   `json:"flight_id"`
    FareClass        string   `json:"fare_class"`
    PassengerCount   int      `json:"passenger_count"`
    TotalAmountCents int64    `json:"total_amount_cents"`
    Currency         string   `json:"currency"`
    TicketNumbers    []string `json:"ticket_numbers,omitempty"`
    Reason           string   `json:"reason,omitempty"`
    OccurredAt       string   `json:"occurred_at"`
}
