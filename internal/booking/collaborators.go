package booking

import (
	"context"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// Collaborator interfaces for systems outside the reservation core.
// The engine ships with no-op defaults so it runs standalone; real
// integrations are injected at wiring time.

// PaymentVerifier checks that payment for a booking has cleared
// before confirmation. Verification failures do not block the
// transition; the engine logs them and proceeds.
type PaymentVerifier interface {
	Verify(ctx context.Context, bookingID uint64, amountCents int64, currency string) error
}

// UserDirectory resolves whether a user reference on a booking is
// valid. Guest bookings never consult it.
type UserDirectory interface {
	Exists(ctx context.Context, userID uint64) (bool, error)
}

// AncillaryReader lists purchased extras (bags, meals, lounge access)
// attached to a booking, for inclusion in booking detail responses.
type AncillaryReader interface {
	ListByBooking(ctx context.Context, bookingID uint64) ([]string, error)
}

// EventPublisher emits lifecycle events after a transaction commits.
// The queue publisher satisfies this; tests and queue-less
// deployments use NopPublisher.
type EventPublisher interface {
	BookingConfirmed(b *model.Booking, tickets []model.Ticket)
	BookingCancelled(b *model.Booking, reason string)
}

type nopVerifier struct{}

func (nopVerifier) Verify(ctx context.Context, bookingID uint64, amountCents int64, currency string) error {
	return nil
}

type nopDirectory struct{}

func (nopDirectory) Exists(ctx context.Context, userID uint64) (bool, error) { return true, nil }

type nopAncillaries struct{}

func (nopAncillaries) ListByBooking(ctx context.Context, bookingID uint64) ([]string, error) {
	return nil, nil
}

// NopPublisher drops all events.
type NopPublisher struct{}

func (NopPublisher) BookingConfirmed(b *model.Booking, tickets []model.Ticket) {}
func (NopPublisher) BookingCancelled(b *model.Booking, reason string)         {}
