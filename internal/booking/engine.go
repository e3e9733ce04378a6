package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/identifier"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/pricing"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

// ticketTaxPct and ticketFeePct are the tax and fee rates recorded on
// an issued ticket, each computed on the passenger's fare share.
const (
	ticketTaxPct = 10
	ticketFeePct = 5
)

// ticketValidityDays is how long an issued ticket remains valid.
const ticketValidityDays = 365

// ValidationError reports a request the engine rejected before
// touching any state. Handlers translate it to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Stores consumed by the engine. The repository types satisfy these;
// tests substitute fakes. The *sql.Tx parameter is the transaction
// opened by the engine's Transactor, threaded through so every store
// call of one operation shares it.

// Transactor runs a function inside one database transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type InventoryLedger interface {
	ReserveTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error
	ReleaseTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error
}

type BookingStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*model.Booking, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error)
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, confirmedAt, cancelledAt *time.Time, cancellationReason *string) error
	DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error
}

type PassengerStore interface {
	CreateBulkTx(ctx context.Context, tx *sql.Tx, passengers []model.Passenger) error
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.Passenger, error)
	ListByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]model.Passenger, error)
	CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error)
	ExistsInBookingTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error)
}

type TicketStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error
	CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int, error)
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.Ticket, error)
}

type SeatStore interface {
	CreateTx(ctx context.Context, tx *sql.Tx, a *model.SeatAssignment) error
	SeatTakenTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatNumber string) (bool, error)
	PassengerHasSeatTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error)
	ListByBooking(ctx context.Context, bookingID uint64) ([]model.SeatAssignment, error)
}

type PromoRedeemer interface {
	RedeemTx(ctx context.Context, tx *sql.Tx, code string) error
}

type Quoter interface {
	Quote(ctx context.Context, flightID uint64, class model.FareClass, passengerCount uint32, promoCode string) (*pricing.Breakdown, error)
}

// Deps collects the engine's constructor dependencies. Collaborators
// left nil default to no-ops.
type Deps struct {
	Tx         Transactor
	Inventory  InventoryLedger
	Bookings   BookingStore
	Passengers PassengerStore
	Tickets    TicketStore
	Seats      SeatStore
	Promos     PromoRedeemer
	Pricer     Quoter
	Generator  *identifier.Generator

	Payments    PaymentVerifier
	Users       UserDirectory
	Ancillaries AncillaryReader
	Publisher   EventPublisher
}

// Engine drives the booking lifecycle. Identifier uniqueness is owned
// by the storage layer's unique indexes; the engine mints candidates
// and retries a bounded number of times on a duplicate.
type Engine struct {
	tx          Transactor
	inventory   InventoryLedger
	bookings    BookingStore
	passengers  PassengerStore
	tickets     TicketStore
	seats       SeatStore
	promos      PromoRedeemer
	pricer      Quoter
	gen         *identifier.Generator
	payments    PaymentVerifier
	users       UserDirectory
	ancillaries AncillaryReader
	publisher   EventPublisher
	now         func() time.Time
}

// NewEngine constructs an Engine, filling absent collaborators with
// no-op implementations.
func NewEngine(d Deps) *Engine {
	e := &Engine{
		tx:          d.Tx,
		inventory:   d.Inventory,
		bookings:    d.Bookings,
		passengers:  d.Passengers,
		tickets:     d.Tickets,
		seats:       d.Seats,
		promos:      d.Promos,
		pricer:      d.Pricer,
		gen:         d.Generator,
		payments:    d.Payments,
		users:       d.Users,
		ancillaries: d.Ancillaries,
		publisher:   d.Publisher,
		now:         time.Now,
	}
	if e.payments == nil {
		e.payments = nopVerifier{}
	}
	if e.users == nil {
		e.users = nopDirectory{}
	}
	if e.ancillaries == nil {
		e.ancillaries = nopAncillaries{}
	}
	if e.publisher == nil {
		e.publisher = NopPublisher{}
	}
	return e
}

// CreateParams describes a new reservation. An empty Class defaults
// to economy.
type CreateParams struct {
	FlightID   uint64
	Class      model.FareClass
	UserID     *uint64
	Passengers []model.Passenger
	PromoCode  string
	Notes      *string
}

// Create prices and reserves a new booking in one transaction:
// reserve the seats, mint a PNR against the unique index, insert the
// booking and its passengers, and redeem the promo code if one was
// applied. The booking starts in PENDING.
func (e *Engine) Create(ctx context.Context, p CreateParams) (*model.Booking, *pricing.Breakdown, error) {
	if len(p.Passengers) == 0 {
		return nil, nil, &ValidationError{Msg: "at least one passenger is required"}
	}
	class := p.Class
	if class == "" {
		class = model.FareClassEconomy
	}
	if !model.ValidFareClass(class) {
		return nil, nil, &ValidationError{Msg: fmt.Sprintf("unknown fare class %q", p.Class)}
	}
	if p.UserID != nil {
		ok, err := e.users.Exists(ctx, *p.UserID)
		if err != nil {
			return nil, nil, fmt.Errorf("checking user: %w", err)
		}
		if !ok {
			return nil, nil, &ValidationError{Msg: "unknown user"}
		}
	}

	count := uint32(len(p.Passengers))
	quote, err := e.pricer.Quote(ctx, p.FlightID, class, count, p.PromoCode)
	if err != nil {
		return nil, nil, err
	}

	b := &model.Booking{
		FlightID:         p.FlightID,
		FareClass:        class,
		UserID:           p.UserID,
		Status:           StatusPending,
		TotalAmountCents: quote.TotalCents,
		Currency:         quote.Currency,
		BookingDate:      e.now().UTC(),
		Notes:            p.Notes,
	}
	err = e.tx.InTx(ctx, func(tx *sql.Tx) error {
		if err := e.inventory.ReserveTx(ctx, tx, p.FlightID, class, count); err != nil {
			return err
		}
		if p.PromoCode != "" {
			if err := e.promos.RedeemTx(ctx, tx, quote.PromoCode); err != nil {
				return err
			}
		}
		if err := e.mintBooking(ctx, tx, b); err != nil {
			return err
		}
		for i := range p.Passengers {
			p.Passengers[i].BookingID = b.ID
		}
		return e.passengers.CreateBulkTx(ctx, tx, p.Passengers)
	})
	if err != nil {
		return nil, nil, err
	}
	return b, quote, nil
}

// mintBooking inserts the booking under freshly drawn PNRs until the
// unique index accepts one or the attempt budget runs out.
func (e *Engine) mintBooking(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	for attempt := 0; attempt < identifier.MaxAttempts; attempt++ {
		b.PNR = e.gen.PNR()
		err := e.bookings.CreateTx(ctx, tx, b)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			continue
		}
		return err
	}
	return fmt.Errorf("minting pnr: %w", repository.ErrConflict)
}

// UpdateStatus moves a booking through the state machine. Confirming
// stamps the confirmation date and issues tickets when none exist
// yet; cancelling stamps the cancellation fields and returns the
// seats to inventory; check-in is a pure status flip. Events are
// published after the transaction commits.
func (e *Engine) UpdateStatus(ctx context.Context, id uint64, to, reason string) (*model.Booking, []model.Ticket, error) {
	if !ValidStatus(to) {
		return nil, nil, &ValidationError{Msg: fmt.Sprintf("unknown status %q", to)}
	}

	now := e.now().UTC()
	var b *model.Booking
	var issued []model.Ticket

	err := e.tx.InTx(ctx, func(tx *sql.Tx) error {
		var err error
		b, err = e.bookings.GetByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !CanTransition(b.Status, to) {
			return &TransitionError{From: b.Status, To: to}
		}

		switch to {
		case StatusConfirmed:
			// Payment failures are logged, not fatal: confirmation is
			// driven by the caller's decision, verification is advisory.
			if err := e.payments.Verify(ctx, b.ID, b.TotalAmountCents, b.Currency); err != nil {
				log.Printf("warning: payment verification failed for booking %d: %v", b.ID, err)
			}
			existing, err := e.tickets.CountByBookingTx(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if existing == 0 {
				issued, err = e.issueTicketsTx(ctx, tx, b, now)
				if err != nil {
					return err
				}
			}
			if err := e.bookings.UpdateStatusTx(ctx, tx, b.ID, to, &now, nil, nil); err != nil {
				return err
			}
			b.ConfirmationDate = &now

		case StatusCancelled:
			var rp *string
			if reason != "" {
				rp = &reason
			}
			if err := e.bookings.UpdateStatusTx(ctx, tx, b.ID, to, nil, &now, rp); err != nil {
				return err
			}
			count, err := e.passengers.CountByBookingTx(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if err := e.inventory.ReleaseTx(ctx, tx, b.FlightID, b.FareClass, count); err != nil {
				return err
			}
			b.CancellationDate = &now
			b.CancellationReason = rp

		case StatusCheckedIn:
			if err := e.bookings.UpdateStatusTx(ctx, tx, b.ID, to, nil, nil, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	b.Status = to

	switch to {
	case StatusConfirmed:
		e.publisher.BookingConfirmed(b, issued)
	case StatusCancelled:
		e.publisher.BookingCancelled(b, reason)
	}
	return b, issued, nil
}

// GenerateTickets issues tickets for a confirmed booking that has
// none, one per passenger. A booking that already holds tickets is
// rejected; tickets are never re-minted.
func (e *Engine) GenerateTickets(ctx context.Context, bookingID uint64) ([]model.Ticket, error) {
	var issued []model.Ticket
	err := e.tx.InTx(ctx, func(tx *sql.Tx) error {
		b, err := e.bookings.GetByIDForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != StatusConfirmed && b.Status != StatusCheckedIn {
			return &ValidationError{Msg: "tickets can only be issued for a confirmed booking"}
		}
		existing, err := e.tickets.CountByBookingTx(ctx, tx, b.ID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return &ValidationError{Msg: "tickets already issued for this booking"}
		}
		issued, err = e.issueTicketsTx(ctx, tx, b, e.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	return issued, nil
}

// issueTicketsTx mints one ticket per passenger inside the caller's
// transaction. The booking total is split evenly across passengers;
// each ticket carries its full share as the fare plus the tax and fee
// amounts computed on it.
func (e *Engine) issueTicketsTx(ctx context.Context, tx *sql.Tx, b *model.Booking, now time.Time) ([]model.Ticket, error) {
	pax, err := e.passengers.ListByBookingTx(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}
	if len(pax) == 0 {
		return nil, &ValidationError{Msg: "booking has no passengers"}
	}

	shares := SplitAmount(b.TotalAmountCents, len(pax))
	expiry := now.AddDate(0, 0, ticketValidityDays)
	tickets := make([]model.Ticket, 0, len(pax))
	for i, p := range pax {
		fare, tax, fee := FareSplit(shares[i])
		t := model.Ticket{
			BookingID:   b.ID,
			PassengerID: p.ID,
			FareCents:   fare,
			TaxCents:    tax,
			FeeCents:    fee,
			Class:       b.FareClass,
			IssueDate:   now,
			ExpiryDate:  expiry,
			IsActive:    true,
		}
		if err := e.mintTicket(ctx, tx, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

// mintTicket inserts the ticket under freshly drawn numbers until the
// unique index accepts one or the attempt budget runs out.
func (e *Engine) mintTicket(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	for attempt := 0; attempt < identifier.MaxAttempts; attempt++ {
		t.TicketNumber = e.gen.TicketNumber()
		err := e.tickets.CreateTx(ctx, tx, t)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			continue
		}
		return err
	}
	return fmt.Errorf("minting ticket number: %w", repository.ErrConflict)
}

// SplitAmount divides total into n shares that sum exactly to total;
// the remainder cents go to the first share.
func SplitAmount(total int64, n int) []int64 {
	shares := make([]int64, n)
	if n == 0 {
		return shares
	}
	each := total / int64(n)
	for i := range shares {
		shares[i] = each
	}
	shares[0] += total - each*int64(n)
	return shares
}

// FareSplit derives a ticket's monetary fields from one passenger
// share: the fare is the full share, tax and fee are fixed
// percentages of it, truncated toward zero.
func FareSplit(share int64) (fare, tax, fee int64) {
	tax = share * ticketTaxPct / 100
	fee = share * ticketFeePct / 100
	return share, tax, fee
}

// AssignSeatParams describes one seat assignment request.
type AssignSeatParams struct {
	BookingID   uint64
	PassengerID uint64
	SeatNumber  string
	SeatType    string
	PriceCents  int64
	IsPreferred bool
}

// AssignSeat gives a passenger of the booking a seat. The seat must
// be free within the booking and the passenger must not already hold
// one; both invariants are also enforced by unique indexes, so a
// concurrent duplicate surfaces as a conflict rather than a double
// assignment.
func (e *Engine) AssignSeat(ctx context.Context, p AssignSeatParams) (*model.SeatAssignment, error) {
	if p.SeatNumber == "" {
		return nil, &ValidationError{Msg: "seat number is required"}
	}

	var a *model.SeatAssignment
	err := e.tx.InTx(ctx, func(tx *sql.Tx) error {
		b, err := e.bookings.GetByIDForUpdateTx(ctx, tx, p.BookingID)
		if err != nil {
			return err
		}
		if b.Status == StatusCancelled {
			return fmt.Errorf("booking is cancelled: %w", repository.ErrConflict)
		}
		ok, err := e.passengers.ExistsInBookingTx(ctx, tx, b.ID, p.PassengerID)
		if err != nil {
			return err
		}
		if !ok {
			return &ValidationError{Msg: "passenger does not belong to this booking"}
		}
		taken, err := e.seats.SeatTakenTx(ctx, tx, b.ID, p.SeatNumber)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("seat %s is already assigned: %w", p.SeatNumber, repository.ErrConflict)
		}
		has, err := e.seats.PassengerHasSeatTx(ctx, tx, b.ID, p.PassengerID)
		if err != nil {
			return err
		}
		if has {
			return fmt.Errorf("passenger already has a seat: %w", repository.ErrConflict)
		}

		a = &model.SeatAssignment{
			BookingID:   b.ID,
			PassengerID: p.PassengerID,
			SeatNumber:  p.SeatNumber,
			SeatType:    p.SeatType,
			Class:       b.FareClass,
			PriceCents:  p.PriceCents,
			IsPreferred: p.IsPreferred,
		}
		if err := e.seats.CreateTx(ctx, tx, a); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return fmt.Errorf("seat assignment collided: %w", repository.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes a booking that was never confirmed. Pending
// bookings give their seats back; cancelled ones already have.
// Confirmed and checked-in bookings cannot be deleted, only
// cancelled.
func (e *Engine) Delete(ctx context.Context, bookingID uint64) error {
	return e.tx.InTx(ctx, func(tx *sql.Tx) error {
		b, err := e.bookings.GetByIDForUpdateTx(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.Status == StatusConfirmed || b.Status == StatusCheckedIn {
			return &ValidationError{Msg: "confirmed bookings must be cancelled, not deleted"}
		}
		if b.Status == StatusPending {
			count, err := e.passengers.CountByBookingTx(ctx, tx, b.ID)
			if err != nil {
				return err
			}
			if err := e.inventory.ReleaseTx(ctx, tx, b.FlightID, b.FareClass, count); err != nil {
				return err
			}
		}
		return e.bookings.DeleteTx(ctx, tx, b.ID)
	})
}

// Detail is a booking with everything attached to it.
type Detail struct {
	Booking     *model.Booking         `json:"booking"`
	Passengers  []model.Passenger      `json:"passengers"`
	Tickets     []model.Ticket         `json:"tickets"`
	Seats       []model.SeatAssignment `json:"seat_assignments"`
	Ancillaries []string               `json:"ancillaries,omitempty"`
}

// GetByPNR loads a booking and its passengers, tickets and seat
// assignments by record locator.
func (e *Engine) GetByPNR(ctx context.Context, pnr string) (*Detail, error) {
	b, err := e.bookings.GetByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}
	pax, err := e.passengers.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	tickets, err := e.tickets.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	seats, err := e.seats.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	extras, err := e.ancillaries.ListByBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Booking: b, Passengers: pax, Tickets: tickets, Seats: seats, Ancillaries: extras}, nil
}
