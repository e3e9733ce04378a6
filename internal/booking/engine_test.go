package booking

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/identifier"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/pricing"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

// fakeTx runs the transaction body directly. The nil *sql.Tx is never
// dereferenced because the fake stores ignore it.
type fakeTx struct {
	rollbacks int
}

func (f *fakeTx) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if err := fn(nil); err != nil {
		f.rollbacks++
		return err
	}
	return nil
}

// fakeLedger keeps a single availability counter so tests can assert
// that reserve and release balance out.
type fakeLedger struct {
	available uint32
	lastClass model.FareClass
}

func (f *fakeLedger) ReserveTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error {
	if seats > f.available {
		return repository.ErrInsufficientSeats
	}
	f.available -= seats
	f.lastClass = class
	return nil
}

func (f *fakeLedger) ReleaseTx(ctx context.Context, tx *sql.Tx, flightID uint64, class model.FareClass, seats uint32) error {
	f.available += seats
	f.lastClass = class
	return nil
}

type fakeBookings struct {
	byID      map[uint64]*model.Booking
	nextID    uint64
	dupesLeft int
	pnrsTried []string
}

func (f *fakeBookings) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	f.pnrsTried = append(f.pnrsTried, b.PNR)
	if f.dupesLeft > 0 {
		f.dupesLeft--
		return repository.ErrDuplicateKey
	}
	f.nextID++
	b.ID = f.nextID
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookings) GetByPNR(ctx context.Context, pnr string) (*model.Booking, error) {
	for _, b := range f.byID {
		if b.PNR == pnr {
			return b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookings) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookings) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string, confirmedAt, cancelledAt *time.Time, reason *string) error {
	b, ok := f.byID[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = status
	if confirmedAt != nil {
		b.ConfirmationDate = confirmedAt
	}
	if cancelledAt != nil {
		b.CancellationDate = cancelledAt
	}
	if reason != nil {
		b.CancellationReason = reason
	}
	return nil
}

func (f *fakeBookings) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	delete(f.byID, id)
	return nil
}

type fakePassengers struct {
	byBooking map[uint64][]model.Passenger
	nextID    uint64
}

func (f *fakePassengers) CreateBulkTx(ctx context.Context, tx *sql.Tx, passengers []model.Passenger) error {
	for _, p := range passengers {
		f.nextID++
		p.ID = f.nextID
		f.byBooking[p.BookingID] = append(f.byBooking[p.BookingID], p)
	}
	return nil
}

func (f *fakePassengers) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Passenger, error) {
	return f.byBooking[bookingID], nil
}

func (f *fakePassengers) ListByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]model.Passenger, error) {
	return f.byBooking[bookingID], nil
}

func (f *fakePassengers) CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint32, error) {
	return uint32(len(f.byBooking[bookingID])), nil
}

func (f *fakePassengers) ExistsInBookingTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error) {
	for _, p := range f.byBooking[bookingID] {
		if p.ID == passengerID {
			return true, nil
		}
	}
	return false, nil
}

type fakeTickets struct {
	byBooking map[uint64][]model.Ticket
	nextID    uint64
	dupesLeft int
}

func (f *fakeTickets) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) error {
	if f.dupesLeft > 0 {
		f.dupesLeft--
		return repository.ErrDuplicateKey
	}
	f.nextID++
	t.ID = f.nextID
	f.byBooking[t.BookingID] = append(f.byBooking[t.BookingID], *t)
	return nil
}

func (f *fakeTickets) CountByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int, error) {
	return len(f.byBooking[bookingID]), nil
}

func (f *fakeTickets) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Ticket, error) {
	return f.byBooking[bookingID], nil
}

type fakeSeats struct {
	rows []model.SeatAssignment
}

func (f *fakeSeats) CreateTx(ctx context.Context, tx *sql.Tx, a *model.SeatAssignment) error {
	a.ID = uint64(len(f.rows) + 1)
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeSeats) SeatTakenTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatNumber string) (bool, error) {
	for _, r := range f.rows {
		if r.BookingID == bookingID && r.SeatNumber == seatNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSeats) PassengerHasSeatTx(ctx context.Context, tx *sql.Tx, bookingID, passengerID uint64) (bool, error) {
	for _, r := range f.rows {
		if r.BookingID == bookingID && r.PassengerID == passengerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSeats) ListByBooking(ctx context.Context, bookingID uint64) ([]model.SeatAssignment, error) {
	var out []model.SeatAssignment
	for _, r := range f.rows {
		if r.BookingID == bookingID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePromos struct {
	redeemed []string
}

func (f *fakePromos) RedeemTx(ctx context.Context, tx *sql.Tx, code string) error {
	f.redeemed = append(f.redeemed, code)
	return nil
}

type fakeQuoter struct {
	quote *pricing.Breakdown
	err   error
}

func (f *fakeQuoter) Quote(ctx context.Context, flightID uint64, class model.FareClass, passengerCount uint32, promoCode string) (*pricing.Breakdown, error) {
	return f.quote, f.err
}

type capturePublisher struct {
	confirmed []int // ticket counts per confirmed event
	cancelled []string
}

func (p *capturePublisher) BookingConfirmed(b *model.Booking, tickets []model.Ticket) {
	p.confirmed = append(p.confirmed, len(tickets))
}

func (p *capturePublisher) BookingCancelled(b *model.Booking, reason string) {
	p.cancelled = append(p.cancelled, reason)
}

type engineFixture struct {
	tx         *fakeTx
	ledger     *fakeLedger
	bookings   *fakeBookings
	passengers *fakePassengers
	tickets    *fakeTickets
	seats      *fakeSeats
	promos     *fakePromos
	quoter     *fakeQuoter
	pub        *capturePublisher
	now        time.Time
	engine     *Engine
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		tx:         &fakeTx{},
		ledger:     &fakeLedger{available: 10},
		bookings:   &fakeBookings{byID: map[uint64]*model.Booking{}},
		passengers: &fakePassengers{byBooking: map[uint64][]model.Passenger{}},
		tickets:    &fakeTickets{byBooking: map[uint64][]model.Ticket{}},
		seats:      &fakeSeats{},
		promos:     &fakePromos{},
		quoter:     &fakeQuoter{quote: &pricing.Breakdown{TotalCents: 20000, Currency: "USD"}},
		pub:        &capturePublisher{},
		now:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	f.engine = NewEngine(Deps{
		Tx:         f.tx,
		Inventory:  f.ledger,
		Bookings:   f.bookings,
		Passengers: f.passengers,
		Tickets:    f.tickets,
		Seats:      f.seats,
		Promos:     f.promos,
		Pricer:     f.quoter,
		Generator:  identifier.New("176", rand.New(rand.NewSource(1))),
		Publisher:  f.pub,
	})
	f.engine.now = func() time.Time { return f.now }
	return f
}

// seedBooking plants a booking with paxCount passengers directly in
// the fakes, bypassing Create.
func (f *engineFixture) seedBooking(status string, class model.FareClass, total int64, paxCount int) *model.Booking {
	f.bookings.nextID++
	b := &model.Booking{
		ID:               f.bookings.nextID,
		PNR:              fmt.Sprintf("PNR%03d", f.bookings.nextID),
		FlightID:         7,
		FareClass:        class,
		Status:           status,
		TotalAmountCents: total,
		Currency:         "USD",
		BookingDate:      f.now,
	}
	f.bookings.byID[b.ID] = b
	for i := 0; i < paxCount; i++ {
		f.passengers.nextID++
		f.passengers.byBooking[b.ID] = append(f.passengers.byBooking[b.ID], model.Passenger{
			ID:        f.passengers.nextID,
			BookingID: b.ID,
			FirstName: fmt.Sprintf("Pax%d", i+1),
			LastName:  "Tester",
		})
	}
	return b
}

func twoPassengers() []model.Passenger {
	return []model.Passenger{
		{FirstName: "Ada", LastName: "Lovelace"},
		{FirstName: "Alan", LastName: "Turing"},
	}
}

func TestCreateReservesSeatsAndMintsBooking(t *testing.T) {
	f := newEngineFixture()
	b, quote, err := f.engine.Create(context.Background(), CreateParams{
		FlightID:   7,
		Passengers: twoPassengers(),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, model.FareClassEconomy, b.FareClass) // empty class defaults
	assert.Len(t, b.PNR, 6)
	assert.Equal(t, int64(20000), b.TotalAmountCents)
	assert.Equal(t, quote.TotalCents, b.TotalAmountCents)
	assert.Equal(t, uint32(8), f.ledger.available)
	assert.Len(t, f.passengers.byBooking[b.ID], 2)
}

func TestCreateInsufficientSeatsLeavesNothingBehind(t *testing.T) {
	f := newEngineFixture()
	f.ledger.available = 1

	_, _, err := f.engine.Create(context.Background(), CreateParams{
		FlightID:   7,
		Passengers: twoPassengers(),
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientSeats)
	assert.Equal(t, uint32(1), f.ledger.available) // counter untouched
	assert.Empty(t, f.bookings.byID)
	assert.Empty(t, f.passengers.byBooking)
	assert.Equal(t, 1, f.tx.rollbacks)
}

func TestCreateRetriesPNROnDuplicate(t *testing.T) {
	f := newEngineFixture()
	f.bookings.dupesLeft = 1

	b, _, err := f.engine.Create(context.Background(), CreateParams{
		FlightID:   7,
		Passengers: twoPassengers(),
	})
	require.NoError(t, err)
	require.Len(t, f.bookings.pnrsTried, 2)
	assert.NotEqual(t, f.bookings.pnrsTried[0], f.bookings.pnrsTried[1])
	assert.Equal(t, f.bookings.pnrsTried[1], b.PNR)
}

func TestCreateStopsAfterRetryBudget(t *testing.T) {
	f := newEngineFixture()
	f.bookings.dupesLeft = identifier.MaxAttempts + 1

	_, _, err := f.engine.Create(context.Background(), CreateParams{
		FlightID:   7,
		Passengers: twoPassengers(),
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Len(t, f.bookings.pnrsTried, identifier.MaxAttempts)
}

func TestCreateRedeemsPromo(t *testing.T) {
	f := newEngineFixture()
	f.quoter.quote = &pricing.Breakdown{TotalCents: 18000, Currency: "USD", PromoCode: "SAVE10", DiscountCents: 2000}

	_, _, err := f.engine.Create(context.Background(), CreateParams{
		FlightID:   7,
		Passengers: twoPassengers(),
		PromoCode:  "SAVE10",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"SAVE10"}, f.promos.redeemed)
}

func TestConfirmIssuesTicketsWithFullFareShare(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusPending, model.FareClassEconomy, 20000, 2)

	got, tickets, err := f.engine.UpdateStatus(context.Background(), b.ID, StatusConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	require.NotNil(t, got.ConfirmationDate)

	// Each ticket's fare is the full per-passenger share of the
	// booking total, with tax and fee computed on top of it.
	require.Len(t, tickets, 2)
	for _, tk := range tickets {
		assert.Equal(t, int64(10000), tk.FareCents)
		assert.Equal(t, int64(1000), tk.TaxCents)
		assert.Equal(t, int64(500), tk.FeeCents)
		assert.Equal(t, f.now.AddDate(0, 0, 365), tk.ExpiryDate)
		assert.Len(t, tk.TicketNumber, 13)
	}
	assert.Equal(t, []int{2}, f.pub.confirmed)
}

func TestConfirmTwiceRejected(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusConfirmed, model.FareClassEconomy, 20000, 2)

	_, _, err := f.engine.UpdateStatus(context.Background(), b.ID, StatusConfirmed, "")
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, StatusConfirmed, te.From)
}

func TestCancelRestoresAvailability(t *testing.T) {
	f := newEngineFixture()
	f.ledger.available = 7
	b := f.seedBooking(StatusConfirmed, model.FareClassBusiness, 30000, 3)

	got, _, err := f.engine.UpdateStatus(context.Background(), b.ID, StatusCancelled, "schedule change")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, uint32(10), f.ledger.available) // 3 seats back
	assert.Equal(t, model.FareClassBusiness, f.ledger.lastClass)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, "schedule change", *got.CancellationReason)
	assert.Equal(t, []string{"schedule change"}, f.pub.cancelled)
}

func TestCheckInFromPendingThenCancel(t *testing.T) {
	f := newEngineFixture()
	f.ledger.available = 8
	b := f.seedBooking(StatusPending, model.FareClassEconomy, 20000, 2)

	got, _, err := f.engine.UpdateStatus(context.Background(), b.ID, StatusCheckedIn, "")
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, got.Status)

	// A checked-in booking can still be cancelled and gives its
	// seats back.
	got, _, err = f.engine.UpdateStatus(context.Background(), b.ID, StatusCancelled, "no-show family")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, uint32(10), f.ledger.available)
}

func TestGenerateTicketsOnlyOnce(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusConfirmed, model.FareClassEconomy, 20000, 2)

	tickets, err := f.engine.GenerateTickets(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)

	_, err = f.engine.GenerateTickets(context.Background(), b.ID)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, f.tickets.byBooking[b.ID], 2) // nothing re-minted
}

func TestGenerateTicketsRequiresConfirmedBooking(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusPending, model.FareClassEconomy, 20000, 2)

	_, err := f.engine.GenerateTickets(context.Background(), b.ID)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestTicketNumbersRetryOnDuplicate(t *testing.T) {
	f := newEngineFixture()
	f.tickets.dupesLeft = 1
	b := f.seedBooking(StatusConfirmed, model.FareClassEconomy, 20000, 2)

	tickets, err := f.engine.GenerateTickets(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.NotEqual(t, tickets[0].TicketNumber, tickets[1].TicketNumber)
}

func TestAssignSeatEnforcesUniqueness(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusPending, model.FareClassBusiness, 20000, 2)
	pax := f.passengers.byBooking[b.ID]

	a, err := f.engine.AssignSeat(context.Background(), AssignSeatParams{
		BookingID: b.ID, PassengerID: pax[0].ID, SeatNumber: "12A",
	})
	require.NoError(t, err)
	assert.Equal(t, model.FareClassBusiness, a.Class) // class comes from the booking

	// Same seat for another passenger.
	_, err = f.engine.AssignSeat(context.Background(), AssignSeatParams{
		BookingID: b.ID, PassengerID: pax[1].ID, SeatNumber: "12A",
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Second seat for a passenger that already holds one.
	_, err = f.engine.AssignSeat(context.Background(), AssignSeatParams{
		BookingID: b.ID, PassengerID: pax[0].ID, SeatNumber: "12B",
	})
	assert.ErrorIs(t, err, repository.ErrConflict)

	// Passenger from another booking.
	_, err = f.engine.AssignSeat(context.Background(), AssignSeatParams{
		BookingID: b.ID, PassengerID: 999, SeatNumber: "12C",
	})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestAssignSeatRejectsCancelledBooking(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusCancelled, model.FareClassEconomy, 20000, 1)
	pax := f.passengers.byBooking[b.ID]

	_, err := f.engine.AssignSeat(context.Background(), AssignSeatParams{
		BookingID: b.ID, PassengerID: pax[0].ID, SeatNumber: "1A",
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestDeletePendingReleasesSeats(t *testing.T) {
	f := newEngineFixture()
	f.ledger.available = 8
	b := f.seedBooking(StatusPending, model.FareClassEconomy, 20000, 2)

	require.NoError(t, f.engine.Delete(context.Background(), b.ID))
	assert.Equal(t, uint32(10), f.ledger.available)
	assert.NotContains(t, f.bookings.byID, b.ID)
}

func TestDeleteConfirmedRejected(t *testing.T) {
	f := newEngineFixture()
	b := f.seedBooking(StatusConfirmed, model.FareClassEconomy, 20000, 2)

	err := f.engine.Delete(context.Background(), b.ID)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, f.bookings.byID, b.ID) // still there
}

func TestSplitAmount(t *testing.T) {
	// Even split.
	assert.Equal(t, []int64{5000, 5000}, SplitAmount(10000, 2))
	// Remainder cents land on the first share, keeping the sum exact.
	assert.Equal(t, []int64{3334, 3333, 3333}, SplitAmount(10000, 3))
	assert.Equal(t, []int64{10000}, SplitAmount(10000, 1))
	assert.Equal(t, []int64{0, 0}, SplitAmount(0, 2))

	shares := SplitAmount(99999, 7)
	var sum int64
	for _, s := range shares {
		sum += s
	}
	assert.Equal(t, int64(99999), sum)
}

func TestFareSplit(t *testing.T) {
	// The fare carries the full share; tax and fee are computed on it.
	fare, tax, fee := FareSplit(10000)
	assert.Equal(t, int64(10000), fare)
	assert.Equal(t, int64(1000), tax) // 10%
	assert.Equal(t, int64(500), fee)  // 5%

	// Percentages truncate toward zero.
	fare, tax, fee = FareSplit(3333)
	assert.Equal(t, int64(3333), fare)
	assert.Equal(t, int64(333), tax)
	assert.Equal(t, int64(166), fee)

	fare, tax, fee = FareSplit(0)
	assert.Zero(t, fare)
	assert.Zero(t, tax)
	assert.Zero(t, fee)
}
