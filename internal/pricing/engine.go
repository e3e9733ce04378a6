package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

// Stores consumed by the engine. The repository types satisfy these;
// tests substitute fakes.
type FlightStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
}

type FareStore interface {
	GetActiveByFlightAndClass(ctx context.Context, flightID uint64, class model.FareClass) (*model.Fare, error)
}

type TaxFeeStore interface {
	ListActiveByFare(ctx context.Context, fareID uint64) ([]model.TaxFee, error)
}

type PromoStore interface {
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)
}

// InvalidPromoError reports why a promotional code was rejected.
// Each validation rule produces a distinct human-readable reason.
type InvalidPromoError struct {
	Reason string
}

func (e *InvalidPromoError) Error() string {
	return "invalid promo code: " + e.Reason
}

// LineItem is one evaluated tax or fee in a breakdown, already
// multiplied across all passengers.
type LineItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
}

// Breakdown is a fully assembled quote for a passenger count on one
// flight and fare class. All amounts are in cents of Currency.
type Breakdown struct {
	FlightID          uint64          `json:"flight_id"`
	Class             model.FareClass `json:"fare_class"`
	Passengers        uint32          `json:"passengers"`
	Currency          string          `json:"currency"`
	BaseFareCents     int64           `json:"base_fare_cents"`     // per passenger, before adjustment
	AdjustedFareCents int64           `json:"adjusted_fare_cents"` // per passenger, after adjustment
	DemandPct         int64           `json:"demand_adjustment_pct"`
	TimePct           int64           `json:"time_adjustment_pct"`
	SubtotalCents     int64           `json:"subtotal_cents"` // adjusted fare x passengers
	Taxes             []LineItem      `json:"taxes"`
	Fees              []LineItem      `json:"fees"`
	TaxCents          int64           `json:"tax_cents"`
	FeeCents          int64           `json:"fee_cents"`
	PromoCode         string          `json:"promo_code,omitempty"`
	DiscountCents     int64           `json:"discount_cents"`
	TotalCents        int64           `json:"total_cents"`
}

// Engine computes price quotes. now is injectable for tests.
type Engine struct {
	flights FlightStore
	fares   FareStore
	taxes   TaxFeeStore
	promos  PromoStore
	policy  Policy
	now     func() time.Time
}

// NewEngine constructs an Engine over the given stores and policy.
func NewEngine(flights FlightStore, fares FareStore, taxes TaxFeeStore, promos PromoStore, policy Policy) *Engine {
	return &Engine{
		flights: flights,
		fares:   fares,
		taxes:   taxes,
		promos:  promos,
		policy:  policy,
		now:     time.Now,
	}
}

// Quote prices passengerCount seats in the given fare class on the
// flight, optionally applying a promotional code. It returns
// repository.ErrFareNotFound / ErrFlightNotFound when the offering
// does not exist, repository.ErrInsufficientSeats when the class
// cannot seat the party, and *InvalidPromoError when the promo code
// fails validation.
func (e *Engine) Quote(ctx context.Context, flightID uint64, class model.FareClass, passengerCount uint32, promoCode string) (*Breakdown, error) {
	if passengerCount == 0 {
		return nil, fmt.Errorf("passenger count must be positive")
	}
	fare, err := e.fares.GetActiveByFlightAndClass(ctx, flightID, class)
	if err != nil {
		return nil, err
	}
	if fare.AvailableSeats < passengerCount {
		return nil, repository.ErrInsufficientSeats
	}
	flight, err := e.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()

	// Demand signal: booked fraction of the class allotment.
	occupancy := 0.0
	if seats := fare.BookedSeats + fare.AvailableSeats; seats > 0 {
		occupancy = float64(fare.BookedSeats) / float64(seats)
	}
	demandPct := e.policy.DemandPct(occupancy)
	timePct := e.policy.TimePct(flight.ScheduledDeparture.Sub(now).Hours() / 24)

	// Both adjustments are additive on the base fare; the fare's own
	// standing adjustment is carried through unchanged. The
	// per-passenger price never goes below zero.
	perPassenger := fare.BaseFareCents + fare.AdjustmentCents +
		pctOf(fare.BaseFareCents, demandPct) + pctOf(fare.BaseFareCents, timePct)
	if perPassenger < 0 {
		perPassenger = 0
	}

	b := &Breakdown{
		FlightID:          flightID,
		Class:             class,
		Passengers:        passengerCount,
		Currency:          fare.Currency,
		BaseFareCents:     fare.BaseFareCents,
		AdjustedFareCents: perPassenger,
		DemandPct:         demandPct,
		TimePct:           timePct,
		SubtotalCents:     perPassenger * int64(passengerCount),
		Taxes:             []LineItem{},
		Fees:              []LineItem{},
	}

	charges, err := e.taxes.ListActiveByFare(ctx, fare.ID)
	if err != nil {
		return nil, err
	}
	for _, tf := range charges {
		amount := evalTaxFee(tf, fare.BaseFareCents, passengerCount)
		item := LineItem{Name: tf.Name, Type: tf.Type, AmountCents: amount}
		if model.IsTaxBucket(tf.Type) {
			b.Taxes = append(b.Taxes, item)
			b.TaxCents += amount
		} else {
			b.Fees = append(b.Fees, item)
			b.FeeCents += amount
		}
	}

	total := b.SubtotalCents + b.TaxCents + b.FeeCents

	if promoCode != "" {
		promo, reason, err := e.validatePromo(ctx, promoCode, total, class, now)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			return nil, &InvalidPromoError{Reason: reason}
		}
		b.PromoCode = promo.Code
		b.DiscountCents = discountFor(promo, total)
		total -= b.DiscountCents
	}
	if total < 0 {
		total = 0
	}
	b.TotalCents = total
	return b, nil
}

// ValidatePromo checks a promotional code against a purchase amount
// and fare class without pricing anything. It returns ("", nil) when
// the code is usable, or the human-readable rejection reason.
// purchaseCents and class may be zero values when unknown; the
// corresponding rules are then skipped.
func (e *Engine) ValidatePromo(ctx context.Context, code string, purchaseCents int64, class model.FareClass) (string, error) {
	_, reason, err := e.validatePromo(ctx, code, purchaseCents, class, e.now().UTC())
	return reason, err
}

// validatePromo applies the validation rules in order; the first
// failure wins.
func (e *Engine) validatePromo(ctx context.Context, code string, purchaseCents int64, class model.FareClass, now time.Time) (*model.PromoCode, string, error) {
	promo, err := e.promos.GetByCode(ctx, code)
	if err != nil {
		if err == repository.ErrPromoNotFound {
			return nil, "promo code does not exist", nil
		}
		return nil, "", err
	}
	if promo.Status != model.PromoActive {
		return promo, "promo code is not active", nil
	}
	if now.Before(promo.ValidFrom) || now.After(promo.ValidTo) {
		return promo, "promo code is outside its validity period", nil
	}
	if promo.MaxUses > 0 && promo.CurrentUses >= promo.MaxUses {
		return promo, "promo code usage limit reached", nil
	}
	if promo.MinPurchaseCents > 0 && purchaseCents < promo.MinPurchaseCents {
		return promo, "purchase amount is below the promo code minimum", nil
	}
	if promo.ApplicableFareClass != nil && class != "" && class != *promo.ApplicableFareClass {
		return promo, "promo code does not apply to this fare class", nil
	}
	return promo, "", nil
}

// discountFor computes the discount a valid promo grants on the
// given amount. Percentage discounts honor the code's cap.
func discountFor(p *model.PromoCode, amountCents int64) int64 {
	var d int64
	switch p.DiscountType {
	case model.DiscountPercentage:
		d = amountCents * p.DiscountValue / 100
		if p.MaxDiscountCents > 0 && d > p.MaxDiscountCents {
			d = p.MaxDiscountCents
		}
	case model.DiscountFixed:
		d = p.DiscountValue
	}
	if d < 0 {
		d = 0
	}
	return d
}

// evalTaxFee evaluates one tax/fee row across the whole party.
// PERCENTAGE amounts are basis points of the per-passenger base
// fare, clamped to the row's bounds before multiplying by the
// passenger count.
func evalTaxFee(tf model.TaxFee, baseFareCents int64, passengers uint32) int64 {
	switch tf.CalcType {
	case model.TaxFeeCalcPercentage:
		per := baseFareCents * tf.AmountCents / 10000
		if tf.MinCents > 0 && per < tf.MinCents {
			per = tf.MinCents
		}
		if tf.MaxCents > 0 && per > tf.MaxCents {
			per = tf.MaxCents
		}
		return per * int64(passengers)
	default:
		// FIXED and PER_PASSENGER are both per-passenger amounts.
		return tf.AmountCents * int64(passengers)
	}
}

// pctOf returns pct percent of amount, truncated toward zero.
func pctOf(amount, pct int64) int64 {
	return amount * pct / 100
}
