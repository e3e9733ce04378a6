package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/repository"
)

type fakeStores struct {
	flight *model.Flight
	fare   *model.Fare
	taxes  []model.TaxFee
	promo  *model.PromoCode
}

func (f *fakeStores) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	if f.flight == nil || f.flight.ID != id {
		return nil, repository.ErrFlightNotFound
	}
	return f.flight, nil
}

func (f *fakeStores) GetActiveByFlightAndClass(ctx context.Context, flightID uint64, class model.FareClass) (*model.Fare, error) {
	if f.fare == nil || f.fare.FlightID != flightID || f.fare.Class != class {
		return nil, repository.ErrFareNotFound
	}
	return f.fare, nil
}

func (f *fakeStores) ListActiveByFare(ctx context.Context, fareID uint64) ([]model.TaxFee, error) {
	return f.taxes, nil
}

func (f *fakeStores) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	if f.promo == nil || f.promo.Code != code {
		return nil, repository.ErrPromoNotFound
	}
	return f.promo, nil
}

// newEngine builds an engine over the fakes with a pinned clock so
// time-to-departure adjustments are stable.
func newEngine(f *fakeStores, now time.Time) *Engine {
	e := NewEngine(f, f, f, f, DefaultPolicy())
	e.now = func() time.Time { return now }
	return e
}

func fixtures(availableSeats, bookedSeats uint32, departureIn time.Duration, now time.Time) *fakeStores {
	return &fakeStores{
		flight: &model.Flight{
			ID:                 1,
			ScheduledDeparture: now.Add(departureIn),
			TotalSeats:         180,
			AvailableSeats:     availableSeats,
			BookedSeats:        bookedSeats,
		},
		fare: &model.Fare{
			ID:             10,
			FlightID:       1,
			Class:          model.FareClassEconomy,
			BaseFareCents:  10000,
			AvailableSeats: availableSeats,
			BookedSeats:    bookedSeats,
			Currency:       "USD",
		},
	}
}

func TestQuoteDemandAdjustment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		available   uint32
		booked      uint32
		expectedPct int64
	}{
		{"high occupancy", 10, 90, 20},
		{"mid occupancy", 30, 70, 10},
		{"low occupancy", 90, 10, -10},
		{"neutral occupancy", 50, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fixtures(tt.available, tt.booked, 30*24*time.Hour, now)
			e := newEngine(f, now)
			b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 1, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPct, b.DemandPct)
			assert.Equal(t, int64(0), b.TimePct)
			assert.Equal(t, 10000+100*tt.expectedPct, b.AdjustedFareCents)
		})
	}
}

func TestQuoteTimeAdjustment(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		departureIn time.Duration
		expectedPct int64
	}{
		{"imminent departure", 3 * 24 * time.Hour, 15},
		{"near departure", 10 * 24 * time.Hour, 8},
		{"far departure", 90 * 24 * time.Hour, -5},
		{"neutral window", 30 * 24 * time.Hour, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fixtures(50, 50, tt.departureIn, now)
			e := newEngine(f, now)
			b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 2, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expectedPct, b.TimePct)
			assert.Equal(t, b.AdjustedFareCents*2, b.SubtotalCents)
		})
	}
}

func TestQuoteAdjustmentsAreAdditiveNotCompounded(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(10, 90, 3*24*time.Hour, now) // +20% demand, +15% time
	e := newEngine(f, now)
	b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 1, "")
	require.NoError(t, err)
	// 10000 + 20% + 15% additively = 13500 (compounding would give 13800).
	assert.Equal(t, int64(13500), b.AdjustedFareCents)
}

func TestQuotePerPassengerFareFlooredAtZero(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(90, 10, 90*24*time.Hour, now) // -10% and -5%
	f.fare.AdjustmentCents = -20000            // standing markdown larger than the base
	e := newEngine(f, now)
	b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.AdjustedFareCents)
	assert.Equal(t, int64(0), b.SubtotalCents)
}

func TestQuoteInsufficientSeats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(2, 98, 30*24*time.Hour, now)
	e := newEngine(f, now)
	_, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 3, "")
	assert.ErrorIs(t, err, repository.ErrInsufficientSeats)
}

func TestQuoteUnknownFareClass(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(50, 50, 30*24*time.Hour, now)
	e := newEngine(f, now)
	_, err := e.Quote(context.Background(), 1, model.FareClassFirst, 1, "")
	assert.ErrorIs(t, err, repository.ErrFareNotFound)
}

func TestQuoteTaxFeeAssembly(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(50, 50, 30*24*time.Hour, now)
	f.taxes = []model.TaxFee{
		{Name: "Airport Tax", Type: model.TaxFeeAirportTax, CalcType: model.TaxFeeCalcFixed, AmountCents: 500},
		// 7.5% of the 10000 base fare = 750, clamped up to 800.
		{Name: "Security Fee", Type: model.TaxFeeSecurityFee, CalcType: model.TaxFeeCalcPercentage, AmountCents: 750, MinCents: 800},
		{Name: "Service Fee", Type: model.TaxFeeServiceFee, CalcType: model.TaxFeeCalcPerPassenger, AmountCents: 300},
	}
	e := newEngine(f, now)
	b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 2, "")
	require.NoError(t, err)

	// Airport tax and security fee land in taxes, the service fee in fees.
	require.Len(t, b.Taxes, 2)
	require.Len(t, b.Fees, 1)
	assert.Equal(t, int64(500*2+800*2), b.TaxCents)
	assert.Equal(t, int64(300*2), b.FeeCents)
	assert.Equal(t, b.SubtotalCents+b.TaxCents+b.FeeCents, b.TotalCents)
}

func promoFixture(now time.Time) *model.PromoCode {
	return &model.PromoCode{
		Code:          "SPRING25",
		DiscountType:  model.DiscountPercentage,
		DiscountValue: 25,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidTo:       now.Add(24 * time.Hour),
		Status:        model.PromoActive,
	}
}

func TestQuoteWithPercentageDiscountCapped(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(50, 50, 30*24*time.Hour, now)
	f.promo = promoFixture(now)
	f.promo.MaxDiscountCents = 1000
	e := newEngine(f, now)
	b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 1, "SPRING25")
	require.NoError(t, err)
	// 25% of 10000 would be 2500; the cap wins.
	assert.Equal(t, int64(1000), b.DiscountCents)
	assert.Equal(t, int64(9000), b.TotalCents)
}

func TestQuoteFixedDiscountFloorsTotalAtZero(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := fixtures(50, 50, 30*24*time.Hour, now)
	f.promo = promoFixture(now)
	f.promo.DiscountType = model.DiscountFixed
	f.promo.DiscountValue = 99999
	e := newEngine(f, now)
	b, err := e.Quote(context.Background(), 1, model.FareClassEconomy, 1, "SPRING25")
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.TotalCents)
}

func TestValidatePromoRules(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	business := model.FareClassBusiness

	tests := []struct {
		name     string
		mutate   func(p *model.PromoCode)
		code     string
		purchase int64
		class    model.FareClass
		reason   string
	}{
		{
			name:   "unknown code",
			code:   "NOPE",
			reason: "promo code does not exist",
		},
		{
			name:   "inactive code",
			mutate: func(p *model.PromoCode) { p.Status = model.PromoInactive },
			reason: "promo code is not active",
		},
		{
			name:   "expired window",
			mutate: func(p *model.PromoCode) { p.ValidTo = now.Add(-time.Hour) },
			reason: "promo code is outside its validity period",
		},
		{
			name:   "usage cap reached",
			mutate: func(p *model.PromoCode) { p.MaxUses = 5; p.CurrentUses = 5 },
			reason: "promo code usage limit reached",
		},
		{
			name:     "below minimum purchase",
			mutate:   func(p *model.PromoCode) { p.MinPurchaseCents = 15000 },
			purchase: 10000,
			reason:   "purchase amount is below the promo code minimum",
		},
		{
			name:   "fare class restricted",
			mutate: func(p *model.PromoCode) { p.ApplicableFareClass = &business },
			class:  model.FareClassEconomy,
			reason: "promo code does not apply to this fare class",
		},
		{
			name:     "valid",
			purchase: 20000,
			reason:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fixtures(50, 50, 30*24*time.Hour, now)
			f.promo = promoFixture(now)
			if tt.mutate != nil {
				tt.mutate(f.promo)
			}
			code := tt.code
			if code == "" {
				code = "SPRING25"
			}
			e := newEngine(f, now)
			reason, err := e.ValidatePromo(context.Background(), code, tt.purchase, tt.class)
			require.NoError(t, err)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
