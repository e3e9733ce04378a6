package model

import "time"

// TaxFee types.  Airport tax, security fee and the passenger
// facility charge are reported in the "taxes" bucket of a price
// breakdown; every other type lands in "fees".
const (
    TaxFeeAirportTax        = "AIRPORT_TAX"
    TaxFeeSecurityFee       = "SECURITY_FEE"
    TaxFeeFacilityCharge    = "PASSENGER_FACILITY_CHARGE"
    TaxFeeFuelSurcharge     = "FUEL_SURCHARGE"
    TaxFeeServiceFee        = "SERVICE_FEE"
    TaxFeeBookingFee        = "BOOKING_FEE"
)

// Calculation types for a TaxFee.
const (
    TaxFeeCalcFixed        = "FIXED"
    TaxFeeCalcPercentage   = "PERCENTAGE"
    TaxFeeCalcPerPassenger = "PER_PASSENGER"
)

// TaxFee is a tax or fee attached to a fare.  FIXED and
// PER_PASSENGER amounts are cents per passenger; PERCENTAGE amounts
// are basis points of the per-passenger base fare, clamped to
// [MinCents, MaxCents] when those bounds are set.
type TaxFee struct {
    ID          uint64    // tax_fees.id
    FareID      uint64    // tax_fees.fare_id
    Name        string    // tax_fees.name
    Type        string    // tax_fees.fee_type
    CalcType    string    // tax_fees.calc_type
    AmountCents int64     // tax_fees.amount_cents (or basis points for PERCENTAGE)
    MinCents    int64     // tax_fees.min_cents (0 = no lower bound)
    MaxCents    int64     // tax_fees.max_cents (0 = no upper bound)
    IsActive    bool      // tax_fees.is_active
    CreatedAt   time.Time // tax_fees.created_at
}

// IsTaxBucket reports whether the fee type belongs to the "taxes"
// bucket of a price breakdown.
func IsTaxBucket(feeType string) bool {
    switch feeType {
    case TaxFeeAirportTax, TaxFeeSecurityFee, TaxFeeFacilityCharge:
        return true
    }
    return false
}
