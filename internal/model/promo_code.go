package model

import "time"

// Discount types supported by promotional codes.
const (
    DiscountPercentage = "PERCENTAGE"
    DiscountFixed      = "FIXED_AMOUNT"
)

// Promotional code statuses.  A code is advanced to USED_UP once its
// global usage cap is reached.
const (
    PromoActive   = "ACTIVE"
    PromoInactive = "INACTIVE"
    PromoUsedUp   = "USED_UP"
)

// PromoCode is a discount rule keyed by a unique code string.
//
// Fields:
//  ID                     – primary key identifier.
//  Code                   – unique promotional code.
//  DiscountType           – PERCENTAGE or FIXED_AMOUNT.
//  DiscountValue          – percentage (0–100) or fixed amount in cents.
//  MaxDiscountCents       – cap for percentage discounts (0 = uncapped).
//  MinPurchaseCents       – minimum purchase amount (0 = none).
//  ValidFrom              – start of validity window.
//  ValidTo                – end of validity window.
//  MaxUses                – global usage cap (0 = unlimited).
//  MaxUsesPerUser         – per-user usage cap (0 = unlimited).
//  CurrentUses            – number of times the code has been used.
//  ApplicableFareClass    – restricts the code to one class (nil = any).
//  Status                 – ACTIVE, INACTIVE or USED_UP.
//  CreatedAt              – creation timestamp.
//  UpdatedAt              – last update timestamp.
type PromoCode struct {
    ID                  uint64     // promo_codes.id
    Code                string     // promo_codes.code
    DiscountType        string     // promo_codes.discount_type
    DiscountValue       int64      // promo_codes.discount_value
    MaxDiscountCents    int64      // promo_codes.max_discount_cents
    MinPurchaseCents    int64      // promo_codes.min_purchase_cents
    ValidFrom           time.Time  // promo_codes.valid_from
    ValidTo             time.Time  // promo_codes.valid_to
    MaxUses             uint32     // promo_codes.max_uses
    MaxUsesPerUser      uint32     // promo_codes.max_uses_per_user
    CurrentUses         uint32     // promo_codes.current_uses
    ApplicableFareClass *FareClass // promo_codes.applicable_fare_class (nullable)
    Status              string     // promo_codes.status
    CreatedAt           time.Time  // promo_codes.created_at
    UpdatedAt           time.Time  // promo_codes.updated_at
}
