package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// PromoRepo provides data access to the promo_codes table.
type PromoRepo struct {
	db *sql.DB
}

// NewPromoRepo returns a new PromoRepo bound to the given database.
func NewPromoRepo(db *sql.DB) *PromoRepo { return &PromoRepo{db: db} }

const promoColumns = `id, code, discount_type, discount_value, max_discount_cents, min_purchase_cents,
	valid_from, valid_to, max_uses, max_uses_per_user, current_uses, applicable_fare_class,
	status, created_at, updated_at`

func scanPromo(row interface{ Scan(...any) error }) (*model.PromoCode, error) {
	var p model.PromoCode
	var class sql.NullString
	if err := row.Scan(
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &p.MaxDiscountCents, &p.MinPurchaseCents,
		&p.ValidFrom, &p.ValidTo, &p.MaxUses, &p.MaxUsesPerUser, &p.CurrentUses, &class,
		&p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if class.Valid {
		fc := model.FareClass(class.String)
		p.ApplicableFareClass = &fc
	}
	return &p, nil
}

// GetByCode returns the promo code row for the given code string, or
// ErrPromoNotFound when it does not exist. Validation of status,
// window, caps and applicability lives in the pricing engine; this
// lookup is deliberately unconditional so validation can name the
// exact rule that failed.
func (r *PromoRepo) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	const q = `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = ?`
	p, err := scanPromo(r.db.QueryRowContext(ctx, q, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromoNotFound
		}
		return nil, err
	}
	return p, nil
}

// RedeemTx records one use of a promo code inside the caller's
// transaction. The increment is guarded against the global cap in
// the UPDATE itself; when the cap is reached the status flips to
// USED_UP in the same statement. It returns ErrConflict when the
// code has no uses left.
func (r *PromoRepo) RedeemTx(ctx context.Context, tx *sql.Tx, code string) error {
	const q = `UPDATE promo_codes
	           SET current_uses = current_uses + 1,
	               status = CASE WHEN max_uses > 0 AND current_uses + 1 >= max_uses THEN ? ELSE status END
	           WHERE code = ? AND status = ? AND (max_uses = 0 OR current_uses < max_uses)`
	res, err := tx.ExecContext(ctx, q, model.PromoUsedUp, code, model.PromoActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var one int
		if err := tx.QueryRowContext(ctx, `SELECT 1 FROM promo_codes WHERE code = ?`, code).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrPromoNotFound
			}
			return err
		}
		return ErrConflict
	}
	return nil
}
