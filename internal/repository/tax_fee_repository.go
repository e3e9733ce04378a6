package repository

import (
	"context"
	"database/sql"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// TaxFeeRepo provides read access to the tax_fees table. Taxes and
// fees attach to fares and are evaluated by the pricing engine when
// assembling a quote.
type TaxFeeRepo struct {
	db *sql.DB
}

// NewTaxFeeRepo returns a new TaxFeeRepo bound to the given database.
func NewTaxFeeRepo(db *sql.DB) *TaxFeeRepo { return &TaxFeeRepo{db: db} }

// ListActiveByFare returns all active taxes and fees attached to a
// fare. When none exist it returns an empty slice.
func (r *TaxFeeRepo) ListActiveByFare(ctx context.Context, fareID uint64) ([]model.TaxFee, error) {
	const q = `SELECT id, fare_id, name, fee_type, calc_type, amount_cents, min_cents, max_cents, is_active, created_at
	           FROM tax_fees WHERE fare_id = ? AND is_active = 1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, fareID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TaxFee, 0)
	for rows.Next() {
		var t model.TaxFee
		if err := rows.Scan(
			&t.ID, &t.FareID, &t.Name, &t.Type, &t.CalcType,
			&t.AmountCents, &t.MinCents, &t.MaxCents, &t.IsActive, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
