package repository

import (
	"context"
	"database/sql"
)

// TxRunner runs a function inside a database transaction. The booking
// engine drives all of its mutations through it so that each
// operation is exactly one transaction.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner returns a TxRunner bound to the given database.
func NewTxRunner(db *sql.DB) *TxRunner { return &TxRunner{db: db} }

// InTx begins a transaction, runs fn inside it and commits. Any error
// from fn rolls the transaction back and is returned unchanged.
func (r *TxRunner) InTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
