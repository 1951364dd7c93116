package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

type sqlxTxRunner struct {
	db *sqlx.DB
}

// NewTxRunner returns a TxRunner backed by database transactions. A payment's
// receipt and allocation entries are written through one RunInTx call, so they
// commit together or not at all.
func NewTxRunner(db *sqlx.DB) TxRunner {
	return &sqlxTxRunner{db: db}
}

func (r *sqlxTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit()
}

// ext returns the transaction carried by ctx, or the bare connection pool when
// the call is not part of a transaction.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}
