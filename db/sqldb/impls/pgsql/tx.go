package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Tx struct {
	tx pgx.Tx
}

// Ensure pgsql.Tx implements sqldb.Tx
var _ sqldb.Tx = (*Tx)(nil)

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := t.tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return &Result{tag: tag}, nil
}

func (t *Tx) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{current: rows}, nil
}

func (t *Tx) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: t.tx.QueryRow(ctx, query, args...)}
}
