package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Handle struct {
	*pgxpool.Pool // [Embedded]
}

var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	tag, err := h.Pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return &Result{tag: tag}, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &Rows{current: rows}, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: h.Pool.QueryRow(ctx, query, args...)}
}
