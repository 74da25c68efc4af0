package mysql

import (
	"context"
	"database/sql"

	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Handle struct {
	*sql.DB // [Embedded]
}

// Ensure mysql.Handle implements sqldb.Handle interface
var _ sqldb.Handle = (*Handle)(nil)

func (h *Handle) Exec(ctx context.Context, query string, args ...any) (sqldb.Result, error) {
	result, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	return result, nil
}

func (h *Handle) QueryRows(ctx context.Context, query string, args ...any) (sqldb.Rows, error) {
	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *Handle) QueryRow(ctx context.Context, query string, args ...any) sqldb.Row {
	return &Row{row: h.DB.QueryRowContext(ctx, query, args...)}
}
