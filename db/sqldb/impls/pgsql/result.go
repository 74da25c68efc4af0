package pgsql

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

type Result struct {
	tag pgconn.CommandTag
}

// Ensure pgsql.Result implements sqldb.Result
var _ sqldb.Result = (*Result)(nil)

func (r *Result) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}

// LastInsertId - PostgreSQL does not support LastInsertId.
func (r *Result) LastInsertId() (int64, error) {
	return 0, fmt.Errorf("LastInsertId not supported; use `RETURNING id` instead")
}
