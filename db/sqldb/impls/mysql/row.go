package mysql

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

// ER_DUP_ENTRY
const errDupEntry = 1062

// Row defers the query error to Scan, as database/sql does
type Row struct {
	row *sql.Row
}

// Ensure mysql.Row implements sqldb.Row interface
var _ sqldb.Row = (*Row)(nil)

func (r *Row) Scan(dest ...any) error {
	return translate(r.row.Scan(dest...))
}

// translate maps driver errors onto the sqldb sentinels and passes the
// rest through unchanged
func translate(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return sqldb.ErrNoRows
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDupEntry {
		return fmt.Errorf("%w: %s", sqldb.ErrDuplicateKey, myErr.Message)
	}
	return err
}
