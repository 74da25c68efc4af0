package pgsql

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeptools/gw-invoice/db/sqldb"
)

// unique_violation
const sqlStateUniqueViolation = "23505"

type Row struct {
	row pgx.Row
}

// Ensure pgsql.Row implements sqldb.Row interface
var _ sqldb.Row = (*Row)(nil)

func (r *Row) Scan(dest ...any) error {
	return translate(scanBools(r.row.Scan, dest))
}

// translate maps driver errors onto the sqldb sentinels
func translate(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sqldb.ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation {
		return fmt.Errorf("%w: %s", sqldb.ErrDuplicateKey, pgErr.Message)
	}
	return err
}

// scanBools scans *bool targets through int16 so SMALLINT flag columns
// read the same on pgsql and mysql
func scanBools(scan func(dest ...any) error, dest []any) error {
	raw := make([]any, len(dest))
	for i, d := range dest {
		switch d.(type) {
		case *bool:
			raw[i] = new(int16)
		default:
			raw[i] = d
		}
	}
	if err := scan(raw...); err != nil {
		return err
	}
	for i, d := range dest {
		if v, ok := d.(*bool); ok {
			*v = *(raw[i].(*int16)) != 0
		}
	}
	return nil
}
