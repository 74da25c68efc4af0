package sqldb

import "errors"

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	RowsAffected() (int64, error)
	LastInsertId() (int64, error)
}

// ErrNoRows is returned by Row.Scan when the query selected nothing
var ErrNoRows = errors.New("sqldb: no rows in result set")

// ErrDuplicateKey wraps a driver error raised by a unique or primary key
// violation, e.g. an archive row inserted twice under the same id
var ErrDuplicateKey = errors.New("sqldb: duplicate key")
