package sqldb

import "context"

// Handle runs statements. Clients and transactions are both handles
type Handle interface {
	// Exec executes SQL statement like INSERT, UPDATE, DELETE.
	Exec(ctx context.Context, query string, args ...any) (Result, error)

	QueryRows(ctx context.Context, query string, args ...any) (Rows, error) // Eager. Fail upfront on statement execution
	QueryRow(ctx context.Context, query string, args ...any) Row            // Lazy. only fails at Scan()
}
