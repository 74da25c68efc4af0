package sqldb

import "context"

// Tx Transaction
type Tx interface {
	Handle
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// InTx runs fn inside a transaction. fn's error rolls back, nil commits
func InTx(ctx context.Context, c Client, fn func(tx Tx) error) error {
	tx, err := c.BeginTx(ctx)
	if err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
