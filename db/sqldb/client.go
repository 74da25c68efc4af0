package sqldb

import "context"

type Client interface {
	Init() error
	Open(ctx context.Context) error
	Close() error
	Handle // Methods required for Handle are also required, so, promote it
	Conf() *Conf
	DSN() string
	Ping(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
}
