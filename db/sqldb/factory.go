package sqldb

import (
	"errors"
	"fmt"
)

// ClientFactory is a callback that constructs a Client from Conf.
// It is registered with RegisterFactory and called by sqldb.New.
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

var ErrUnsupportedType = errors.New("sqldb: unsupported database type")

func RegisterFactory(dbType string, factory ClientFactory) {
	registry[dbType] = factory
}

func New(conf *Conf) (Client, error) {
	factory, ok := registry[conf.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, conf.Type)
	}
	return factory(conf)
}
