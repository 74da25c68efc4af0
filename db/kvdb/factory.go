package kvdb

import (
	"errors"
	"fmt"
)

// ClientFactory constructs a Client from Conf. Backends register one with RegisterFactory
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

var ErrUnsupportedType = errors.New("kvdb: unsupported database type")

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
