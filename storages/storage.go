// Package storages copies rendered documents to durable storage.
package storages

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// Conf - .storages.json
type Conf struct {
	Type string `json:"type"` // s3, local

	// s3
	Bucket          string `json:"bucket"`
	Region          string `json:"region"`
	Endpoint        string `json:"endpoint"` // optional, S3-compatible services
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	PathStyle       bool   `json:"path_style"`

	// local
	Dir string `json:"dir"`

	Prefix string `json:"prefix"` // prepended to every object key
}

// ErrInvalidName is returned for object names that are not a single plain path element
var ErrInvalidName = errors.New("storages: invalid object name")

// ValidName reports whether name can be used as one object under the prefix
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// ObjectKey joins the configured prefix and name. name must be a single path element
func (c *Conf) ObjectKey(name string) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if c.Prefix == "" {
		return name, nil
	}
	return path.Join(strings.Trim(c.Prefix, "/"), name), nil
}

// Store puts an object and returns where it can be found
type Store interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}

type StoreFactory func(conf *Conf) (Store, error)

var registry = map[string]StoreFactory{}

var ErrUnsupportedType = errors.New("storages: unsupported storage type")

func RegisterFactory(storageType string, factory StoreFactory) {
	registry[storageType] = factory
}

func New(conf *Conf) (Store, error) {
	factory, ok := registry[conf.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, conf.Type)
	}
	return factory(conf)
}
