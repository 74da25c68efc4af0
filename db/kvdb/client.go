package kvdb

import (
	"context"
	"errors"
	"time"
)

type Client interface {
	Init() error
	Close() error
	Handle() any // backend handle, use with runtime type assertion
	Conf() *Conf

	//---- Key Ops ----

	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) (int64, error)
	// Expire sets/updates expiration for a key
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) // found & updated, err

	// ScanKeys iterates over keys matching pattern in batches.
	// The cursor is backend-specific and opaque to callers; nil starts a scan
	// and a nil nextCursor ends it. Batch sizes are a hint.
	ScanKeys(ctx context.Context, cursor any, pattern string, scanBatchSize int) ([]string, any, error)

	//---- Single-value Ops ----

	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error) // val, found, err

	//---- List Ops ----

	Push(ctx context.Context, key string, value string) error
	Len(ctx context.Context, key string) (int64, error)
	Range(ctx context.Context, key string, start int64, stop int64) ([]string, error) // 0-basis, stop inclusive, negatives from the tail
	Trim(ctx context.Context, key string, start int64, stop int64) error              // 0-basis, stop inclusive, negatives from the tail

	//---- Hash Ops ----

	SetFields(ctx context.Context, key string, fields map[string]any) error
	// GetAllFields returns an empty map when the key is missing
	GetAllFields(ctx context.Context, key string) (map[string]string, error)
}

var ErrNotSupported = errors.New("kvdb: operation not supported")

// ErrWrongType is returned when a key holds a different kind of value
var ErrWrongType = errors.New("kvdb: wrong value type for key")
