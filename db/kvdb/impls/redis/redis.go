package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/zeptools/gw-invoice/db/kvdb"

	lowimpl "github.com/redis/go-redis/v9"
)

type Client struct {
	conf *kvdb.Conf

	// implementation details, not exported
	internal *lowimpl.Client
}

// Ensure redis.Client implements kvdb.Client interface
var _ kvdb.Client = (*Client)(nil)

// Register makes "redis" available to kvdb.New
func Register() {
	kvdb.RegisterFactory("redis", func(conf *kvdb.Conf) (kvdb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *kvdb.Conf) *Client {
	return &Client{conf: conf}
}

func (c *Client) Init() error {
	c.internal = lowimpl.NewClient(&lowimpl.Options{
		Addr:        c.conf.Addr(),
		Password:    c.conf.PW,
		DB:          c.conf.DB,
		DialTimeout: c.conf.DialTimeout(),
	})
	ctx, cancel := context.WithTimeout(context.Background(), c.conf.DialTimeout())
	defer cancel()
	if err := c.internal.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", c.conf.Addr(), err)
	}
	log.Printf("[INFO][redis] client initialized at %s db=%d", c.conf.Addr(), c.conf.DB)
	return nil
}

func (c *Client) Close() error {
	if c.internal == nil {
		return nil
	}
	return c.internal.Close()
}

func (c *Client) Handle() any { // *lowimpl.Client
	return c.internal
}

func (c *Client) Conf() *kvdb.Conf {
	return c.conf
}

//--- Key Ops ----

func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.internal.Exists(ctx, key).Result()
	return n > 0, err
}

func (c *Client) Delete(ctx context.Context, keys ...string) (int64, error) {
	return c.internal.Del(ctx, keys...).Result()
}

func (c *Client) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	// EXPIRE is false when the key does not exist
	return c.internal.Expire(ctx, key, expiration).Result()
}

func (c *Client) ScanKeys(ctx context.Context, cursor any, pattern string, scanBatchSize int) ([]string, any, error) {
	var cur uint64
	if cursor != nil {
		var ok bool
		if cur, ok = cursor.(uint64); !ok {
			return nil, nil, fmt.Errorf("redis: cursor must be uint64, got %T", cursor)
		}
	}
	if pattern == "" {
		pattern = "*"
	}
	keys, nextCursor, err := c.internal.Scan(ctx, cur, pattern, int64(scanBatchSize)).Result()
	if err != nil {
		return nil, nil, err
	}
	// 0 ends the iteration
	if nextCursor == 0 {
		return keys, nil, nil
	}
	return keys, nextCursor, nil
}

//---- Single-value Ops ----

func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.internal.Get(ctx, key).Result()
	if errors.Is(err, lowimpl.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return c.internal.Set(ctx, key, value, expiration).Err()
}

//---- List Ops ----

func (c *Client) Push(ctx context.Context, key, value string) error {
	// tail (right) of the list
	return c.internal.RPush(ctx, key, value).Err()
}

func (c *Client) Len(ctx context.Context, key string) (int64, error) {
	return c.internal.LLen(ctx, key).Result()
}

func (c *Client) Range(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return c.internal.LRange(ctx, key, start, stop).Result()
}

func (c *Client) Trim(ctx context.Context, key string, start, stop int64) error {
	return c.internal.LTrim(ctx, key, start, stop).Err()
}

//---- Hash Ops ----

func (c *Client) SetFields(ctx context.Context, key string, fields map[string]any) error {
	return c.internal.HSet(ctx, key, fields).Err()
}

func (c *Client) GetAllFields(ctx context.Context, key string) (map[string]string, error) {
	return c.internal.HGetAll(ctx, key).Result()
}
