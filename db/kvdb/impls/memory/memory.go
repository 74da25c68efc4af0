// Package memory is an in-process kvdb backend. It backs the render cache
// when no redis is configured and stands in for redis in tests.
package memory

import (
	"context"
	"fmt"
	"path"
	"slices"
	"sync"
	"time"

	"github.com/zeptools/gw-invoice/db/kvdb"
)

type entry struct {
	str     string
	list    []string
	hash    map[string]string
	kind    byte // 's', 'l', 'h'
	expires time.Time
}

type Client struct {
	conf *kvdb.Conf
	now  func() time.Time

	mu   sync.Mutex
	data map[string]*entry
}

var _ kvdb.Client = (*Client)(nil)

// Register makes "memory" available to kvdb.New
func Register() {
	kvdb.RegisterFactory("memory", func(conf *kvdb.Conf) (kvdb.Client, error) {
		return NewClient(conf), nil
	})
}

func NewClient(conf *kvdb.Conf) *Client {
	if conf == nil {
		conf = &kvdb.Conf{Type: "memory"}
	}
	return &Client{conf: conf, now: time.Now, data: make(map[string]*entry)}
}

// SetClock replaces the expiry clock
func (c *Client) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Client) Init() error  { return nil }
func (c *Client) Close() error { return nil }
func (c *Client) Handle() any  { return c }

func (c *Client) Conf() *kvdb.Conf {
	return c.conf
}

// live returns the entry under key, dropping it when expired. Caller holds mu
func (c *Client) live(key string) *entry {
	e, ok := c.data[key]
	if !ok {
		return nil
	}
	if !e.expires.IsZero() && !c.now().Before(e.expires) {
		delete(c.data, key)
		return nil
	}
	return e
}

func (c *Client) typed(key string, kind byte, create bool) (*entry, error) {
	e := c.live(key)
	if e == nil {
		if !create {
			return nil, nil
		}
		e = &entry{kind: kind}
		c.data[key] = e
		return e, nil
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %s", kvdb.ErrWrongType, key)
	}
	return e, nil
}

//--- Key Ops ----

func (c *Client) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live(key) != nil, nil
}

func (c *Client) Delete(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if c.live(k) != nil {
			delete(c.data, k)
			n++
		}
	}
	return n, nil
}

func (c *Client) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.live(key)
	if e == nil {
		return false, nil
	}
	if expiration <= 0 {
		delete(c.data, key)
		return true, nil
	}
	e.expires = c.now().Add(expiration)
	return true, nil
}

// ScanKeys walks keys in sorted order; the cursor is the int offset of the next batch
func (c *Client) ScanKeys(_ context.Context, cursor any, pattern string, scanBatchSize int) ([]string, any, error) {
	offset := 0
	if cursor != nil {
		var ok bool
		if offset, ok = cursor.(int); !ok {
			return nil, nil, fmt.Errorf("memory: cursor must be int, got %T", cursor)
		}
	}
	if pattern == "" {
		pattern = "*"
	}
	if scanBatchSize <= 0 {
		scanBatchSize = 10
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	all := make([]string, 0, len(c.data))
	for k := range c.data {
		if c.live(k) != nil {
			all = append(all, k)
		}
	}
	slices.Sort(all)
	if offset >= len(all) {
		return nil, nil, nil
	}
	end := min(offset+scanBatchSize, len(all))
	var keys []string
	for _, k := range all[offset:end] {
		matched, err := path.Match(pattern, k)
		if err != nil {
			return nil, nil, err
		}
		if matched {
			keys = append(keys, k)
		}
	}
	if end == len(all) {
		return keys, nil, nil
	}
	return keys, end, nil
}

//---- Single-value Ops ----

func (c *Client) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &entry{kind: 's', str: stringify(value)}
	if expiration > 0 {
		e.expires = c.now().Add(expiration)
	}
	c.data[key] = e
	return nil
}

func (c *Client) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 's', false)
	if err != nil || e == nil {
		return "", false, err
	}
	return e.str, true, nil
}

//---- List Ops ----

func (c *Client) Push(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'l', true)
	if err != nil {
		return err
	}
	e.list = append(e.list, value)
	return nil
}

func (c *Client) Len(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'l', false)
	if err != nil || e == nil {
		return 0, err
	}
	return int64(len(e.list)), nil
}

func (c *Client) Range(_ context.Context, key string, start, stop int64) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'l', false)
	if err != nil || e == nil {
		return []string{}, err
	}
	lo, hi, ok := span(int64(len(e.list)), start, stop)
	if !ok {
		return []string{}, nil
	}
	return slices.Clone(e.list[lo:hi]), nil
}

func (c *Client) Trim(_ context.Context, key string, start, stop int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'l', false)
	if err != nil || e == nil {
		return err
	}
	lo, hi, ok := span(int64(len(e.list)), start, stop)
	if !ok {
		delete(c.data, key)
		return nil
	}
	e.list = slices.Clone(e.list[lo:hi])
	return nil
}

// span converts inclusive, possibly negative, list indexes to a slice range
func span(n, start, stop int64) (int64, int64, bool) {
	if start < 0 {
		start = max(n+start, 0)
	}
	if stop < 0 {
		stop = n + stop
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop + 1, true
}

//---- Hash Ops ----

func (c *Client) SetFields(_ context.Context, key string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'h', true)
	if err != nil {
		return err
	}
	if e.hash == nil {
		e.hash = make(map[string]string, len(fields))
	}
	for f, v := range fields {
		e.hash[f] = stringify(v)
	}
	return nil
}

func (c *Client) GetAllFields(_ context.Context, key string) (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, err := c.typed(key, 'h', false)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if e != nil {
		for f, v := range e.hash {
			out[f] = v
		}
	}
	return out, nil
}

// stringify follows what redis stores for the same argument
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
