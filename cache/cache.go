// Package cache keeps rendered invoices in a kvdb backend. Renders are
// deterministic, so the canonical JSON of the invoice identifies the bytes.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/zeptools/gw-invoice/db/kvdb"
	"github.com/zeptools/gw-invoice/invoice"
	"github.com/zeptools/gw-invoice/sec"
)

// Conf - the render cache part of .kv-databases.json
type Conf struct {
	TTLSec        int    `json:"cache_ttl_sec"`  // 0 = 3600
	EncryptionKey string `json:"encryption_key"` // optional, 32 bytes raw or base64
	Prefix        string `json:"prefix"`         // "" = "inv:"
	RecentKeep    int    `json:"recent_keep"`    // 0 = 100
}

func (c Conf) TTL() time.Duration {
	if c.TTLSec > 0 {
		return time.Duration(c.TTLSec) * time.Second
	}
	return time.Hour
}

// Entry describes one cached render
type Entry struct {
	Key       string           `json:"key"`
	Number    string           `json:"invoiceNumber"`
	Template  invoice.Template `json:"template"`
	Bytes     int              `json:"bytes"`
	SHA256    string           `json:"sha256"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Cache struct {
	kv     kvdb.Client
	cipher *sec.XChaCha20Poly1305Cipher // nil = stored as is
	ttl    time.Duration
	prefix string
	keep   int64
	Now    func() time.Time
}

func New(kv kvdb.Client, conf Conf) (*Cache, error) {
	c := &Cache{
		kv:     kv,
		ttl:    conf.TTL(),
		prefix: conf.Prefix,
		keep:   int64(conf.RecentKeep),
		Now:    time.Now,
	}
	if c.prefix == "" {
		c.prefix = "inv:"
	}
	if c.keep <= 0 {
		c.keep = 100
	}
	if conf.EncryptionKey != "" {
		key, err := sec.KeyFromConfig(conf.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
		if c.cipher, err = sec.NewXChaCha20Poly1305CipherBase64(key); err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
	}
	return c, nil
}

// Key is the hex SHA-256 of the invoice's JSON encoding
func Key(inv *invoice.Invoice) (string, error) {
	b, err := json.Marshal(inv)
	if err != nil {
		return "", err
	}
	return sec.HashHexSHA256(b), nil
}

func (c *Cache) pdfKey(key string) string  { return c.prefix + "pdf:" + key }
func (c *Cache) metaKey(key string) string { return c.prefix + "meta:" + key }
func (c *Cache) recentKey() string         { return c.prefix + "recent" }

// Get returns the cached document for key
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := c.kv.Get(ctx, c.pdfKey(key))
	if err != nil || !found {
		return nil, false, err
	}
	if c.cipher == nil {
		return []byte(val), true, nil
	}
	pdf, err := c.cipher.DecodeDecrypt(val)
	if err != nil {
		// unreadable under the current key; treat as a miss
		log.Printf("[WARN][Cache] drop undecryptable entry %s: %v", key, err)
		_, _ = c.kv.Delete(ctx, c.pdfKey(key), c.metaKey(key))
		return nil, false, nil
	}
	return pdf, true, nil
}

// Put stores pdf under key with its metadata and records it as recent
func (c *Cache) Put(ctx context.Context, key string, inv *invoice.Invoice, pdf []byte) (Entry, error) {
	entry := Entry{
		Key:       key,
		Number:    inv.Number,
		Template:  inv.Template.Resolve(),
		Bytes:     len(pdf),
		SHA256:    sec.HashHexSHA256(pdf),
		CreatedAt: c.Now().UTC().Truncate(time.Second),
	}
	var value any = pdf
	if c.cipher != nil {
		enc, err := c.cipher.EncryptEncode(pdf)
		if err != nil {
			return Entry{}, fmt.Errorf("cache: encrypt: %w", err)
		}
		value = enc
	}
	if err := c.kv.Set(ctx, c.pdfKey(key), value, c.ttl); err != nil {
		return Entry{}, fmt.Errorf("cache: set: %w", err)
	}
	if err := c.kv.SetFields(ctx, c.metaKey(key), map[string]any{
		"number":     entry.Number,
		"template":   string(entry.Template),
		"bytes":      entry.Bytes,
		"sha256":     entry.SHA256,
		"created_at": entry.CreatedAt.Format(time.RFC3339),
	}); err != nil {
		return Entry{}, fmt.Errorf("cache: meta: %w", err)
	}
	if _, err := c.kv.Expire(ctx, c.metaKey(key), c.ttl); err != nil {
		return Entry{}, fmt.Errorf("cache: meta ttl: %w", err)
	}
	if err := c.kv.Push(ctx, c.recentKey(), key); err != nil {
		return Entry{}, fmt.Errorf("cache: recent: %w", err)
	}
	if err := c.kv.Trim(ctx, c.recentKey(), -c.keep, -1); err != nil {
		return Entry{}, fmt.Errorf("cache: recent trim: %w", err)
	}
	return entry, nil
}

// Entry reads the metadata stored next to a document
func (c *Cache) Entry(ctx context.Context, key string) (Entry, bool, error) {
	fields, err := c.kv.GetAllFields(ctx, c.metaKey(key))
	if err != nil || len(fields) == 0 {
		return Entry{}, false, err
	}
	e := Entry{
		Key:      key,
		Number:   fields["number"],
		Template: invoice.Template(fields["template"]),
		SHA256:   fields["sha256"],
	}
	e.Bytes, _ = strconv.Atoi(fields["bytes"])
	e.CreatedAt, _ = time.Parse(time.RFC3339, fields["created_at"])
	return e, true, nil
}

// Recent lists up to n entries, newest first. Expired ones are skipped
func (c *Cache) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	keys, err := c.kv.Range(ctx, c.recentKey(), 0, -1)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(keys))
	out := make([]Entry, 0, min(n, len(keys)))
	for i := len(keys) - 1; i >= 0 && len(out) < n; i-- {
		if seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		e, found, err := c.Entry(ctx, keys[i])
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, e)
		}
	}
	return out, nil
}

// Invalidate removes one render
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	_, err := c.kv.Delete(ctx, c.pdfKey(key), c.metaKey(key))
	return err
}

// Purge removes every key under the cache prefix and returns how many went
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	var (
		cursor any
		found  []string
	)
	for {
		keys, next, err := c.kv.ScanKeys(ctx, cursor, c.prefix+"*", 100)
		if err != nil {
			return 0, err
		}
		found = append(found, keys...)
		if next == nil {
			break
		}
		cursor = next
	}
	if len(found) == 0 {
		return 0, nil
	}
	n, err := c.kv.Delete(ctx, found...)
	if err != nil {
		return n, err
	}
	log.Printf("[INFO][Cache] purged %d keys under %q", n, c.prefix)
	return n, nil
}

// Fetch returns the cached render of inv, calling render and storing its
// result on a miss. Cache failures are logged and never fail the render.
func (c *Cache) Fetch(ctx context.Context, inv *invoice.Invoice, render func() ([]byte, error)) ([]byte, bool, error) {
	key, err := Key(inv)
	if err != nil {
		return nil, false, err
	}
	if pdf, hit, err := c.Get(ctx, key); err != nil {
		log.Printf("[WARN][Cache] get %s: %v", key, err)
	} else if hit {
		return pdf, true, nil
	}
	pdf, err := render()
	if err != nil {
		return nil, false, err
	}
	if _, err := c.Put(ctx, key, inv, pdf); err != nil {
		log.Printf("[WARN][Cache] put %s: %v", key, err)
	}
	return pdf, false, nil
}
