package throttle

import (
	"sync"
	"time"
)

// Bucket is the token bucket of one client within a group
type Bucket[K comparable] struct {
	mu       sync.Mutex
	conf     *BucketConf
	tokens   int
	refillAt time.Time // start of the period whose tokens are not yet added
	seenAt   time.Time // last Take, used by Cleanup
}

func newBucket[K comparable](conf *BucketConf, now time.Time) *Bucket[K] {
	return &Bucket[K]{conf: conf, tokens: conf.Burst, refillAt: now, seenAt: now}
}

// refill credits every whole period since refillAt. Caller holds mu
func (b *Bucket[K]) refill(now time.Time) {
	periods := now.Sub(b.refillAt) / b.conf.Period
	if periods <= 0 {
		return
	}
	b.tokens = min(b.tokens+int(periods)*b.conf.Increment, b.conf.Burst)
	b.refillAt = b.refillAt.Add(periods * b.conf.Period)
}

// Take spends one token. When the bucket is empty it reports how long until
// the next refill instead.
func (b *Bucket[K]) Take(now time.Time) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seenAt = now
	b.refill(now)
	if b.tokens > 0 {
		b.tokens--
		return true, 0
	}
	return false, b.refillAt.Add(b.conf.Period).Sub(now)
}

func (b *Bucket[K]) Allow(now time.Time) bool {
	ok, _ := b.Take(now)
	return ok
}

// Tokens is the balance as of now
func (b *Bucket[K]) Tokens(now time.Time) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refill(now)
	return b.tokens
}

func (b *Bucket[K]) lastSeen() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seenAt
}
