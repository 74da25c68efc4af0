//go:build !debug

package throttle

import (
	"time"
)

// Cleanup drops buckets untouched for longer than cleanupOlderThan
func (s *BucketStore[K]) Cleanup(now time.Time) int {
	cleaned := 0
	for _, g := range s.snapshot() {
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket[K])
			last := b.lastSeen()
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				cleaned++
			}
			return true // continue iteration
		})
	}
	return cleaned
}
