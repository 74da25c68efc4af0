//go:build debug

package throttle

import (
	"log"
	"time"
)

func (s *BucketStore[K]) Cleanup(now time.Time) int {
	log.Printf("[DEBUG] cleaning expired buckets older than %v at %v", s.cleanupOlderThan, now)
	cleaned := 0
	for gid, g := range s.snapshot() {
		log.Printf("[DEBUG] cleaning expired buckets in bucketgroup %q", gid)
		g.buckets.Range(func(id, value any) bool {
			b := value.(*Bucket[K])
			last := b.lastSeen()
			if now.Sub(last) > s.cleanupOlderThan {
				g.buckets.Delete(id)
				cleaned++
				log.Printf("[DEBUG] expired bucket '%v' removed", id)
			}
			return true // continue iteration
		})
	}
	log.Printf("[DEBUG] %d buckets cleaned up", cleaned)
	return cleaned
}
