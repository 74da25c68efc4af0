package throttle

import (
	"sync"
	"time"
)

type BucketGroup[K comparable] struct {
	conf    *BucketConf
	buckets *sync.Map // K -> *Bucket[K]
}

func (g *BucketGroup[K]) GetBucket(id K) (*Bucket[K], bool) {
	bAny, ok := g.buckets.Load(id)
	if !ok {
		return nil, false
	}
	return bAny.(*Bucket[K]), true
}

// bucketFor returns the bucket of id, creating a full one on first sight
func (g *BucketGroup[K]) bucketFor(id K, now time.Time) *Bucket[K] {
	if b, ok := g.GetBucket(id); ok {
		return b
	}
	bAny, _ := g.buckets.LoadOrStore(id, newBucket[K](g.conf, now))
	return bAny.(*Bucket[K])
}
