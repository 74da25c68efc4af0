package keyonlylocks

import "sync"

// AcquireLocks takes every key or none. It never waits: a key already held
// fails the whole call
func AcquireLocks(lockStore *sync.Map, keys []string) ([]string, bool) {
	var acquired []string
	for _, key := range keys {
		_, loaded := lockStore.LoadOrStore(key, struct{}{})
		if loaded {
			// rollback previously acquired locks
			for _, k := range acquired {
				lockStore.Delete(k)
			}
			return nil, false
		}
		acquired = append(acquired, key)
	}
	return acquired, true
}

// ReleaseLocks delete locks from the lockStore *sync.Map
// Wrap this in deferred calls to guarantee to be called even if panic occurs.
func ReleaseLocks(lockStore *sync.Map, keys []string) {
	for _, key := range keys {
		lockStore.Delete(key)
	}
}

// TryWith runs fn while holding keys. ran is false, and fn skipped, when any key is held
func TryWith(lockStore *sync.Map, keys []string, fn func() error) (ran bool, err error) {
	acquired, ok := AcquireLocks(lockStore, keys)
	if !ok {
		return false, nil
	}
	defer ReleaseLocks(lockStore, acquired)
	return true, fn()
}
