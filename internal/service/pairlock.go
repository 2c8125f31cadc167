package service

import "sync"

// pairLock serializes the read-check-write sequence of relationship
// mutations on one unordered user pair. Both orderings of a pair hash to
// the same shard, so concurrent conflicting operations on {A,B} line up
// behind one mutex while unrelated pairs proceed independently. Each
// operation only ever holds one shard, so no lock ordering issue exists.
type pairLock struct {
	shards [64]sync.Mutex
}

func (l *pairLock) lock(a, b uint) *sync.Mutex {
	if a > b {
		a, b = b, a
	}
	m := &l.shards[(a*31+b)%uint(len(l.shards))]
	m.Lock()
	return m
}
