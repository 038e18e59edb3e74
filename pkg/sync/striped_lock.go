package sync

import (
	"fmt"
	base "sync"
)

const (
	hashEntriesPerLock = 200
)

// StripedLock maps an unbounded key space onto a fixed set of locks, so that
// operations on one key are serialized without a lock per key.
type StripedLock struct {
	locks    []base.RWMutex
	hashRing *ring[int]
}

// NewStripedLock returns a new StripedLock with a static number of stripes.
func NewStripedLock(stripes uint) *StripedLock {
	if stripes == 0 {
		stripes = 1
	}

	entries := make(map[string]int, stripes)
	for i := 0; i < int(stripes); i++ {
		entries[fmt.Sprintf("lock%d", i)] = i
	}

	return &StripedLock{
		locks:    make([]base.RWMutex, stripes),
		hashRing: newRing(entries, hashEntriesPerLock),
	}
}

// Get gets the lock for a key
func (l *StripedLock) Get(key []byte) *base.RWMutex {
	return &l.locks[l.hashRing.shard(key)]
}

// Lock locks key and returns its unlock function.
func (l *StripedLock) Lock(key string) func() {
	mu := l.Get([]byte(key))
	mu.Lock()
	return mu.Unlock
}
