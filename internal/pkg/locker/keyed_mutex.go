// Package locker provides in-process mutual exclusion keyed by an identifier.
// The order lifecycle uses it to guarantee at most one in-flight state
// transition per order id, so two concurrent requests can never both satisfy a
// stale status guard (and, for example, double-apply a refund).
package locker

import "sync"

// KeyedMutex serializes critical sections per key. Locks for distinct keys are
// independent; a lock entry is released from memory once its last holder and
// all waiters are gone.
//
// Example:
//
//	km := locker.NewKeyedMutex()
//	unlock := km.Lock(orderID)
//	defer unlock()
//	// read order, check status guard, write transition
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	mu      sync.Mutex
	waiters int
}

// NewKeyedMutex creates an empty keyed mutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[int64]*lockEntry)}
}

// Lock acquires the mutex for key, blocking until it is available.
// The returned function releases the lock and must be called exactly once.
func (km *KeyedMutex) Lock(key int64) func() {
	km.mu.Lock()
	entry, ok := km.locks[key]
	if !ok {
		entry = &lockEntry{}
		km.locks[key] = entry
	}
	entry.waiters++
	km.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		km.mu.Lock()
		entry.waiters--
		if entry.waiters == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
