package auth

import "sync"

type lockEntry struct {
	mu      sync.Mutex
	waiters int
}

// LockManager serializes refresh rotations per token digest (single-flight).
// The store's compare-and-swap revoke already guarantees at most one rotation
// per token, but without serialization two concurrent callers could both pass
// the active check before either writes, leaving the loser with a confusing
// mid-flight failure. Holding the digest lock across rotate-and-reissue gives
// the second caller an unambiguous view of the first caller's revocation.
//
// Same-process guarantees only. Multi-process deployments need a shared
// mutual-exclusion primitive (e.g. a distributed lock) in front of this.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*lockEntry)}
}

// WithLock runs fn inside the exclusive critical section for digest. The
// lock is created lazily, released on every exit path, and its map entry is
// removed once the last waiter leaves, so the map stays bounded by the
// number of in-flight digests.
func (m *LockManager) WithLock(digest string, fn func() error) error {
	m.mu.Lock()
	e, ok := m.locks[digest]
	if !ok {
		e = &lockEntry{}
		m.locks[digest] = e
	}
	e.waiters++
	m.mu.Unlock()

	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		m.mu.Lock()
		e.waiters--
		if e.waiters == 0 {
			delete(m.locks, digest)
		}
		m.mu.Unlock()
	}()

	return fn()
}

// Len reports how many digests currently have a tracked lock entry.
func (m *LockManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
