package reorder

import "sync"

// Locks hands out one mutex per collection ID. Entries are dropped once no
// caller holds or waits on them. A nil *Locks never blocks.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*collectionLock
}

type collectionLock struct {
	mu   sync.Mutex
	refs int
}

// NewLocks returns an empty lock set.
func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*collectionLock)}
}

// Lock blocks until the collection's mutex is held and returns its release.
func (l *Locks) Lock(collectionID string) func() {
	if l == nil {
		return func() {}
	}

	l.mu.Lock()
	entry, ok := l.locks[collectionID]
	if !ok {
		entry = &collectionLock{}
		l.locks[collectionID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, collectionID)
		}
		l.mu.Unlock()
	}
}

// size returns the number of live entries. Used for testing.
func (l *Locks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
