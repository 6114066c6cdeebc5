package repository

import (
	"slices"
	"sync"
)

// accountLocks hands out one mutex per account identifier. An entry lives
// only while some caller holds or waits for it, so identifiers that are
// merely looked up do not accumulate.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int // guarded by accountLocks.mu
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*lockEntry)}
}

func (l *accountLocks) acquire(id string) *lockEntry {
	l.mu.Lock()
	e, ok := l.locks[id]
	if !ok {
		e = &lockEntry{}
		l.locks[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return e
}

func (l *accountLocks) release(id string, e *lockEntry) {
	e.mu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, id)
	}
}

// lock acquires the mutexes of ids in lexicographic order, skipping
// duplicates, and returns the function that releases them.
func (l *accountLocks) lock(ids ...string) func() {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	held := make([]*lockEntry, 0, len(ordered))
	for _, id := range ordered {
		held = append(held, l.acquire(id))
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(ordered[i], held[i])
		}
	}
}
