// Package grouplock serializes read-compute-write sequences per group.
//
// Balance checks such as "may this member leave" or "does this settlement
// exceed the debt" read the expense history and then write. Two requests for
// the same group must not interleave between the read and the write.
package grouplock

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Locker hands out one lock per group. Entries are dropped once no caller
// holds or waits for them.
type Locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

type entry struct {
	sem  chan struct{}
	refs int
}

// New creates an empty Locker.
func New() *Locker {
	return &Locker{locks: make(map[uuid.UUID]*entry)}
}

// Lock blocks until the group's lock is held or ctx is done.
// The returned function releases the lock and must be called exactly once.
func (l *Locker) Lock(ctx context.Context, groupID uuid.UUID) (func(), error) {
	e := l.acquire(groupID)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(groupID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(groupID, e)
		})
	}, nil
}

func (l *Locker) acquire(groupID uuid.UUID) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[groupID]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[groupID] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(groupID uuid.UUID, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, groupID)
	}
}

// size reports how many groups currently have an entry.
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
