// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	stdctx "context"
	"sync"
)

// Locker serialises work on a key. The returned function releases the lock.
//
// The returned context is cancelled on release and, for leased locks, when
// the lease runs out. Work done under the lock must use it.
//
// Implementations: [LocalLocker] for a single process, redis.Locker when
// several API instances share a database.
type Locker interface {
	Lock(context stdctx.Context, key string) (stdctx.Context, func(), error)
}

// lockKey scopes a lock to one goal of one user.
func lockKey(userID, goalID string) string {
	return userID + ":" + goalID
}

// LocalLocker is an in-process keyed mutex. Entries are reference counted
// and removed once nobody holds or waits for them.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	slot chan struct{}
	refs int
}

// NewLocalLocker returns an empty [LocalLocker].
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*lockEntry)}
}

// Lock blocks until key is free or the context is done.
func (locker *LocalLocker) Lock(context stdctx.Context, key string) (stdctx.Context, func(), error) {
	locker.mu.Lock()
	entry, ok := locker.locks[key]
	if !ok {
		entry = &lockEntry{slot: make(chan struct{}, 1)}
		locker.locks[key] = entry
	}
	entry.refs++
	locker.mu.Unlock()

	select {
	case entry.slot <- struct{}{}:
	case <-context.Done():
		locker.release(key, entry)
		return nil, nil, context.Err()
	}

	held, cancel := stdctx.WithCancel(context)

	var once sync.Once
	return held, func() {
		once.Do(func() {
			cancel()
			<-entry.slot
			locker.release(key, entry)
		})
	}, nil
}

// Len returns the number of keys currently held or awaited.
func (locker *LocalLocker) Len() int {
	locker.mu.Lock()
	defer locker.mu.Unlock()
	return len(locker.locks)
}

func (locker *LocalLocker) release(key string, entry *lockEntry) {
	locker.mu.Lock()
	defer locker.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(locker.locks, key)
	}
}
