// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/shelfmark/internal/platform/constants"
)

// releaseScript deletes the lock only when it still holds our token, so an
// expired holder cannot release a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker is a mutual-exclusion lock keyed by string and shared by every
// process talking to the same Redis instance.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *slog.Logger
}

// NewLocker returns a Locker whose keys expire after ttl. The context handed
// to the holder ends at the same moment, so work cannot outlive the lease.
func NewLocker(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Locker {
	return &Locker{
		client: client,
		ttl:    ttl,
		retry:  constants.GoalLockRetryInterval,
		logger: logger,
	}
}

/*
Lock blocks until key is acquired or the context is done.

Parameters:
  - context: stdctx.Context bounding the wait
  - key: string lock name, prefixed with [constants.RedisPrefixGoalLock]

Returns:
  - stdctx.Context: Done when the lock is released or its lease expires
  - func(): Releases the lock; safe to call more than once
  - error: Context errors or Redis failures
*/
func (locker *Locker) Lock(context stdctx.Context, key string) (stdctx.Context, func(), error) {
	redisKey := constants.RedisPrefixGoalLock + key
	token := uuid.NewString()

	var acquiredAt time.Time
	for {
		acquiredAt = time.Now()
		acquired, err := locker.client.SetNX(context, redisKey, token, locker.ttl).Result()
		if err != nil {
			return nil, nil, fmt.Errorf("redis: acquire %s: %w", redisKey, err)
		}
		if acquired {
			break
		}

		timer := time.NewTimer(locker.retry)
		select {
		case <-context.Done():
			timer.Stop()
			return nil, nil, context.Err()
		case <-timer.C:
		}
	}

	// The lease starts before SETNX was sent, so the holder's deadline never
	// passes after the key has expired in Redis.
	held, cancel := stdctx.WithDeadline(context, acquiredAt.Add(locker.ttl))

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			cancel()

			// Release even when the caller's context has been cancelled.
			releaseCtx, releaseCancel := stdctx.WithTimeout(stdctx.WithoutCancel(context), writeTimeout)
			defer releaseCancel()

			err := releaseScript.Run(releaseCtx, locker.client, []string{redisKey}, token).Err()
			if err != nil && !errors.Is(err, redis.Nil) {
				locker.logger.Warn("redis_lock_release_failed",
					slog.String("key", redisKey),
					slog.Any("error", err),
				)
			}
		})
	}

	return held, unlock, nil
}
