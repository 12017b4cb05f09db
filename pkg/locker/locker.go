// Package locker provides distributed locking for coordinating background
// work across multiple service instances.
package locker

import (
	"context"
	"time"
)

// DistributedLocker provides distributed lock capabilities across multiple
// instances. Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "digest-cycle", 10*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance holds the lock
//	    return nil
//	}
//	defer locker.Release(ctx, "digest-cycle")
type DistributedLocker interface {
	// Acquire attempts to acquire a distributed lock with the given key.
	// Returns true if the lock was acquired, false if another instance holds
	// it. The lock automatically expires after ttl if not released.
	//
	// For mutual exclusion use the operation timeout as ttl; for cooldown
	// semantics use the desired cooldown period and skip the Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release releases the lock identified by key. Safe to call when this
	// instance does not own the lock (no-op).
	Release(ctx context.Context, key string) error
}
