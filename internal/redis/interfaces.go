package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireStateLock(ctx context.Context, ttl time.Duration) (string, bool, error)
	ReleaseStateLock(ctx context.Context, token string) error
}

// CacheStoreInterface defines the interface for caching derived reports.
type CacheStoreInterface interface {
	GetAnalytics(ctx context.Context, dst any) (bool, error)
	SetAnalytics(ctx context.Context, summary any) error
	InvalidateAnalytics(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
