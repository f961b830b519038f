package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stateLockKey = "lock:hopeplates:state"

// releaseScript deletes the lock only if it is still held by the caller.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireStateLock attempts to take the lock guarding the state document.
// It returns the token needed to release it and false if the lock is held.
func (s *LockStore) AcquireStateLock(ctx context.Context, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, stateLockKey, token, ttl).Result()
	if err != nil {
		return "", false, err
	}

	return token, ok, nil
}

// ReleaseStateLock releases the state lock if token still owns it.
func (s *LockStore) ReleaseStateLock(ctx context.Context, token string) error {
	return releaseScript.Run(ctx, s.client, []string{stateLockKey}, token).Err()
}
