package service

import (
	"context"
	"log"
	"time"

	"hopeplates/internal/domain"
	"hopeplates/internal/redis"
	"hopeplates/internal/store"
)

const (
	stateLockTTL      = 10 * time.Second
	stateLockRetry    = 25 * time.Millisecond
	stateLockAttempts = 80
)

// StateManager runs each request as load, mutate, save over the whole
// document. When a lock store is configured the cycle is serialized across
// processes; otherwise concurrent writers are last-writer-wins.
type StateManager struct {
	store      store.Store
	lockStore  redis.LockStoreInterface
	cacheStore redis.CacheStoreInterface
}

// NewStateManager creates a new StateManager. lockStore and cacheStore may be nil.
func NewStateManager(st store.Store, lockStore redis.LockStoreInterface, cacheStore redis.CacheStoreInterface) *StateManager {
	return &StateManager{
		store:      st,
		lockStore:  lockStore,
		cacheStore: cacheStore,
	}
}

// Read loads the current document.
func (m *StateManager) Read(ctx context.Context) (*domain.State, error) {
	return m.store.Load(ctx)
}

// Update loads the document, applies fn and saves the result.
// If fn returns an error nothing is written.
func (m *StateManager) Update(ctx context.Context, fn func(state *domain.State) error) error {
	release, err := m.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	state, err := m.store.Load(ctx)
	if err != nil {
		return err
	}

	if err := fn(state); err != nil {
		return err
	}

	if err := m.store.Save(ctx, state); err != nil {
		return err
	}

	if m.cacheStore != nil {
		if err := m.cacheStore.InvalidateAnalytics(ctx); err != nil {
			log.Printf("failed to invalidate analytics cache: %v", err)
		}
	}

	return nil
}

// acquire takes the state lock, retrying briefly while another request holds it.
func (m *StateManager) acquire(ctx context.Context) (func(), error) {
	if m.lockStore == nil {
		return func() {}, nil
	}

	for attempt := 0; attempt < stateLockAttempts; attempt++ {
		token, ok, err := m.lockStore.AcquireStateLock(ctx, stateLockTTL)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				if err := m.lockStore.ReleaseStateLock(context.Background(), token); err != nil {
					log.Printf("failed to release state lock: %v", err)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(stateLockRetry):
		}
	}

	return nil, ErrStateBusy
}
