package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"hopeplates/internal/domain"
	"hopeplates/internal/redis"
	"hopeplates/internal/service"
	"hopeplates/internal/store"
)

// ──────────────────────────────────────────────
// MOCK DOCUMENT STORE
// ──────────────────────────────────────────────

// MockStore is an in-memory implementation of store.Store. Every Load and
// Save deep-copies the document so callers never share pointers with it.
type MockStore struct {
	mu       sync.Mutex
	document []byte

	// Counters for verification
	LoadCallCount int32
	SaveCallCount int32

	// Error injection
	LoadError error
	SaveError error
}

var _ store.Store = (*MockStore)(nil)

// NewMockStore creates a new mock store holding an empty document.
func NewMockStore() *MockStore {
	m := &MockStore{}
	m.SetState(domain.NewState())
	return m
}

// SetState replaces the stored document (for test setup).
func (m *MockStore) SetState(state *domain.State) {
	data, err := json.Marshal(state)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = data
}

// State returns a copy of the stored document (for test assertions).
func (m *MockStore) State() *domain.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeState(m.document)
}

func (m *MockStore) Load(ctx context.Context) (*domain.State, error) {
	atomic.AddInt32(&m.LoadCallCount, 1)
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return decodeState(m.document), nil
}

func (m *MockStore) Save(ctx context.Context, state *domain.State) error {
	atomic.AddInt32(&m.SaveCallCount, 1)
	if m.SaveError != nil {
		return m.SaveError
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.document = data
	return nil
}

// Saves returns how many times Save was called.
func (m *MockStore) Saves() int {
	return int(atomic.LoadInt32(&m.SaveCallCount))
}

func decodeState(data []byte) *domain.State {
	state := domain.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		panic(err)
	}
	state.Normalize()
	return state
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	seq    int

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

var _ redis.LockStoreInterface = (*MockLockStore)(nil)

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{}
}

func (m *MockLockStore) AcquireStateLock(ctx context.Context, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return "", false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiry) {
		return "", false, nil
	}
	m.seq++
	m.token = fmt.Sprintf("token-%d", m.seq)
	m.expiry = time.Now().Add(ttl)
	return m.token, true, nil
}

func (m *MockLockStore) ReleaseStateLock(ctx context.Context, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == token {
		m.token = ""
	}
	return nil
}

// IsLocked reports whether the state lock is currently held (for test assertions).
func (m *MockLockStore) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && time.Now().Before(m.expiry)
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of CacheStore.
type MockCacheStore struct {
	mu        sync.Mutex
	analytics []byte

	// Counters
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
}

var _ redis.CacheStoreInterface = (*MockCacheStore)(nil)

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{}
}

func (m *MockCacheStore) GetAnalytics(ctx context.Context, dst any) (bool, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return false, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.analytics == nil {
		return false, nil
	}
	return true, json.Unmarshal(m.analytics, dst)
}

func (m *MockCacheStore) SetAnalytics(ctx context.Context, summary any) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analytics = data
	return nil
}

func (m *MockCacheStore) InvalidateAnalytics(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analytics = nil
	return nil
}

// IsCached reports whether an analytics summary is cached.
func (m *MockCacheStore) IsCached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analytics != nil
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER / PUBLISHER
// ──────────────────────────────────────────────

// NotificationRecord is one call made to MockNotifier.
type NotificationRecord struct {
	Type    service.NotificationType
	MatchID string
	NGOID   string
}

// MockNotifier records lifecycle notifications.
type MockNotifier struct {
	mu      sync.Mutex
	records []NotificationRecord
}

var _ service.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a new mock notifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (m *MockNotifier) record(t service.NotificationType, match *domain.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, NotificationRecord{Type: t, MatchID: match.ID, NGOID: match.NGOID})
	return nil
}

func (m *MockNotifier) NotifyMatchSuggested(ctx context.Context, match *domain.Match, donor *domain.Donor) error {
	return m.record(service.NotificationMatchSuggested, match)
}

func (m *MockNotifier) NotifyMatchAccepted(ctx context.Context, match *domain.Match) error {
	return m.record(service.NotificationMatchAccepted, match)
}

func (m *MockNotifier) NotifyMatchPickedUp(ctx context.Context, match *domain.Match) error {
	return m.record(service.NotificationMatchPickedUp, match)
}

func (m *MockNotifier) NotifyMatchDelivered(ctx context.Context, match *domain.Match) error {
	return m.record(service.NotificationMatchDelivered, match)
}

// Records returns a copy of every notification sent.
func (m *MockNotifier) Records() []NotificationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]NotificationRecord, len(m.records))
	copy(out, m.records)
	return out
}

// CountByType returns how many notifications of type t were sent.
func (m *MockNotifier) CountByType(t service.NotificationType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.records {
		if r.Type == t {
			n++
		}
	}
	return n
}

// MockPublisher records realtime publishes.
type MockPublisher struct {
	mu       sync.Mutex
	payloads map[string][]any
}

var _ service.Publisher = (*MockPublisher)(nil)

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{payloads: make(map[string][]any)}
}

func (m *MockPublisher) Publish(recipientID string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[recipientID] = append(m.payloads[recipientID], payload)
}

// Published returns what was sent to recipientID.
func (m *MockPublisher) Published(recipientID string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]any(nil), m.payloads[recipientID]...)
}

// ──────────────────────────────────────────────
// FIXTURES
// ──────────────────────────────────────────────

func ptr[T any](v T) *T { return &v }

// newNGO returns an active NGO at lat/lng with default settings.
func newNGO(id string, lat, lng float64) *domain.NGO {
	return &domain.NGO{
		ID:            id,
		Name:          "NGO " + id,
		Latitude:      ptr(lat),
		Longitude:     ptr(lng),
		ServiceRadius: domain.DefaultServiceRadiusKm,
		Capacity:      domain.DefaultCapacity,
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
}

// newDonor returns an Available donor at lat/lng.
func newDonor(id string, lat, lng float64) *domain.Donor {
	return &domain.Donor{
		ID:        id,
		Name:      "Donor " + id,
		Quantity:  "10",
		Latitude:  ptr(lat),
		Longitude: ptr(lng),
		Status:    domain.DonorStatusAvailable,
		CreatedAt: time.Now(),
	}
}

// newMatch returns a match between donorID and ngoID in status.
func newMatch(id, donorID, ngoID string, status domain.MatchStatus) *domain.Match {
	return &domain.Match{
		ID:        id,
		DonorID:   donorID,
		NGOID:     ngoID,
		Status:    status,
		CreatedAt: time.Now(),
	}
}

// delivered returns a Delivered match with the given on-time flag.
func delivered(id, ngoID string, onTime bool, people int) *domain.Match {
	m := newMatch(id, "donor-"+id, ngoID, domain.MatchStatusDelivered)
	m.DeliveredOnTime = ptr(onTime)
	m.PeopleServed = people
	return m
}
