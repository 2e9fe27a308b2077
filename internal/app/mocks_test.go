package app

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/example/tebexd/internal/core/delivery"
	"github.com/example/tebexd/internal/ctxutil"
	"github.com/example/tebexd/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.QueueClient      = (*mockQueueClient)(nil)
	_ secondary.PresenceProvider = (*mockPresence)(nil)
	_ secondary.PropertyStore    = (*memoryStore)(nil)
	_ secondary.DeliveryLog      = (*mockDeliveryLog)(nil)
)

// mockQueueClient implements secondary.QueueClient for testing.
type mockQueueClient struct {
	snapshot      *secondary.QueueSnapshot
	fetchQueueErr error

	online    map[delivery.AccountID][]delivery.Command
	onlineErr map[delivery.AccountID]error

	accounts  map[string]delivery.AccountID
	lookupErr error

	deleted   [][]delivery.CommandID
	deleteErr error
}

func newMockQueueClient() *mockQueueClient {
	return &mockQueueClient{
		snapshot:  &secondary.QueueSnapshot{},
		online:    make(map[delivery.AccountID][]delivery.Command),
		onlineErr: make(map[delivery.AccountID]error),
		accounts:  make(map[string]delivery.AccountID),
	}
}

func (m *mockQueueClient) FetchQueue(ctx context.Context) (*secondary.QueueSnapshot, error) {
	if m.fetchQueueErr != nil {
		return nil, m.fetchQueueErr
	}
	return m.snapshot, nil
}

func (m *mockQueueClient) FetchOnlineCommands(ctx context.Context, account delivery.AccountID) ([]delivery.Command, error) {
	if err := m.onlineErr[account]; err != nil {
		return nil, err
	}
	return m.online[account], nil
}

func (m *mockQueueClient) LookupAccountID(ctx context.Context, principal string) (delivery.AccountID, bool, error) {
	if m.lookupErr != nil {
		return "", false, m.lookupErr
	}
	id, ok := m.accounts[principal]
	return id, ok, nil
}

func (m *mockQueueClient) DeleteCommands(ctx context.Context, ids []delivery.CommandID) error {
	m.deleted = append(m.deleted, slices.Clone(ids))
	return m.deleteErr
}

// mockPresence implements secondary.PresenceProvider for testing.
type mockPresence struct {
	mu         sync.Mutex
	present    []string
	presentErr error
	failing    map[string]error // keyed by rendered command
	executed   []string
}

func newMockPresence(present ...string) *mockPresence {
	return &mockPresence{
		present: present,
		failing: make(map[string]error),
	}
}

func (m *mockPresence) Present(ctx context.Context) ([]string, error) {
	if m.presentErr != nil {
		return nil, m.presentErr
	}
	return slices.Clone(m.present), nil
}

func (m *mockPresence) Execute(ctx context.Context, principal, command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing[command]; err != nil {
		return err
	}
	m.executed = append(m.executed, command)
	return nil
}

// memoryStore implements secondary.PropertyStore in memory.
type memoryStore struct {
	data    map[string][]byte
	sets    int
	deletes int
	getErr  error
	setErr  error
	keysErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.deletes++
	delete(m.data, key)
	return nil
}

func (m *memoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if m.keysErr != nil {
		return nil, m.keysErr
	}
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (m *memoryStore) snapshot() map[string][]byte {
	return maps.Clone(m.data)
}

// mockDeliveryLog implements secondary.DeliveryLog for testing.
type mockDeliveryLog struct {
	records   []*secondary.DeliveryRecord
	recordErr error
}

func (m *mockDeliveryLog) Record(ctx context.Context, record *secondary.DeliveryRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	if record.PassID == "" {
		record.PassID = ctxutil.PassIDFromContext(ctx)
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockDeliveryLog) Recent(ctx context.Context, filters secondary.DeliveryFilters) ([]*secondary.DeliveryRecord, error) {
	if m.recordErr != nil {
		return nil, m.recordErr
	}
	var result []*secondary.DeliveryRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if filters.AccountID != "" && r.AccountID != filters.AccountID {
			continue
		}
		result = append(result, r)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

var errBoom = errors.New("boom")

// testHarness wires the services over the mocks.
type testHarness struct {
	queue      *mockQueueClient
	presence   *mockPresence
	store      *memoryStore
	log        *mockDeliveryLog
	identities *IdentityCache
	buffer     *CommandBuffer
	reconciler *Reconciler
	flush      *FlushHandler
}

func newTestHarness(present ...string) *testHarness {
	h := &testHarness{
		queue:      newMockQueueClient(),
		presence:   newMockPresence(present...),
		store:      newMemoryStore(),
		log:        &mockDeliveryLog{},
		identities: NewIdentityCache(),
	}
	h.buffer = NewCommandBuffer(h.store)
	executor := NewCommandExecutor(h.presence)
	h.reconciler = NewReconciler(h.queue, h.presence, h.identities, h.buffer, executor, h.log)
	h.flush = NewFlushHandler(h.queue, h.identities, h.buffer, executor, h.log)
	return h
}

func cmd(id int64, template string) delivery.Command {
	return delivery.Command{ID: delivery.CommandID(id), Template: template}
}
