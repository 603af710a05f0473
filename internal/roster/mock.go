package roster

import "sync"

// MockPersister is an in-memory Persister for testing.
// It is safe for concurrent use.
type MockPersister struct {
	mu   sync.Mutex
	data map[string][]byte

	// Optional error injection
	GetErr error
	PutErr error

	PutCalls int
}

// NewMockPersister creates an empty MockPersister.
func NewMockPersister() *MockPersister {
	return &MockPersister{data: make(map[string][]byte)}
}

func (m *MockPersister) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *MockPersister) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Raw returns the bytes stored under key.
func (m *MockPersister) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Seed stores data under key without counting a Put.
func (m *MockPersister) Seed(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}
