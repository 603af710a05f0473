package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	messagesGenerated  int
	generationFailures int
	rosterChanges      map[string]int
	availabilityEdits  int
	clearedEnds        int
	sharesSent         map[string]int
	sharesFailed       map[string]int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rosterChanges: make(map[string]int),
		sharesSent:    make(map[string]int),
		sharesFailed:  make(map[string]int),
	}
}

func (m *Mock) IncMessagesGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesGenerated++
}

func (m *Mock) IncGenerationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generationFailures++
}

func (m *Mock) IncRosterChange(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rosterChanges[op]++
}

func (m *Mock) IncAvailabilityEdit(clearedEnd bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.availabilityEdits++
	if clearedEnd {
		m.clearedEnds++
	}
}

func (m *Mock) IncShareSent(sharer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sharesSent[sharer]++
}

func (m *Mock) IncShareFailed(sharer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sharesFailed[sharer]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MessagesGenerated returns the number of times IncMessagesGenerated was called.
func (m *Mock) MessagesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.messagesGenerated
}

// GenerationFailures returns the number of times IncGenerationFailures was called.
func (m *Mock) GenerationFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.generationFailures
}

// RosterChanges returns how often IncRosterChange was called with op.
func (m *Mock) RosterChanges(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rosterChanges[op]
}

// AvailabilityEdits returns the number of edits and how many cleared an end.
func (m *Mock) AvailabilityEdits() (edits, clearedEnds int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.availabilityEdits, m.clearedEnds
}

// SharesSent returns how often IncShareSent was called for sharer.
func (m *Mock) SharesSent(sharer string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sharesSent[sharer]
}

// SharesFailed returns how often IncShareFailed was called for sharer.
func (m *Mock) SharesFailed(sharer string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sharesFailed[sharer]
}
