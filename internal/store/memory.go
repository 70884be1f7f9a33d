package store

import (
	"context"
	"sync"
)

// Memory is an in-memory Repository for tests.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte

	// FailWrites makes Set return an error, for exercising the
	// never-propagate policy at the typed store boundary.
	FailWrites error
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) key(userID, courseID, namespace string) string {
	return userID + "\x00" + courseID + "\x00" + namespace
}

func (m *Memory) Get(_ context.Context, userID, courseID, namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[m.key(userID, courseID, namespace)]
	if !ok {
		return nil, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *Memory) Set(_ context.Context, userID, courseID, namespace string, data []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.records[m.key(userID, courseID, namespace)] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, userID, courseID, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, m.key(userID, courseID, namespace))
	return nil
}

// Len reports the number of stored records.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
