// ABOUTME: Repository interface for fitness record storage.
// ABOUTME: Defines the keyed records that make up the persisted state.
package storage

import (
	"errors"
	"sync"
)

// Record keys. Each holds one JSON document.
const (
	KeyActivities     = "fitness_activities"
	KeyGoals          = "fitness_goals"
	KeyUserStats      = "fitness_user_stats"
	KeyWeeklyActivity = "fitness_weekly_activity"
)

// AllKeys lists every persisted record key.
var AllKeys = []string{KeyActivities, KeyGoals, KeyUserStats, KeyWeeklyActivity}

// ErrNotFound is returned by Get when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository defines the storage interface for fitness records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Get returns the raw record, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put stores the record, replacing any previous value.
	Put(key string, data []byte) error
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(key string) error

	// Lifecycle
	Close() error
}

// MemoryRepository is an in-process Repository used by tests and dry runs.
type MemoryRepository struct {
	mu      sync.Mutex
	records map[string][]byte
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string][]byte)}
}

// Get returns a copy of the record.
func (m *MemoryRepository) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data.
func (m *MemoryRepository) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes the record.
func (m *MemoryRepository) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

// Close is a no-op.
func (m *MemoryRepository) Close() error { return nil }
