package activity

import (
	"context"
	"sync"
	"time"
)

// MockService is an in-memory activity service for development and tests
type MockService struct {
	mu      sync.Mutex
	stats   map[int64]*Stats
	Entries map[int64][]LogEntry
}

func NewMockService() *MockService {
	return &MockService{
		stats:   make(map[int64]*Stats),
		Entries: make(map[int64][]LogEntry),
	}
}

// SetStats seeds the stats returned for a user
func (m *MockService) SetStats(userID int64, stats *Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[userID] = stats
}

func (m *MockService) GetUserActivityStats(_ context.Context, userID int64) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if stats, ok := m.stats[userID]; ok {
		copied := *stats
		return &copied, nil
	}
	return &Stats{}, nil
}

func (m *MockService) LogUserActivity(_ context.Context, userID int64, entry *LogEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m.Entries[userID] = append(m.Entries[userID], *entry)
}
