package store

import (
	"context"
	"sync"

	"github.com/erkineren/homework-monitor/internal/models"
)

// Store keeps the latest delivered notification and checkpoint for one chat.
// Only the most recent snapshot is kept.
type Store interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Save(ctx context.Context, snapshot models.Snapshot) error
	Close() error
}

// Memory is a Store that forgets everything on restart.
type Memory struct {
	mu       sync.RWMutex
	snapshot models.Snapshot
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot, nil
}

func (m *Memory) Save(ctx context.Context, snapshot models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	return nil
}

func (m *Memory) Close() error {
	return nil
}
