package repo

import (
	"context"
	"sync"

	"infographic/internal/domain"
)

// InfographicRepositoryMemory keeps records in process memory. It is used
// when STORE_DRIVER=memory and in tests.
type InfographicRepositoryMemory struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]domain.Infographic
}

func NewMemoryInfographicRepository() *InfographicRepositoryMemory {
	return &InfographicRepositoryMemory{byID: make(map[string]domain.Infographic)}
}

func (m *InfographicRepositoryMemory) Create(ctx context.Context, in *domain.Infographic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[in.ID]; ok {
		return domain.ErrDuplicateOperation
	}
	m.byID[in.ID] = *in
	m.order = append(m.order, in.ID)
	return nil
}

func (m *InfographicRepositoryMemory) List(ctx context.Context, limit int) ([]domain.Infographic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.order)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]domain.Infographic, 0, n)
	for _, id := range m.order[:n] {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *InfographicRepositoryMemory) GetByID(ctx context.Context, id string) (*domain.Infographic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (m *InfographicRepositoryMemory) Ping(ctx context.Context) error { return nil }

var _ domain.InfographicRepository = (*InfographicRepositoryMemory)(nil)
