package apikeys

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*ApiKey
}

// NewMemoryRepository constructs an in-memory API key repository.
func NewMemoryRepository() ApiKeyRepository {
	return &memoryRepository{
		byID: make(map[uuid.UUID]*ApiKey),
	}
}

func (m *memoryRepository) Create(_ context.Context, key *ApiKey) (*ApiKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneApiKey(key)
	m.byID[cloned.ID] = cloned
	return cloneApiKey(cloned), nil
}

func (m *memoryRepository) ListByEnvironment(_ context.Context, organizationID, environmentID uuid.UUID) ([]*ApiKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*ApiKey, 0, len(m.byID))
	for _, record := range m.byID {
		if record == nil || record.OrganizationID != organizationID || record.EnvironmentID != environmentID {
			continue
		}
		records = append(records, cloneApiKey(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

func (m *memoryRepository) DeleteByEnvironment(_ context.Context, organizationID, environmentID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, record := range m.byID {
		if record == nil || record.OrganizationID != organizationID || record.EnvironmentID != environmentID {
			continue
		}
		delete(m.byID, id)
	}
	return nil
}
