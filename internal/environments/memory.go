package environments

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Environment
}

// NewMemoryRepository constructs an in-memory environment repository.
func NewMemoryRepository() EnvironmentRepository {
	return &memoryRepository{
		byID: make(map[uuid.UUID]*Environment),
	}
}

func (m *memoryRepository) Create(_ context.Context, env *Environment) (*Environment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneEnvironment(env)
	cloned.Identifier = NormalizeIdentifier(cloned.Identifier)
	m.byID[cloned.ID] = cloned
	return cloneEnvironment(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, env *Environment, _ ...string) (*Environment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[env.ID]
	if !ok || existing.OrganizationID != env.OrganizationID {
		return nil, &NotFoundError{Resource: "environment", Key: env.ID.String()}
	}
	cloned := cloneEnvironment(env)
	cloned.Identifier = NormalizeIdentifier(cloned.Identifier)
	m.byID[cloned.ID] = cloned
	return cloneEnvironment(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, organizationID, id uuid.UUID) (*Environment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok || record.OrganizationID != organizationID {
		return nil, &NotFoundError{Resource: "environment", Key: id.String()}
	}
	return cloneEnvironment(record), nil
}

func (m *memoryRepository) GetByIdentifier(_ context.Context, organizationID uuid.UUID, identifier string) (*Environment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalized := NormalizeIdentifier(identifier)
	for _, record := range m.byID {
		if record.OrganizationID == organizationID && record.Identifier == normalized {
			return cloneEnvironment(record), nil
		}
	}
	return nil, &NotFoundError{Resource: "environment", Key: normalized}
}

func (m *memoryRepository) ListByOrganization(_ context.Context, organizationID uuid.UUID) ([]*Environment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Environment, 0, len(m.byID))
	for _, record := range m.byID {
		if record == nil || record.OrganizationID != organizationID {
			continue
		}
		records = append(records, cloneEnvironment(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Identifier < records[j].Identifier
	})
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, organizationID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok || record.OrganizationID != organizationID {
		return &NotFoundError{Resource: "environment", Key: id.String()}
	}
	delete(m.byID, id)
	return nil
}
