package apikeys

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ApiKeyRepository exposes persistence operations for API keys. Lookups are
// always scoped by organization id alongside the environment id.
type ApiKeyRepository interface {
	Create(ctx context.Context, key *ApiKey) (*ApiKey, error)
	ListByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) ([]*ApiKey, error)
	DeleteByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) error
}

// NotFoundError is returned when an API key cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
