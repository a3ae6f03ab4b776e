package environments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// EnvironmentRepository exposes persistence operations for environments. All
// record-addressing methods filter by organization id in addition to the
// environment id so a caller can never reach across organizations.
type EnvironmentRepository interface {
	Create(ctx context.Context, env *Environment) (*Environment, error)
	// Update persists the provided record. When columns are supplied only
	// those columns are written; otherwise the full mutable set is.
	Update(ctx context.Context, env *Environment, columns ...string) (*Environment, error)
	GetByID(ctx context.Context, organizationID, id uuid.UUID) (*Environment, error)
	GetByIdentifier(ctx context.Context, organizationID uuid.UUID, identifier string) (*Environment, error)
	ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*Environment, error)
	Delete(ctx context.Context, organizationID, id uuid.UUID) error
}

// NotFoundError is returned when an environment cannot be located.
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
