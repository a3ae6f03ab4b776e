package environments

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// environmentUpdateColumns is the full mutable column set written when no
// explicit column list is supplied.
var environmentUpdateColumns = []string{
	"name",
	"identifier",
	"parent_id",
	"widget_notification_center_encryption",
	"updated_at",
}

// BunEnvironmentRepository implements EnvironmentRepository with optional caching.
type BunEnvironmentRepository struct {
	repo repository.Repository[*Environment]
}

// NewBunEnvironmentRepository creates an environment repository without caching.
func NewBunEnvironmentRepository(db *bun.DB) *BunEnvironmentRepository {
	return NewBunEnvironmentRepositoryWithCache(db, nil, nil)
}

// NewBunEnvironmentRepositoryWithCache creates an environment repository with caching support.
func NewBunEnvironmentRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunEnvironmentRepository {
	base := NewEnvironmentRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunEnvironmentRepository{repo: base}
}

func (r *BunEnvironmentRepository) Create(ctx context.Context, env *Environment) (*Environment, error) {
	record, err := r.repo.Create(ctx, env)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunEnvironmentRepository) Update(ctx context.Context, env *Environment, columns ...string) (*Environment, error) {
	if len(columns) == 0 {
		columns = environmentUpdateColumns
	}
	updated, err := r.repo.Update(ctx, env,
		repository.UpdateByID(env.ID.String()),
		repository.UpdateColumns(columns...),
	)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunEnvironmentRepository) GetByID(ctx context.Context, organizationID, id uuid.UUID) (*Environment, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id = ?", id.String()).
				Where("?TableAlias.organization_id = ?", organizationID.String())
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "environment", id.String())
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "environment", Key: id.String()}
	}
	return records[0], nil
}

func (r *BunEnvironmentRepository) GetByIdentifier(ctx context.Context, organizationID uuid.UUID, identifier string) (*Environment, error) {
	normalized := NormalizeIdentifier(identifier)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.identifier = ?", normalized).
				Where("?TableAlias.organization_id = ?", organizationID.String())
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "environment", normalized)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "environment", Key: normalized}
	}
	return records[0], nil
}

func (r *BunEnvironmentRepository) ListByOrganization(ctx context.Context, organizationID uuid.UUID) ([]*Environment, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.organization_id = ?", organizationID.String())
	}))
	return records, err
}

func (r *BunEnvironmentRepository) Delete(ctx context.Context, organizationID, id uuid.UUID) error {
	record, err := r.GetByID(ctx, organizationID, id)
	if err != nil {
		return err
	}
	return r.repo.Delete(ctx, record)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
