package apikeys

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

// BunApiKeyRepository implements ApiKeyRepository with optional caching.
type BunApiKeyRepository struct {
	repo repository.Repository[*ApiKey]
}

// NewBunApiKeyRepository creates an API key repository without caching.
func NewBunApiKeyRepository(db *bun.DB) *BunApiKeyRepository {
	return NewBunApiKeyRepositoryWithCache(db, nil, nil)
}

// NewBunApiKeyRepositoryWithCache creates an API key repository with caching support.
func NewBunApiKeyRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunApiKeyRepository {
	base := NewApiKeyRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunApiKeyRepository{repo: base}
}

func (r *BunApiKeyRepository) Create(ctx context.Context, key *ApiKey) (*ApiKey, error) {
	record, err := r.repo.Create(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "api key", key.ID.String())
	}
	return record, nil
}

func (r *BunApiKeyRepository) ListByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) ([]*ApiKey, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.environment_id = ?", environmentID.String()).
			Where("?TableAlias.organization_id = ?", organizationID.String())
	}))
	if err != nil {
		return nil, mapRepositoryError(err, "api key", environmentID.String())
	}
	return records, nil
}

func (r *BunApiKeyRepository) DeleteByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) error {
	records, err := r.ListByEnvironment(ctx, organizationID, environmentID)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := r.repo.Delete(ctx, record); err != nil {
			return mapRepositoryError(err, "api key", record.ID.String())
		}
	}
	return nil
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
