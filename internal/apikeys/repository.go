package apikeys

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewApiKeyRepository creates a repository for API key records.
func NewApiKeyRepository(db *bun.DB) repository.Repository[*ApiKey] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ApiKey]{
		NewRecord: func() *ApiKey { return &ApiKey{} },
		GetID: func(key *ApiKey) uuid.UUID {
			return key.ID
		},
		SetID: func(key *ApiKey, id uuid.UUID) {
			key.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(key *ApiKey) string {
			return key.Key
		},
	})
}
