package apikeys

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ApiKey is a credential scoped to an organization/environment pair used for
// external API authentication.
type ApiKey struct {
	bun.BaseModel `bun:"table:api_keys,alias:ak"`

	ID             uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key            string    `bun:"key,notnull" json:"key"`
	EnvironmentID  uuid.UUID `bun:"environment_id,notnull,type:uuid" json:"environment_id"`
	OrganizationID uuid.UUID `bun:"organization_id,notnull,type:uuid" json:"organization_id"`
	UserID         uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	CreatedAt      time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

func cloneApiKey(key *ApiKey) *ApiKey {
	if key == nil {
		return nil
	}
	cloned := *key
	return &cloned
}

func cloneApiKeySlice(src []*ApiKey) []*ApiKey {
	if len(src) == 0 {
		return nil
	}
	out := make([]*ApiKey, len(src))
	for i, key := range src {
		out[i] = cloneApiKey(key)
	}
	return out
}
