package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// UserUUID derives a stable identifier for an externally supplied user subject.
func UserUUID(subject string) uuid.UUID {
	return UUID("go-environments:user:" + strings.TrimSpace(subject))
}

// OrganizationUUID derives a stable identifier for an organization reference.
func OrganizationUUID(reference string) uuid.UUID {
	return UUID("go-environments:organization:" + strings.ToLower(strings.TrimSpace(reference)))
}

// EnvironmentUUID derives a stable identifier for an organization-scoped
// environment identifier. Used by hosts that address environments by slug.
func EnvironmentUUID(organizationID uuid.UUID, identifier string) uuid.UUID {
	return UUID("go-environments:environment:" + organizationID.String() + ":" + strings.ToLower(strings.TrimSpace(identifier)))
}
