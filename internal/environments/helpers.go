package environments

import (
	"strings"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// NormalizeIdentifier applies slug normalization rules to environment
// identifiers so they stay URL and API-key safe.
func NormalizeIdentifier(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized, err := slug.Normalize(trimmed)
	if err != nil || normalized == "" {
		return strings.ToLower(trimmed)
	}
	return normalized
}

func cloneEnvironment(env *Environment) *Environment {
	if env == nil {
		return nil
	}
	cloned := *env
	cloned.ParentID = cloneUUID(env.ParentID)
	return &cloned
}

func cloneEnvironmentSlice(src []*Environment) []*Environment {
	if len(src) == 0 {
		return nil
	}
	out := make([]*Environment, len(src))
	for i, env := range src {
		out[i] = cloneEnvironment(env)
	}
	return out
}

func cloneUUID(value *uuid.UUID) *uuid.UUID {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
