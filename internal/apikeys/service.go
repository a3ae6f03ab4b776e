package apikeys

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/google/uuid"
)

// Service describes API key management capabilities. Rotation deletes the
// environment's key set before issuing replacement material, so callers
// observe the old keys invalid as soon as Rotate returns.
type Service interface {
	ListByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) ([]*ApiKey, error)
	Issue(ctx context.Context, organizationID, environmentID, userID uuid.UUID) (*ApiKey, error)
	Rotate(ctx context.Context, organizationID, environmentID, userID uuid.UUID) ([]*ApiKey, error)
}

var (
	ErrApiKeyRepositoryRequired = errors.New("apikeys: repository required")
	ErrApiKeyScopeRequired      = errors.New("apikeys: organization and environment ids are required")
)

// IDGenerator produces API key record identifiers.
type IDGenerator func() uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithGenerator overrides the key material generator.
func WithGenerator(generator Generator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.generate = generator
		}
	}
}

// WithIDGenerator overrides record ID generation (primarily for tests).
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger used for structured diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo     ApiKeyRepository
	generate Generator
	id       IDGenerator
	now      func() time.Time
	logger   interfaces.Logger
}

// NewService constructs an API key service instance.
func NewService(repo ApiKeyRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrApiKeyRepositoryRequired)
	}

	s := &service{
		repo:     repo,
		generate: NewRandomGenerator(),
		id:       uuid.New,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) ListByEnvironment(ctx context.Context, organizationID, environmentID uuid.UUID) ([]*ApiKey, error) {
	if organizationID == uuid.Nil || environmentID == uuid.Nil {
		return nil, ErrApiKeyScopeRequired
	}
	records, err := s.repo.ListByEnvironment(ctx, organizationID, environmentID)
	if err != nil {
		return nil, err
	}
	return cloneApiKeySlice(records), nil
}

func (s *service) Issue(ctx context.Context, organizationID, environmentID, userID uuid.UUID) (*ApiKey, error) {
	if organizationID == uuid.Nil || environmentID == uuid.Nil {
		return nil, ErrApiKeyScopeRequired
	}

	material, err := s.generate.Generate()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &ApiKey{
		ID:             s.id(),
		Key:            material,
		EnvironmentID:  environmentID,
		OrganizationID: organizationID,
		UserID:         userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{
		"key_id":          created.ID.String(),
		"environment_id":  environmentID.String(),
		"organization_id": organizationID.String(),
	}).Debug("apikeys.service.issued")
	return cloneApiKey(created), nil
}

func (s *service) Rotate(ctx context.Context, organizationID, environmentID, userID uuid.UUID) ([]*ApiKey, error) {
	if organizationID == uuid.Nil || environmentID == uuid.Nil {
		return nil, ErrApiKeyScopeRequired
	}

	if err := s.repo.DeleteByEnvironment(ctx, organizationID, environmentID); err != nil {
		return nil, err
	}

	issued, err := s.Issue(ctx, organizationID, environmentID, userID)
	if err != nil {
		return nil, err
	}
	logging.WithFields(s.logger, map[string]any{
		"environment_id":  environmentID.String(),
		"organization_id": organizationID.String(),
	}).Info("apikeys.service.rotated")
	return []*ApiKey{issued}, nil
}
