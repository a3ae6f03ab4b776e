package environments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/google/uuid"
)

// Service describes environment management capabilities.
type Service interface {
	CreateEnvironment(ctx context.Context, input CreateEnvironmentInput) (*Environment, error)
	UpdateEnvironment(ctx context.Context, input UpdateEnvironmentInput) (*Environment, error)
	DeleteEnvironment(ctx context.Context, input DeleteEnvironmentInput) error
	GetEnvironment(ctx context.Context, organizationID, id uuid.UUID) (*Environment, error)
	GetEnvironmentByIdentifier(ctx context.Context, organizationID uuid.UUID, identifier string) (*Environment, error)
	ListEnvironments(ctx context.Context, organizationID uuid.UUID) ([]*Environment, error)
	UpdateWidgetSettings(ctx context.Context, input UpdateWidgetSettingsInput) (*Environment, error)
}

// CreateEnvironmentInput captures the information required to register an environment.
type CreateEnvironmentInput struct {
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Name           string
	ParentID       *uuid.UUID
}

// UpdateEnvironmentInput captures mutable environment fields. Nil or empty
// values are never written; each field is considered independently.
type UpdateEnvironmentInput struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
	Name           *string
	Identifier     *string
	ParentID       *uuid.UUID
}

// DeleteEnvironmentInput identifies the environment to remove.
type DeleteEnvironmentInput struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	UserID         uuid.UUID
}

// UpdateWidgetSettingsInput sets the widget configuration for an environment.
type UpdateWidgetSettingsInput struct {
	ID                           uuid.UUID
	OrganizationID               uuid.UUID
	NotificationCenterEncryption bool
}

var (
	ErrEnvironmentRepositoryRequired   = errors.New("environments: repository required")
	ErrEnvironmentNameRequired         = errors.New("environments: name is required")
	ErrEnvironmentOrganizationRequired = errors.New("environments: organization id is required")
	ErrEnvironmentNotFound             = errors.New("environments: environment not found")
	ErrParentEnvironmentNotFound       = errors.New("environments: parent environment not found")
	ErrParentEnvironmentInvalid        = errors.New("environments: environment cannot be its own parent")
)

// IDGenerator produces environment record identifiers.
type IDGenerator func() uuid.UUID

// KeyIssuer issues API key material for a newly created environment. Wired by
// hosts that want initial keys minted at environment creation time.
type KeyIssuer func(ctx context.Context, organizationID, environmentID, userID uuid.UUID) error

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDGenerator overrides environment ID generation (primarily for tests).
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

// WithKeyIssuer wires an API key issuer invoked after environment creation.
func WithKeyIssuer(issuer KeyIssuer) ServiceOption {
	return func(s *service) {
		s.issueKey = issuer
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
	repo     EnvironmentRepository
	id       IDGenerator
	now      func() time.Time
	issueKey KeyIssuer
	logger   interfaces.Logger
}

// NewService constructs an environment service instance.
func NewService(repo EnvironmentRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrEnvironmentRepositoryRequired)
	}

	s := &service{
		repo:   repo,
		id:     uuid.New,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) CreateEnvironment(ctx context.Context, input CreateEnvironmentInput) (*Environment, error) {
	if input.OrganizationID == uuid.Nil {
		return nil, ErrEnvironmentOrganizationRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEnvironmentNameRequired
	}

	if input.ParentID != nil && *input.ParentID != uuid.Nil {
		if _, err := s.repo.GetByID(ctx, input.OrganizationID, *input.ParentID); err != nil {
			return nil, translateRepoError(err, ErrParentEnvironmentNotFound)
		}
	}

	now := s.now().UTC()
	record := &Environment{
		ID:             s.id(),
		Name:           name,
		Identifier:     NormalizeIdentifier(name),
		OrganizationID: input.OrganizationID,
		ParentID:       cloneUUID(input.ParentID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	if s.issueKey != nil {
		if err := s.issueKey(ctx, created.OrganizationID, created.ID, input.UserID); err != nil {
			return nil, err
		}
	}

	logging.WithFields(s.logger, map[string]any{
		"environment_id":  created.ID.String(),
		"organization_id": created.OrganizationID.String(),
		"identifier":      created.Identifier,
	}).Debug("environments.service.created")

	return cloneEnvironment(created), nil
}

func (s *service) UpdateEnvironment(ctx context.Context, input UpdateEnvironmentInput) (*Environment, error) {
	if input.ID == uuid.Nil || input.OrganizationID == uuid.Nil {
		return nil, ErrEnvironmentNotFound
	}
	env, err := s.repo.GetByID(ctx, input.OrganizationID, input.ID)
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}

	// Each field is included independently, and only when it carries a
	// non-empty value. Absent or empty fields are never written.
	columns := make([]string, 0, 4)
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			env.Name = name
			columns = append(columns, "name")
		}
	}
	if input.Identifier != nil {
		if identifier := NormalizeIdentifier(*input.Identifier); identifier != "" {
			env.Identifier = identifier
			columns = append(columns, "identifier")
		}
	}
	if input.ParentID != nil && *input.ParentID != uuid.Nil {
		if *input.ParentID == env.ID {
			return nil, ErrParentEnvironmentInvalid
		}
		if _, err := s.repo.GetByID(ctx, input.OrganizationID, *input.ParentID); err != nil {
			return nil, translateRepoError(err, ErrParentEnvironmentNotFound)
		}
		env.ParentID = cloneUUID(input.ParentID)
		columns = append(columns, "parent_id")
	}

	if len(columns) == 0 {
		return cloneEnvironment(env), nil
	}

	env.UpdatedAt = s.now().UTC()
	columns = append(columns, "updated_at")

	updated, err := s.repo.Update(ctx, env, columns...)
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}
	logging.WithFields(s.logger, map[string]any{
		"environment_id": updated.ID.String(),
		"columns":        columns,
	}).Debug("environments.service.updated")
	return cloneEnvironment(updated), nil
}

func (s *service) DeleteEnvironment(ctx context.Context, input DeleteEnvironmentInput) error {
	if input.ID == uuid.Nil || input.OrganizationID == uuid.Nil {
		return ErrEnvironmentNotFound
	}
	if err := s.repo.Delete(ctx, input.OrganizationID, input.ID); err != nil {
		return translateRepoError(err, ErrEnvironmentNotFound)
	}
	logging.WithFields(s.logger, map[string]any{
		"environment_id":  input.ID.String(),
		"organization_id": input.OrganizationID.String(),
	}).Debug("environments.service.deleted")
	return nil
}

func (s *service) GetEnvironment(ctx context.Context, organizationID, id uuid.UUID) (*Environment, error) {
	if id == uuid.Nil || organizationID == uuid.Nil {
		return nil, ErrEnvironmentNotFound
	}
	env, err := s.repo.GetByID(ctx, organizationID, id)
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}
	return cloneEnvironment(env), nil
}

func (s *service) GetEnvironmentByIdentifier(ctx context.Context, organizationID uuid.UUID, identifier string) (*Environment, error) {
	if organizationID == uuid.Nil || NormalizeIdentifier(identifier) == "" {
		return nil, ErrEnvironmentNotFound
	}
	env, err := s.repo.GetByIdentifier(ctx, organizationID, identifier)
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}
	return cloneEnvironment(env), nil
}

func (s *service) ListEnvironments(ctx context.Context, organizationID uuid.UUID) ([]*Environment, error) {
	if organizationID == uuid.Nil {
		return nil, ErrEnvironmentOrganizationRequired
	}
	records, err := s.repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	return cloneEnvironmentSlice(records), nil
}

func (s *service) UpdateWidgetSettings(ctx context.Context, input UpdateWidgetSettingsInput) (*Environment, error) {
	if input.ID == uuid.Nil || input.OrganizationID == uuid.Nil {
		return nil, ErrEnvironmentNotFound
	}
	env, err := s.repo.GetByID(ctx, input.OrganizationID, input.ID)
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}

	env.Widget.NotificationCenterEncryption = input.NotificationCenterEncryption
	env.UpdatedAt = s.now().UTC()

	updated, err := s.repo.Update(ctx, env, "widget_notification_center_encryption", "updated_at")
	if err != nil {
		return nil, translateRepoError(err, ErrEnvironmentNotFound)
	}
	return cloneEnvironment(updated), nil
}

func translateRepoError(err error, fallback error) error {
	if err == nil {
		return nil
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return fallback
	}
	return err
}
