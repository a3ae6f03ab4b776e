package envcmd

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-environments/internal/commands"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/google/uuid"
)

const createEnvironmentMessageType = "environments.create"

// CreateEnvironmentCommand registers a new environment for an organization.
type CreateEnvironmentCommand struct {
	OrganizationID uuid.UUID  `json:"organization_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Name           string     `json:"name"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
}

// Type implements command.Message.
func (CreateEnvironmentCommand) Type() string { return createEnvironmentMessageType }

// Validate ensures required fields are present.
func (m CreateEnvironmentCommand) Validate() error {
	errs := validation.Errors{}
	if m.OrganizationID == uuid.Nil {
		errs["organization_id"] = validation.NewError("environments.create.organization_required", "organization_id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = validation.NewError("environments.create.name_required", "name is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateEnvironmentHandler wraps environment creation.
type CreateEnvironmentHandler struct {
	inner *commands.Handler[CreateEnvironmentCommand]
}

// NewCreateEnvironmentHandler constructs a handler wired to the provided environment service.
func NewCreateEnvironmentHandler(service environments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateEnvironmentCommand]) *CreateEnvironmentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CreateEnvironmentCommand) error {
		created, err := service.CreateEnvironment(ctx, environments.CreateEnvironmentInput{
			OrganizationID: msg.OrganizationID,
			UserID:         msg.UserID,
			Name:           strings.TrimSpace(msg.Name),
			ParentID:       msg.ParentID,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"environment_id":  created.ID.String(),
			"organization_id": created.OrganizationID.String(),
			"identifier":      created.Identifier,
		}).Info("environments.command.created")
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateEnvironmentCommand]{
		commands.WithLogger[CreateEnvironmentCommand](baseLogger),
		commands.WithOperation[CreateEnvironmentCommand]("environments.create"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CreateEnvironmentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CreateEnvironmentCommand].
func (h *CreateEnvironmentHandler) Execute(ctx context.Context, msg CreateEnvironmentCommand) error {
	return h.inner.Execute(ctx, msg)
}
