package envcmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-environments/internal/commands"
	"github.com/goliatone/go-environments/internal/environments"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/google/uuid"
)

const deleteEnvironmentMessageType = "environments.delete"

// DeleteEnvironmentCommand removes an environment from its organization.
type DeleteEnvironmentCommand struct {
	EnvironmentID  uuid.UUID `json:"environment_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	UserID         uuid.UUID `json:"user_id"`
}

// Type implements command.Message.
func (DeleteEnvironmentCommand) Type() string { return deleteEnvironmentMessageType }

// Validate ensures the command addresses a specific environment.
func (m DeleteEnvironmentCommand) Validate() error {
	errs := validation.Errors{}
	if m.EnvironmentID == uuid.Nil {
		errs["environment_id"] = validation.NewError("environments.delete.environment_required", "environment_id is required")
	}
	if m.OrganizationID == uuid.Nil {
		errs["organization_id"] = validation.NewError("environments.delete.organization_required", "organization_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteEnvironmentHandler wraps environment deletion.
type DeleteEnvironmentHandler struct {
	inner *commands.Handler[DeleteEnvironmentCommand]
}

// NewDeleteEnvironmentHandler constructs a handler wired to the provided environment service.
func NewDeleteEnvironmentHandler(service environments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteEnvironmentCommand]) *DeleteEnvironmentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteEnvironmentCommand) error {
		if err := service.DeleteEnvironment(ctx, environments.DeleteEnvironmentInput{
			ID:             msg.EnvironmentID,
			OrganizationID: msg.OrganizationID,
			UserID:         msg.UserID,
		}); err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"environment_id":  msg.EnvironmentID.String(),
			"organization_id": msg.OrganizationID.String(),
		}).Info("environments.command.deleted")
		return nil
	}

	handlerOpts := []commands.HandlerOption[DeleteEnvironmentCommand]{
		commands.WithLogger[DeleteEnvironmentCommand](baseLogger),
		commands.WithOperation[DeleteEnvironmentCommand]("environments.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteEnvironmentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteEnvironmentCommand].
func (h *DeleteEnvironmentHandler) Execute(ctx context.Context, msg DeleteEnvironmentCommand) error {
	return h.inner.Execute(ctx, msg)
}
