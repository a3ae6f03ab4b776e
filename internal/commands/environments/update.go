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

const updateEnvironmentMessageType = "environments.update"

// UpdateEnvironmentCommand applies a partial update to an environment. Nil or
// empty fields are left unchanged; each field is considered independently.
type UpdateEnvironmentCommand struct {
	EnvironmentID  uuid.UUID  `json:"environment_id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Name           *string    `json:"name,omitempty"`
	Identifier     *string    `json:"identifier,omitempty"`
	ParentID       *uuid.UUID `json:"parent_id,omitempty"`
}

// Type implements command.Message.
func (UpdateEnvironmentCommand) Type() string { return updateEnvironmentMessageType }

// Validate ensures the command addresses a specific environment.
func (m UpdateEnvironmentCommand) Validate() error {
	errs := validation.Errors{}
	if m.EnvironmentID == uuid.Nil {
		errs["environment_id"] = validation.NewError("environments.update.environment_required", "environment_id is required")
	}
	if m.OrganizationID == uuid.Nil {
		errs["organization_id"] = validation.NewError("environments.update.organization_required", "organization_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEnvironmentHandler wraps partial environment updates.
type UpdateEnvironmentHandler struct {
	inner *commands.Handler[UpdateEnvironmentCommand]
}

// NewUpdateEnvironmentHandler constructs a handler wired to the provided environment service.
func NewUpdateEnvironmentHandler(service environments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateEnvironmentCommand]) *UpdateEnvironmentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UpdateEnvironmentCommand) error {
		updated, err := service.UpdateEnvironment(ctx, environments.UpdateEnvironmentInput{
			ID:             msg.EnvironmentID,
			OrganizationID: msg.OrganizationID,
			UserID:         msg.UserID,
			Name:           msg.Name,
			Identifier:     msg.Identifier,
			ParentID:       msg.ParentID,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"environment_id": updated.ID.String(),
			"identifier":     updated.Identifier,
		}).Info("environments.command.updated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateEnvironmentCommand]{
		commands.WithLogger[UpdateEnvironmentCommand](baseLogger),
		commands.WithOperation[UpdateEnvironmentCommand]("environments.update"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateEnvironmentHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateEnvironmentCommand].
func (h *UpdateEnvironmentHandler) Execute(ctx context.Context, msg UpdateEnvironmentCommand) error {
	return h.inner.Execute(ctx, msg)
}
