package apikeyscmd

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-environments/internal/apikeys"
	"github.com/goliatone/go-environments/internal/commands"
	"github.com/goliatone/go-environments/internal/logging"
	"github.com/goliatone/go-environments/pkg/interfaces"
	"github.com/google/uuid"
)

const regenerateApiKeysMessageType = "apikeys.regenerate"

// RegenerateApiKeysCommand revokes every key bound to an environment and
// issues a fresh one in its place.
type RegenerateApiKeysCommand struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	EnvironmentID  uuid.UUID `json:"environment_id"`
	UserID         uuid.UUID `json:"user_id"`
}

// Type implements command.Message.
func (RegenerateApiKeysCommand) Type() string { return regenerateApiKeysMessageType }

// Validate ensures the command targets a specific environment scope.
func (m RegenerateApiKeysCommand) Validate() error {
	errs := validation.Errors{}
	if m.OrganizationID == uuid.Nil {
		errs["organization_id"] = validation.NewError("apikeys.regenerate.organization_required", "organization_id is required")
	}
	if m.EnvironmentID == uuid.Nil {
		errs["environment_id"] = validation.NewError("apikeys.regenerate.environment_required", "environment_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RegenerateApiKeysHandler wraps key rotation for an environment.
type RegenerateApiKeysHandler struct {
	inner *commands.Handler[RegenerateApiKeysCommand]
}

// NewRegenerateApiKeysHandler constructs a handler wired to the provided key service.
func NewRegenerateApiKeysHandler(service apikeys.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RegenerateApiKeysCommand]) *RegenerateApiKeysHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RegenerateApiKeysCommand) error {
		rotated, err := service.Rotate(ctx, msg.OrganizationID, msg.EnvironmentID, msg.UserID)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"environment_id":  msg.EnvironmentID.String(),
			"organization_id": msg.OrganizationID.String(),
			"keys":            len(rotated),
		}).Info("apikeys.command.regenerated")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RegenerateApiKeysCommand]{
		commands.WithLogger[RegenerateApiKeysCommand](baseLogger),
		commands.WithOperation[RegenerateApiKeysCommand]("apikeys.regenerate"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RegenerateApiKeysHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RegenerateApiKeysCommand].
func (h *RegenerateApiKeysHandler) Execute(ctx context.Context, msg RegenerateApiKeysCommand) error {
	return h.inner.Execute(ctx, msg)
}
