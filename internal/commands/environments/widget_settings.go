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

const updateWidgetSettingsMessageType = "environments.widget.settings"

// UpdateWidgetSettingsCommand persists widget configuration onto an environment.
type UpdateWidgetSettingsCommand struct {
	EnvironmentID                uuid.UUID `json:"environment_id"`
	OrganizationID               uuid.UUID `json:"organization_id"`
	NotificationCenterEncryption bool      `json:"notification_center_encryption"`
}

// Type implements command.Message.
func (UpdateWidgetSettingsCommand) Type() string { return updateWidgetSettingsMessageType }

// Validate ensures the command addresses a specific environment.
func (m UpdateWidgetSettingsCommand) Validate() error {
	errs := validation.Errors{}
	if m.EnvironmentID == uuid.Nil {
		errs["environment_id"] = validation.NewError("environments.widget.settings.environment_required", "environment_id is required")
	}
	if m.OrganizationID == uuid.Nil {
		errs["organization_id"] = validation.NewError("environments.widget.settings.organization_required", "organization_id is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWidgetSettingsHandler wraps widget settings updates.
type UpdateWidgetSettingsHandler struct {
	inner *commands.Handler[UpdateWidgetSettingsCommand]
}

// NewUpdateWidgetSettingsHandler constructs a handler wired to the provided environment service.
func NewUpdateWidgetSettingsHandler(service environments.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateWidgetSettingsCommand]) *UpdateWidgetSettingsHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg UpdateWidgetSettingsCommand) error {
		updated, err := service.UpdateWidgetSettings(ctx, environments.UpdateWidgetSettingsInput{
			ID:                           msg.EnvironmentID,
			OrganizationID:               msg.OrganizationID,
			NotificationCenterEncryption: msg.NotificationCenterEncryption,
		})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"environment_id": updated.ID.String(),
			"encryption":     updated.Widget.NotificationCenterEncryption,
		}).Info("environments.command.widget_settings")
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateWidgetSettingsCommand]{
		commands.WithLogger[UpdateWidgetSettingsCommand](baseLogger),
		commands.WithOperation[UpdateWidgetSettingsCommand]("environments.widget.settings"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpdateWidgetSettingsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpdateWidgetSettingsCommand].
func (h *UpdateWidgetSettingsHandler) Execute(ctx context.Context, msg UpdateWidgetSettingsCommand) error {
	return h.inner.Execute(ctx, msg)
}
