package environments

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WidgetSettings configures the embeddable notification widget exposed by an
// environment. The encryption flag controls notification-center payload
// encryption for widget subscribers.
type WidgetSettings struct {
	NotificationCenterEncryption bool `bun:"notification_center_encryption,notnull,default:false" json:"notification_center_encryption"`
}

// Environment defines a named deployment context scoped to an organization.
type Environment struct {
	bun.BaseModel `bun:"table:environments,alias:e"`

	ID             uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name           string         `bun:"name,notnull" json:"name"`
	Identifier     string         `bun:"identifier,notnull" json:"identifier"`
	OrganizationID uuid.UUID      `bun:"organization_id,notnull,type:uuid" json:"organization_id"`
	ParentID       *uuid.UUID     `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Widget         WidgetSettings `bun:"embed:widget_" json:"widget"`
	CreatedAt      time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt      time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}
