// Package settings manages the singleton system settings row.
package settings

import (
	"context"
	"time"
)

// Settings holds service-wide administrative switches.
type Settings struct {
	AuditLog  bool      `json:"audit_log"`
	Retention string    `json:"retention"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateCommand replaces the settings. Nil fields keep their current value.
type UpdateCommand struct {
	AuditLog  *bool   `json:"audit_log"`
	Retention *string `json:"retention"`
}

// System defines the settings contract.
type System interface {
	Handler() *Handler
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, cmd UpdateCommand) (*Settings, error)
}
