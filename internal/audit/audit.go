// Package audit records administrative and analysis actions. Recording is
// skipped while the audit_log system setting is off.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/pkg/pagination"
)

// Entry is a single audit log line.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"created_at"`
}

// Recorder appends audit entries.
type Recorder interface {
	Record(ctx context.Context, action, actor string) error
}

// System defines the audit log contract.
type System interface {
	Recorder
	Handler() *Handler
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
}
