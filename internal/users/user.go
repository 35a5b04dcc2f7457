// Package users manages the accounts that may act on the service.
package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/pkg/pagination"
)

// Status values for an account.
const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// User is an account with a role.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand adds an account. Status defaults to active.
type CreateCommand struct {
	Email  string    `json:"email"`
	Role   auth.Role `json:"role"`
	Status string    `json:"status,omitempty"`
}

// UpdateCommand replaces the role and status of an account.
type UpdateCommand struct {
	Role   auth.Role `json:"role"`
	Status string    `json:"status"`
}

// System defines the users contract.
type System interface {
	Handler() *Handler
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*User, error)
}

// Normalize trims the email and fills the default status, then validates.
func (c *CreateCommand) Normalize() error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return validate(c.Role, c.Status)
}

// Validate checks the role and status.
func (c UpdateCommand) Validate() error {
	return validate(c.Role, c.Status)
}

func validate(role auth.Role, status string) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	if status != StatusActive && status != StatusDisabled {
		return ErrInvalidStatus
	}
	return nil
}
