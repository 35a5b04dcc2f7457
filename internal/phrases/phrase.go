// Package phrases stores the forbidden-phrase rules that drive OCR screening.
// Analyses read an ordered Snapshot of the rules; administrators edit them
// through the HTTP handler.
package phrases

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/lifecycle"
	"github.com/JaimeStill/adscreen/pkg/pagination"
)

// Phrase is a stored forbidden-phrase rule.
type Phrase struct {
	ID            uuid.UUID          `json:"id"`
	Phrase        string             `json:"phrase"`
	RiskLevel     screening.RiskTier `json:"risk_level"`
	ViolationType *string            `json:"violation_type"`
	ReferenceID   *string            `json:"reference_id"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// Rule converts p to the matcher representation.
func (p Phrase) Rule() screening.Rule {
	r := screening.Rule{Phrase: p.Phrase, RiskLevel: p.RiskLevel}
	if p.ViolationType != nil {
		r.ViolationType = *p.ViolationType
	}
	if p.ReferenceID != nil {
		r.ReferenceID = *p.ReferenceID
	}
	return r
}

// Command creates or replaces a phrase. On update, nil ViolationType and
// ReferenceID keep the stored values.
type Command struct {
	Phrase        string  `json:"phrase"`
	RiskLevel     string  `json:"risk_level"`
	ViolationType *string `json:"violation_type,omitempty"`
	ReferenceID   *string `json:"reference_id,omitempty"`
}

// Validate trims the command and checks it against catalog.
func (c *Command) Validate(catalog *screening.Catalog) error {
	c.Phrase = strings.TrimSpace(c.Phrase)
	if c.Phrase == "" {
		return ErrInvalidPhrase
	}
	if _, ok := screening.ParseRiskTier(c.RiskLevel); !ok {
		return ErrInvalidRiskLevel
	}

	c.ViolationType = trimmedOrNil(c.ViolationType)
	c.ReferenceID = trimmedOrNil(c.ReferenceID)
	if c.ReferenceID != nil && !catalog.Has(*c.ReferenceID) {
		return ErrUnknownReference
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// System defines the forbidden-phrase store contract.
type System interface {
	Handler() *Handler
	// Start registers a startup hook that seeds the default rules into an
	// empty table.
	Start(lc *lifecycle.Coordinator) error
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Phrase], error)
	Find(ctx context.Context, id uuid.UUID) (*Phrase, error)
	Create(ctx context.Context, cmd Command) (*Phrase, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Phrase, error)
	// Delete removes a phrase and returns the removed record.
	Delete(ctx context.Context, id uuid.UUID) (*Phrase, error)
	// Snapshot returns every rule in insertion order.
	Snapshot(ctx context.Context) ([]screening.Rule, error)
	// Seed inserts rules when the table is empty and fills missing violation
	// types and reference ids of stored phrases that match a rule.
	// It returns the number of inserted rules.
	Seed(ctx context.Context, rules []screening.Rule) (int, error)
}
