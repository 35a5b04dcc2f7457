package audit

import (
	"net/url"

	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "audit_logs", "a").
	Project("id", "ID").
	Project("action", "Action").
	Project("actor", "Actor").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows audit log queries. Actor is exact, Action is contains.
type Filters struct {
	Actor  *string `json:"actor,omitempty"`
	Action *string `json:"action,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Actor", f.Actor).
		WhereContains("Action", f.Action)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if a := values.Get("actor"); a != "" {
		f.Actor = &a
	}
	if a := values.Get("action"); a != "" {
		f.Action = &a
	}
	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(&e.ID, &e.Action, &e.Actor, &e.CreatedAt)
	return e, err
}
