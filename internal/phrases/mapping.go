package phrases

import (
	"net/url"

	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

const columns = "id, phrase, risk_level, violation_type, reference_id, updated_at"

var projection = query.
	NewProjectionMap("public", "forbidden_phrases", "p").
	Project("id", "ID").
	Project("phrase", "Phrase").
	Project("risk_level", "RiskLevel").
	Project("violation_type", "ViolationType").
	Project("reference_id", "ReferenceID").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "UpdatedAt",
	Descending: true,
}

// Filters narrows phrase queries.
type Filters struct {
	RiskLevel   *string `json:"risk_level,omitempty"`
	ReferenceID *string `json:"reference_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereEquals("ReferenceID", f.ReferenceID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if r := values.Get("risk_level"); r != "" {
		f.RiskLevel = &r
	}
	if r := values.Get("reference_id"); r != "" {
		f.ReferenceID = &r
	}
	return f
}

func scanPhrase(s repository.Scanner) (Phrase, error) {
	var p Phrase
	var risk string
	err := s.Scan(&p.ID, &p.Phrase, &risk, &p.ViolationType, &p.ReferenceID, &p.UpdatedAt)
	p.RiskLevel = screening.RiskTier(risk)
	return p, err
}

func scanRule(s repository.Scanner) (screening.Rule, error) {
	var r screening.Rule
	var risk string
	var violation, reference *string
	if err := s.Scan(&r.Phrase, &risk, &violation, &reference); err != nil {
		return r, err
	}
	r.RiskLevel = screening.RiskTier(risk)
	if violation != nil {
		r.ViolationType = *violation
	}
	if reference != nil {
		r.ReferenceID = *reference
	}
	return r, nil
}
