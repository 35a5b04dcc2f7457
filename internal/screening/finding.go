// Package screening implements the deterministic core of ad screening.
// It matches OCR text against forbidden-phrase rules, aggregates findings
// into a pass score and risk tier, maps OCR geometry to highlight boxes,
// resolves legal references, normalizes generative judgments, and selects
// the single candidate that becomes an analysis result.
package screening

// Rule is a forbidden phrase with its classification metadata.
// Phrase text is the dedup key during matching.
type Rule struct {
	Phrase        string   `json:"phrase"`
	RiskLevel     RiskTier `json:"risk_level"`
	ViolationType string   `json:"violation_type,omitempty"`
	ReferenceID   string   `json:"reference_id,omitempty"`
}

// Finding is a single detected risk expression.
type Finding struct {
	Text          string   `json:"text"`
	ViolationType string   `json:"violation_type"`
	RiskLevel     RiskTier `json:"risk_level"`
	ReferenceID   string   `json:"reference_id,omitempty"`
	Rationale     string   `json:"rationale,omitempty"`
}

// Candidate is one complete, internally consistent scoring result
// produced by a single source.
type Candidate struct {
	PassScore int       `json:"pass_score"`
	RiskLevel RiskTier  `json:"risk_level"`
	Findings  []Finding `json:"findings"`
}

// NewCandidate scores findings with the default policy.
func NewCandidate(findings []Finding) Candidate {
	if findings == nil {
		findings = []Finding{}
	}
	s := Summarize(findings)
	return Candidate{
		PassScore: s.PassScore,
		RiskLevel: s.OverallRisk,
		Findings:  findings,
	}
}
