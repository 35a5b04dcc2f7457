package screening

import (
	"errors"
	"math"
	"strings"

	"github.com/JaimeStill/adscreen/pkg/formatting"
)

// DefaultJudgedViolationType labels judged findings that name no violation type.
const DefaultJudgedViolationType = "Possible legal violation"

// ErrUnparsableJudgment is returned when a judge response holds no JSON object.
var ErrUnparsableJudgment = errors.New("judge response could not be parsed as JSON")

// Judgment is a normalized generative-model verdict.
type Judgment struct {
	Candidate
	Rationale string `json:"rationale"`
}

// ParseJudgment normalizes a raw judge response. It expects an object shaped
// {passScore, riskLevel, findings[{text, violationType, riskLevel, referenceId,
// rationale}], rationale} and tolerates surrounding prose or code fences.
//
// Findings with empty text are dropped and reference ids unknown to catalog
// are cleared. A finite passScore is rounded and clamped; otherwise the score
// is derived from the findings. An invalid riskLevel is derived the same way.
func ParseJudgment(raw string, catalog *Catalog) (*Judgment, error) {
	obj, err := formatting.Parse[map[string]any](raw)
	if err != nil || obj == nil {
		return nil, ErrUnparsableJudgment
	}

	findings := judgedFindings(obj["findings"], catalog)
	derived := Summarize(findings)

	score := derived.PassScore
	if v, ok := obj["passScore"].(float64); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
		score = DefaultPolicy.Clamp(int(math.Max(-1e9, math.Min(1e9, math.Round(v)))))
	}

	tier := derived.OverallRisk
	if s, ok := obj["riskLevel"].(string); ok {
		if t, ok := ParseRiskTier(strings.TrimSpace(s)); ok {
			tier = t
		}
	}

	return &Judgment{
		Candidate: Candidate{
			PassScore: score,
			RiskLevel: tier,
			Findings:  findings,
		},
		Rationale: trimmedString(obj["rationale"]),
	}, nil
}

func judgedFindings(v any, catalog *Catalog) []Finding {
	findings := make([]Finding, 0)

	items, ok := v.([]any)
	if !ok {
		return findings
	}

	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		text := trimmedString(m["text"])
		if text == "" {
			continue
		}

		violation := trimmedString(m["violationType"])
		if violation == "" {
			violation = DefaultJudgedViolationType
		}

		tier, ok := ParseRiskTier(trimmedString(m["riskLevel"]))
		if !ok {
			tier = RiskLow
		}

		ref := trimmedString(m["referenceId"])
		if catalog == nil || !catalog.Has(ref) {
			ref = ""
		}

		findings = append(findings, Finding{
			Text:          text,
			ViolationType: violation,
			RiskLevel:     tier,
			ReferenceID:   ref,
			Rationale:     trimmedString(m["rationale"]),
		})
	}

	return findings
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
