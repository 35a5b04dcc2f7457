package screening

// RiskTier is the ordered risk classification none < low < medium < high.
type RiskTier string

const (
	RiskNone   RiskTier = "none"
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// Rank returns the position of t in the tier order. Unknown values rank as none.
func (t RiskTier) Rank() int {
	switch t {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

// ParseRiskTier accepts the finding tiers low, medium, and high.
func ParseRiskTier(s string) (RiskTier, bool) {
	switch t := RiskTier(s); t {
	case RiskLow, RiskMedium, RiskHigh:
		return t, true
	}
	return "", false
}

// MaxTier returns the higher of two tiers.
func MaxTier(a, b RiskTier) RiskTier {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

func findingTier(t RiskTier) RiskTier {
	if v, ok := ParseRiskTier(string(t)); ok {
		return v
	}
	return RiskLow
}

// Policy is the penalty schedule used to turn tier counts into a pass score.
type Policy struct {
	HighPenalty   int
	MediumPenalty int
	LowPenalty    int
	MinScore      int
	MaxScore      int
}

// DefaultPolicy deducts 30, 15, and 5 points per high, medium, and low finding
// from a perfect score of 100, floored at 0.
var DefaultPolicy = Policy{
	HighPenalty:   30,
	MediumPenalty: 15,
	LowPenalty:    5,
	MinScore:      0,
	MaxScore:      100,
}

// TierCounts tallies findings per tier. None is never counted.
type TierCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// CountTiers tallies the risk tiers of findings.
func CountTiers(findings []Finding) TierCounts {
	tiers := make([]RiskTier, len(findings))
	for i, f := range findings {
		tiers[i] = f.RiskLevel
	}
	return CountRiskTiers(tiers...)
}

// CountRiskTiers tallies bare tiers, ignoring none and unknown values.
func CountRiskTiers(tiers ...RiskTier) TierCounts {
	var c TierCounts
	for _, t := range tiers {
		switch t {
		case RiskHigh:
			c.High++
		case RiskMedium:
			c.Medium++
		case RiskLow:
			c.Low++
		}
	}
	return c
}

// Summary is the aggregated outcome of a set of findings.
type Summary struct {
	OverallRisk RiskTier `json:"overall_risk"`
	PassScore   int      `json:"pass_score"`
}

// Aggregate computes the overall tier and clamped pass score for counts.
// Zero findings is a clean result: low risk with the maximum score.
func (p Policy) Aggregate(c TierCounts) Summary {
	overall := RiskLow
	switch {
	case c.High > 0:
		overall = RiskHigh
	case c.Medium > 0:
		overall = RiskMedium
	}

	penalty := c.High*p.HighPenalty + c.Medium*p.MediumPenalty + c.Low*p.LowPenalty

	return Summary{
		OverallRisk: overall,
		PassScore:   p.Clamp(p.MaxScore - penalty),
	}
}

// Clamp bounds score to [MinScore, MaxScore].
func (p Policy) Clamp(score int) int {
	return max(p.MinScore, min(p.MaxScore, score))
}

// Summarize aggregates findings with DefaultPolicy.
func Summarize(findings []Finding) Summary {
	return DefaultPolicy.Aggregate(CountTiers(findings))
}
