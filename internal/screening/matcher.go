package screening

import (
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultViolationType labels matched rules that carry no violation type.
const DefaultViolationType = "Forbidden phrase detected"

// Matcher tests text against a fixed rule list. A rule matches when the
// case-folded text contains the case-folded phrase, or when the normalized
// text contains the normalized phrase. Normalization folds case, composes
// to NFC, and strips whitespace and zero-width spaces.
//
// The automata are built once per rule list and guarded by a mutex, so a
// Matcher can be shared across goroutines.
type Matcher struct {
	mu     sync.Mutex
	rules  []Rule
	folded *automaton
	normal *automaton
}

type automaton struct {
	matcher *ahocorasick.Matcher
	rules   [][]int
}

// NewMatcher builds a Matcher over rules. Rules with an empty or
// whitespace-only phrase are skipped; the remaining order is preserved.
func NewMatcher(rules []Rule) *Matcher {
	m := &Matcher{rules: make([]Rule, 0, len(rules))}

	foldedIdx := make(map[string][]int)
	normalIdx := make(map[string][]int)
	var foldedOrder, normalOrder []string

	for _, r := range rules {
		phrase := strings.TrimSpace(r.Phrase)
		if phrase == "" {
			continue
		}
		r.Phrase = phrase
		idx := len(m.rules)
		m.rules = append(m.rules, r)

		f := fold(phrase)
		if _, ok := foldedIdx[f]; !ok {
			foldedOrder = append(foldedOrder, f)
		}
		foldedIdx[f] = append(foldedIdx[f], idx)

		if n := normalize(phrase); n != "" {
			if _, ok := normalIdx[n]; !ok {
				normalOrder = append(normalOrder, n)
			}
			normalIdx[n] = append(normalIdx[n], idx)
		}
	}

	m.folded = newAutomaton(foldedOrder, foldedIdx)
	m.normal = newAutomaton(normalOrder, normalIdx)
	return m
}

// MatchFindings runs a one-off Matcher over text.
func MatchFindings(text string, rules []Rule) []Finding {
	return NewMatcher(rules).Match(text)
}

// Match returns one finding per matched phrase in rule order. When several
// rules share a phrase, the first one wins.
func (m *Matcher) Match(text string) []Finding {
	findings := make([]Finding, 0)
	if text == "" || len(m.rules) == 0 {
		return findings
	}

	hit := m.hits(text)
	seen := make(map[string]bool)

	for i, r := range m.rules {
		if !hit[i] || seen[r.Phrase] {
			continue
		}
		seen[r.Phrase] = true

		violation := strings.TrimSpace(r.ViolationType)
		if violation == "" {
			violation = DefaultViolationType
		}

		findings = append(findings, Finding{
			Text:          r.Phrase,
			ViolationType: violation,
			RiskLevel:     findingTier(r.RiskLevel),
			ReferenceID:   strings.TrimSpace(r.ReferenceID),
		})
	}

	return findings
}

// Tier returns the highest tier among rules matching text, or none.
func (m *Matcher) Tier(text string) RiskTier {
	tier := RiskNone
	if text == "" || len(m.rules) == 0 {
		return tier
	}

	hit := m.hits(text)
	for i, r := range m.rules {
		if hit[i] {
			tier = MaxTier(tier, findingTier(r.RiskLevel))
		}
	}
	return tier
}

// Candidate matches text and scores the findings into an OCR candidate.
func (m *Matcher) Candidate(text string) Candidate {
	return NewCandidate(m.Match(text))
}

func (m *Matcher) hits(text string) map[int]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	hit := make(map[int]bool)
	m.folded.collect(fold(text), hit)
	m.normal.collect(normalize(text), hit)
	return hit
}

func newAutomaton(patterns []string, index map[string][]int) *automaton {
	if len(patterns) == 0 {
		return nil
	}

	rules := make([][]int, len(patterns))
	for i, p := range patterns {
		rules[i] = index[p]
	}

	return &automaton{
		matcher: ahocorasick.NewStringMatcher(patterns),
		rules:   rules,
	}
}

func (a *automaton) collect(text string, hit map[int]bool) {
	if a == nil || text == "" {
		return
	}
	for _, p := range a.matcher.Match([]byte(text)) {
		if p < 0 || p >= len(a.rules) {
			continue
		}
		for _, idx := range a.rules[p] {
			hit[idx] = true
		}
	}
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\u200b' || r == '\ufeff' {
			return -1
		}
		return r
	}, norm.NFC.String(fold(s)))
}
