package screening

import (
	"context"
	"fmt"
	"strings"
)

// LegalSummaryMarker heads the legal summary appended to a rationale.
const LegalSummaryMarker = "Legal basis summary"

const (
	noFindingsDetails = "No expressions matching a prohibited advertising type were found in the recognized text."
	legalNotes        = "This result is an advisory review against a summary of Medical Service Act Article 56 (prohibited medical advertising). " +
		"If the advertising medium is subject to pre-review, confirm whether pre-review is required under Article 57 of the Act and Article 24 of its Enforcement Decree."
)

// LegalDetails enumerates findings as one line per finding.
func LegalDetails(findings []Finding) string {
	if len(findings) == 0 {
		return noFindingsDetails
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d legally risky expression(s) detected:", len(findings))
	for _, f := range findings {
		fmt.Fprintf(&b, "\n- %q: %s", f.Text, f.ViolationType)
		if f.ReferenceID != "" {
			fmt.Fprintf(&b, " (%s)", f.ReferenceID)
		}
	}
	return b.String()
}

// LegalSummary is the finding enumeration followed by the fixed disclaimer.
func LegalSummary(findings []Finding) string {
	return LegalDetails(findings) + "\n\n" + legalNotes
}

// AppendLegalSummary appends the marker and summary to text.
func AppendLegalSummary(text, summary string) string {
	return text + "\n\n" + LegalSummaryMarker + ":\n" + summary
}

// SummarizeFunc produces a narrative rationale on demand.
type SummarizeFunc func(ctx context.Context) (string, error)

// ComposeRationale returns a non-empty rationale. A judged narrative is kept
// and gets the legal summary appended unless it already carries the marker.
// Without a narrative, summarize is asked for one; its output gets the legal
// summary appended, and on failure or empty output the legal summary itself
// is the rationale.
func ComposeRationale(ctx context.Context, narrative, legalSummary string, summarize SummarizeFunc) string {
	narrative = strings.TrimSpace(narrative)
	if narrative != "" {
		if strings.Contains(narrative, LegalSummaryMarker) {
			return narrative
		}
		return AppendLegalSummary(narrative, legalSummary)
	}

	if summarize != nil {
		if text, err := summarize(ctx); err == nil {
			if text = strings.TrimSpace(text); text != "" {
				return AppendLegalSummary(text, legalSummary)
			}
		}
	}

	if strings.TrimSpace(legalSummary) == "" {
		return noFindingsDetails
	}
	return legalSummary
}
