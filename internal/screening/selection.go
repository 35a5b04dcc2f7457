package screening

// Source names the candidate that produced an analysis result.
type Source string

const (
	SourceAI  Source = "ai"
	SourceOCR Source = "ocr"
)

// Selection is the winning candidate with its provenance.
type Selection struct {
	Candidate
	Source      Source
	AIRationale string
	AIError     *string
}

// Select picks exactly one candidate. A judgment wins wholesale whenever one
// is available; otherwise the OCR candidate is used and aiErr, when non-nil,
// is retained as a message. Fields are never merged across candidates.
func Select(ocr Candidate, ai *Judgment, aiErr error) Selection {
	if ai != nil && aiErr == nil {
		return Selection{
			Candidate:   ai.Candidate,
			Source:      SourceAI,
			AIRationale: ai.Rationale,
		}
	}

	sel := Selection{
		Candidate: ocr,
		Source:    SourceOCR,
	}
	if aiErr != nil {
		msg := aiErr.Error()
		sel.AIError = &msg
	}
	return sel
}
