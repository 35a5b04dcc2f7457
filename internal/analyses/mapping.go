package analyses

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/query"
	"github.com/JaimeStill/adscreen/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analysis_results", "r").
	Project("id", "ID").
	Project("ad_name", "AdName").
	Project("created_at", "CreatedAt").
	Project("pass_score", "PassScore").
	Project("risk_level", "RiskLevel").
	Project("analysis_source", "AnalysisSource").
	Project("ai_error", "AIError").
	Project("status", "Status").
	Project("image_file_id", "ImageFileID").
	Project("ocr_full_text", "OCRFullText").
	Project("ocr_boxes", "OCRBoxes").
	Project("findings", "Findings").
	Project("ai_rationale", "AIRationale").
	Project(`"references"`, "References").
	Project("requested_by", "RequestedBy")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters narrows history queries. AdName is contains, Since and MinScore
// are lower bounds, the rest exact.
type Filters struct {
	RiskLevel      *string    `json:"risk_level,omitempty"`
	AnalysisSource *string    `json:"analysis_source,omitempty"`
	AdName         *string    `json:"ad_name,omitempty"`
	RequestedBy    *string    `json:"requested_by,omitempty"`
	Since          *time.Time `json:"since,omitempty"`
	MinScore       *int       `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("RiskLevel", f.RiskLevel).
		WhereEquals("AnalysisSource", f.AnalysisSource).
		WhereContains("AdName", f.AdName).
		WhereEquals("RequestedBy", f.RequestedBy).
		WhereAtLeast("CreatedAt", f.Since).
		WhereAtLeast("PassScore", f.MinScore)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := values.Get("risk_level"); v != "" {
		f.RiskLevel = &v
	}
	if v := values.Get("analysis_source"); v != "" {
		f.AnalysisSource = &v
	}
	if v := values.Get("ad_name"); v != "" {
		f.AdName = &v
	}
	if v := values.Get("requested_by"); v != "" {
		f.RequestedBy = &v
	}
	if t, err := time.Parse(time.RFC3339, values.Get("since")); err == nil {
		f.Since = &t
	}
	if n, err := strconv.Atoi(values.Get("min_score")); err == nil {
		f.MinScore = &n
	}
	return f
}

func scanResult(s repository.Scanner) (Result, error) {
	var (
		r                       Result
		risk, source            string
		imageID                 uuid.NullUUID
		boxes, findings, refers []byte
	)

	err := s.Scan(
		&r.ID, &r.AdName, &r.CreatedAt, &r.PassScore, &risk, &source,
		&r.AIError, &r.Status, &imageID, &r.OCRFullText,
		&boxes, &findings, &r.AIRationale, &refers, &r.RequestedBy,
	)
	if err != nil {
		return r, err
	}

	r.RiskLevel = screening.RiskTier(risk)
	r.AnalysisSource = screening.Source(source)
	if imageID.Valid {
		r.ImageFileID = &imageID.UUID
	}

	if err := decodeJSON(boxes, &r.OCRBoxes); err != nil {
		return r, fmt.Errorf("decode ocr_boxes: %w", err)
	}
	if err := decodeJSON(findings, &r.Findings); err != nil {
		return r, fmt.Errorf("decode findings: %w", err)
	}
	if err := decodeJSON(refers, &r.References); err != nil {
		return r, fmt.Errorf("decode references: %w", err)
	}

	if r.OCRBoxes == nil {
		r.OCRBoxes = []screening.OcrBox{}
	}
	if r.Findings == nil {
		r.Findings = []screening.Finding{}
	}
	if r.References == nil {
		r.References = []screening.Reference{}
	}
	r.HasOCRBoxes = len(r.OCRBoxes) > 0

	return r, nil
}

func decodeJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

func encodeJSON[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
