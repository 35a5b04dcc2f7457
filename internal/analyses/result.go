// Package analyses stores completed analysis results and serves history
// and risk metrics over them.
package analyses

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/pkg/pagination"
)

// StatusDone is the status of every stored result.
const StatusDone = "done"

// Result is a persisted analysis outcome. ImageURL is signed on read and
// never stored.
type Result struct {
	ID             uuid.UUID             `json:"id"`
	AdName         string                `json:"ad_name"`
	CreatedAt      time.Time             `json:"created_at"`
	PassScore      int                   `json:"pass_score"`
	RiskLevel      screening.RiskTier    `json:"risk_level"`
	AnalysisSource screening.Source      `json:"analysis_source"`
	AIError        *string               `json:"ai_error,omitempty"`
	Status         string                `json:"status"`
	ImageFileID    *uuid.UUID            `json:"image_file_id,omitempty"`
	ImageURL       string                `json:"image_url,omitempty"`
	OCRFullText    string                `json:"ocr_full_text"`
	HasOCRBoxes    bool                  `json:"has_ocr_boxes"`
	OCRBoxes       []screening.OcrBox    `json:"ocr_boxes"`
	Findings       []screening.Finding   `json:"findings"`
	AIRationale    string                `json:"ai_rationale"`
	References     []screening.Reference `json:"references"`
	RequestedBy    string                `json:"requested_by"`
}

// CreateCommand is the outcome of one pipeline run.
type CreateCommand struct {
	AdName      string
	Selection   screening.Selection
	ImageFileID uuid.UUID
	OCRFullText string
	OCRBoxes    []screening.OcrBox
	AIRationale string
	References  []screening.Reference
	RequestedBy string
}

// RiskBucket is one slice of the risk distribution chart.
type RiskBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Metrics summarizes stored results by risk tier.
type Metrics struct {
	TotalAnalyses    int          `json:"total_analyses"`
	HighRiskCount    int          `json:"high_risk_count"`
	MediumRiskCount  int          `json:"medium_risk_count"`
	LowRiskCount     int          `json:"low_risk_count"`
	RiskDistribution []RiskBucket `json:"risk_distribution"`
}

// NewMetrics builds Metrics from a total and per-tier counts.
func NewMetrics(total int, c screening.TierCounts) Metrics {
	return Metrics{
		TotalAnalyses:   total,
		HighRiskCount:   c.High,
		MediumRiskCount: c.Medium,
		LowRiskCount:    c.Low,
		RiskDistribution: []RiskBucket{
			{Name: "High risk", Value: c.High, Color: "#E53935"},
			{Name: "Medium risk", Value: c.Medium, Color: "#FB8C00"},
			{Name: "Low risk", Value: c.Low, Color: "#43A047"},
		},
	}
}

// URLSigner issues download URLs for stored images.
type URLSigner interface {
	SignURL(id uuid.UUID) (string, error)
}

// System defines the analysis result store contract.
type System interface {
	Handler() *Handler
	Create(ctx context.Context, cmd CreateCommand) (*Result, error)
	Find(ctx context.Context, id uuid.UUID) (*Result, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Result], error)
	Metrics(ctx context.Context) (*Metrics, error)
}
