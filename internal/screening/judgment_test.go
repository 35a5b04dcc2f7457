package screening_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/JaimeStill/adscreen/internal/screening"
)

func TestParseJudgment(t *testing.T) {
	catalog := screening.DefaultCatalog()

	t.Run("well formed", func(t *testing.T) {
		raw := `{"passScore": 72.6, "riskLevel": "medium", "rationale": " looks risky ",
			"findings": [{"text": "완치", "violationType": "efficacy", "riskLevel": "high", "referenceId": "ML56-02", "rationale": "claim"}]}`

		got, err := screening.ParseJudgment(raw, catalog)
		if err != nil {
			t.Fatalf("ParseJudgment error: %v", err)
		}
		if got.PassScore != 73 {
			t.Errorf("score = %d, want 73", got.PassScore)
		}
		if got.RiskLevel != screening.RiskMedium {
			t.Errorf("risk = %s, want medium", got.RiskLevel)
		}
		if got.Rationale != "looks risky" {
			t.Errorf("rationale = %q", got.Rationale)
		}
		want := []screening.Finding{{Text: "완치", ViolationType: "efficacy", RiskLevel: screening.RiskHigh, ReferenceID: "ML56-02", Rationale: "claim"}}
		if !reflect.DeepEqual(got.Findings, want) {
			t.Errorf("findings = %+v, want %+v", got.Findings, want)
		}
	})

	t.Run("surrounded by prose", func(t *testing.T) {
		raw := "Here is my analysis: {\"passScore\": 100, \"riskLevel\": \"low\", \"findings\": []} Thanks."
		got, err := screening.ParseJudgment(raw, catalog)
		if err != nil {
			t.Fatalf("ParseJudgment error: %v", err)
		}
		if got.PassScore != 100 || got.RiskLevel != screening.RiskLow {
			t.Errorf("got %+v", got.Candidate)
		}
	})

	t.Run("normalizes findings", func(t *testing.T) {
		raw := `{"findings": [
			{"text": "  ", "riskLevel": "high"},
			{"text": "전문의", "riskLevel": "critical", "referenceId": "ML99-99"},
			{"text": "완치", "violationType": "", "riskLevel": "high"},
			"not an object"
		]}`

		got, err := screening.ParseJudgment(raw, catalog)
		if err != nil {
			t.Fatalf("ParseJudgment error: %v", err)
		}
		want := []screening.Finding{
			{Text: "전문의", ViolationType: screening.DefaultJudgedViolationType, RiskLevel: screening.RiskLow},
			{Text: "완치", ViolationType: screening.DefaultJudgedViolationType, RiskLevel: screening.RiskHigh},
		}
		if !reflect.DeepEqual(got.Findings, want) {
			t.Errorf("findings = %+v, want %+v", got.Findings, want)
		}
		if got.PassScore != 65 {
			t.Errorf("derived score = %d, want 65", got.PassScore)
		}
		if got.RiskLevel != screening.RiskHigh {
			t.Errorf("derived risk = %s, want high", got.RiskLevel)
		}
	})

	t.Run("clamps score", func(t *testing.T) {
		tests := []struct {
			raw  string
			want int
		}{
			{`{"passScore": 140}`, 100},
			{`{"passScore": -3}`, 0},
			{`{"passScore": "90"}`, 100},
		}
		for _, tt := range tests {
			got, err := screening.ParseJudgment(tt.raw, catalog)
			if err != nil {
				t.Fatalf("ParseJudgment(%s) error: %v", tt.raw, err)
			}
			if got.PassScore != tt.want {
				t.Errorf("ParseJudgment(%s) score = %d, want %d", tt.raw, got.PassScore, tt.want)
			}
		}
	})

	t.Run("invalid risk level derived", func(t *testing.T) {
		raw := `{"riskLevel": "none", "findings": [{"text": "할인", "riskLevel": "medium"}]}`
		got, err := screening.ParseJudgment(raw, catalog)
		if err != nil {
			t.Fatalf("ParseJudgment error: %v", err)
		}
		if got.RiskLevel != screening.RiskMedium {
			t.Errorf("risk = %s, want medium", got.RiskLevel)
		}
	})

	t.Run("unparsable", func(t *testing.T) {
		for _, raw := range []string{"", "no json here", "{broken", "[1,2,3]", "null"} {
			if _, err := screening.ParseJudgment(raw, catalog); !errors.Is(err, screening.ErrUnparsableJudgment) {
				t.Errorf("ParseJudgment(%q) error = %v, want ErrUnparsableJudgment", raw, err)
			}
		}
	})
}

func TestSelect(t *testing.T) {
	ocr := screening.NewCandidate([]screening.Finding{
		{Text: "완치", ViolationType: "ocr", RiskLevel: screening.RiskHigh},
	})
	ai := &screening.Judgment{
		Candidate: screening.Candidate{
			PassScore: 90,
			RiskLevel: screening.RiskLow,
			Findings:  []screening.Finding{{Text: "이벤트", ViolationType: "ai", RiskLevel: screening.RiskLow}},
		},
		Rationale: "narrative",
	}

	t.Run("judgment wins wholesale", func(t *testing.T) {
		got := screening.Select(ocr, ai, nil)
		if got.Source != screening.SourceAI {
			t.Errorf("source = %s, want ai", got.Source)
		}
		if !reflect.DeepEqual(got.Candidate, ai.Candidate) {
			t.Errorf("candidate = %+v, want judgment candidate", got.Candidate)
		}
		if got.AIRationale != "narrative" || got.AIError != nil {
			t.Errorf("selection = %+v", got)
		}
	})

	t.Run("judge failure falls back to ocr", func(t *testing.T) {
		got := screening.Select(ocr, nil, errors.New("judge down"))
		if got.Source != screening.SourceOCR {
			t.Errorf("source = %s, want ocr", got.Source)
		}
		if !reflect.DeepEqual(got.Candidate, ocr) {
			t.Errorf("candidate = %+v, want ocr candidate", got.Candidate)
		}
		if got.AIError == nil || *got.AIError != "judge down" {
			t.Errorf("ai error = %v", got.AIError)
		}
	})

	t.Run("unparsable judgment keeps matcher findings", func(t *testing.T) {
		judged, err := screening.ParseJudgment("not json", screening.DefaultCatalog())
		got := screening.Select(ocr, judged, err)
		if got.Source != screening.SourceOCR || got.AIError == nil || *got.AIError == "" {
			t.Errorf("selection = %+v", got)
		}
		if !reflect.DeepEqual(got.Findings, ocr.Findings) {
			t.Errorf("findings = %+v, want %+v", got.Findings, ocr.Findings)
		}
	})
}

func TestComposeRationale(t *testing.T) {
	findings := []screening.Finding{{Text: "완치", ViolationType: "efficacy", ReferenceID: "ML56-02"}}
	summary := screening.LegalSummary(findings)
	ctx := context.Background()

	failing := func(context.Context) (string, error) { return "", errors.New("boom") }

	tests := []struct {
		name      string
		narrative string
		summarize screening.SummarizeFunc
		want      string
	}{
		{
			name:      "narrative gets summary appended",
			narrative: "AI says risky",
			want:      "AI says risky\n\nLegal basis summary:\n" + summary,
		},
		{
			name:      "narrative with marker kept",
			narrative: "AI says risky. Legal basis summary: done",
			want:      "AI says risky. Legal basis summary: done",
		},
		{
			name:      "summarizer output gets summary appended",
			summarize: func(context.Context) (string, error) { return " generated ", nil },
			want:      "generated\n\nLegal basis summary:\n" + summary,
		},
		{
			name:      "summarizer failure falls back to summary",
			summarize: failing,
			want:      summary,
		},
		{
			name:      "empty summarizer output falls back to summary",
			summarize: func(context.Context) (string, error) { return "  ", nil },
			want:      summary,
		},
		{
			name: "no summarizer",
			want: summary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := screening.ComposeRationale(ctx, tt.narrative, summary, tt.summarize)
			if got != tt.want {
				t.Errorf("ComposeRationale = %q, want %q", got, tt.want)
			}
		})
	}

	if got := screening.ComposeRationale(ctx, "", "", failing); got == "" {
		t.Error("rationale must never be empty")
	}
}

func TestLegalDetails(t *testing.T) {
	if got := screening.LegalDetails(nil); !strings.Contains(got, "No expressions") {
		t.Errorf("LegalDetails(nil) = %q", got)
	}

	got := screening.LegalDetails([]screening.Finding{
		{Text: "완치", ViolationType: "efficacy", ReferenceID: "ML56-02"},
		{Text: "이벤트", ViolationType: "discount"},
	})
	want := "2 legally risky expression(s) detected:\n- \"완치\": efficacy (ML56-02)\n- \"이벤트\": discount"
	if got != want {
		t.Errorf("LegalDetails = %q, want %q", got, want)
	}
}
