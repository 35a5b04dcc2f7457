package screening_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/adscreen/internal/screening"
)

func rect(x0, y0, x1, y1 float64) []screening.Vertex {
	return []screening.Vertex{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

func TestMapBoxes(t *testing.T) {
	rules := []screening.Rule{
		{Phrase: "완치", RiskLevel: screening.RiskHigh},
		{Phrase: "이벤트", RiskLevel: screening.RiskLow},
	}

	t.Run("hierarchical words", func(t *testing.T) {
		doc := &screening.Document{
			Pages: []screening.Page{{Blocks: []screening.Block{{Paragraphs: []screening.Paragraph{{Words: []screening.Word{
				{Symbols: []string{"완", "치"}, Bounds: screening.Bounds{Vertices: rect(10, 20, 50, 40)}},
				{Symbols: []string{"안", "내"}, Bounds: screening.Bounds{Vertices: rect(60, 20, 90, 40)}},
			}}}}}}},
			Annotations: []screening.Annotation{
				{Description: "완치 안내"},
				{Description: "ignored", Bounds: screening.Bounds{Vertices: rect(0, 0, 5, 5)}},
			},
		}

		got := screening.MapBoxes(doc, rules)
		want := []screening.OcrBox{
			{X: 10, Y: 20, W: 40, H: 20, Text: "완치", RiskLevel: screening.RiskHigh},
			{X: 60, Y: 20, W: 30, H: 20, Text: "안내", RiskLevel: screening.RiskNone},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MapBoxes = %+v, want %+v", got, want)
		}
	})

	t.Run("normalized vertices when pixels absent", func(t *testing.T) {
		doc := &screening.Document{
			Pages: []screening.Page{{Blocks: []screening.Block{{Paragraphs: []screening.Paragraph{{Words: []screening.Word{
				{Symbols: []string{"이벤트"}, Bounds: screening.Bounds{NormalizedVertices: rect(0.25, 0.5, 0.75, 1)}},
			}}}}}}},
		}

		got := screening.MapBoxes(doc, rules)
		want := []screening.OcrBox{{X: 0.25, Y: 0.5, W: 0.5, H: 0.5, Text: "이벤트", RiskLevel: screening.RiskLow}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MapBoxes = %+v, want %+v", got, want)
		}
	})

	t.Run("degenerate and empty words dropped", func(t *testing.T) {
		doc := &screening.Document{
			Pages: []screening.Page{{Blocks: []screening.Block{{Paragraphs: []screening.Paragraph{{Words: []screening.Word{
				{Symbols: []string{"선"}, Bounds: screening.Bounds{Vertices: rect(10, 10, 10, 30)}},
				{Symbols: nil, Bounds: screening.Bounds{Vertices: rect(0, 0, 10, 10)}},
				{Symbols: []string{"무"}, Bounds: screening.Bounds{}},
			}}}}}}},
		}

		got := screening.MapBoxes(doc, rules)
		if len(got) != 0 {
			t.Errorf("MapBoxes = %+v, want none", got)
		}
		if got == nil {
			t.Error("MapBoxes should return an empty slice, not nil")
		}
	})

	t.Run("flat fallback skips aggregate", func(t *testing.T) {
		doc := &screening.Document{
			Annotations: []screening.Annotation{
				{Description: "완치 이벤트", Bounds: screening.Bounds{Vertices: rect(0, 0, 100, 100)}},
				{Description: "완치", Bounds: screening.Bounds{Vertices: rect(1, 2, 11, 12)}},
				{Description: "이벤트", Bounds: screening.Bounds{Vertices: rect(20, 2, 40, 12)}},
			},
		}

		got := screening.MapBoxes(doc, rules)
		want := []screening.OcrBox{
			{X: 1, Y: 2, W: 10, H: 10, Text: "완치", RiskLevel: screening.RiskHigh},
			{X: 20, Y: 2, W: 20, H: 10, Text: "이벤트", RiskLevel: screening.RiskLow},
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("MapBoxes = %+v, want %+v", got, want)
		}
	})

	t.Run("nil document", func(t *testing.T) {
		if got := screening.MapBoxes(nil, rules); len(got) != 0 {
			t.Errorf("MapBoxes(nil) = %+v", got)
		}
	})
}

func TestDocumentText(t *testing.T) {
	tests := []struct {
		name string
		doc  screening.Document
		want string
	}{
		{"full text", screening.Document{FullText: "a", Annotations: []screening.Annotation{{Description: "b"}}}, "a"},
		{"aggregate annotation", screening.Document{Annotations: []screening.Annotation{{Description: "b"}}}, "b"},
		{"empty", screening.Document{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}
