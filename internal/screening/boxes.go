package screening

import "strings"

// Vertex is a point in either pixel or normalized (0-1) coordinates.
type Vertex struct {
	X float64
	Y float64
}

// Bounds is an OCR bounding polygon. Pixel vertices take precedence over
// normalized vertices when both are present.
type Bounds struct {
	Vertices           []Vertex
	NormalizedVertices []Vertex
}

// Word is the smallest unit of the hierarchical OCR form.
type Word struct {
	Symbols []string
	Bounds  Bounds
}

type Paragraph struct {
	Words []Word
}

type Block struct {
	Paragraphs []Paragraph
}

type Page struct {
	Blocks []Block
}

// Annotation is one entry of the flat OCR form. The first annotation
// conventionally covers the whole image.
type Annotation struct {
	Description string
	Bounds      Bounds
}

// Document is the provider-neutral OCR result. Either form may be absent.
type Document struct {
	FullText    string
	Pages       []Page
	Annotations []Annotation
}

// Text returns the full recognized text, falling back to the aggregate
// annotation when no full text was reported.
func (d *Document) Text() string {
	if d.FullText != "" {
		return d.FullText
	}
	if len(d.Annotations) > 0 {
		return d.Annotations[0].Description
	}
	return ""
}

// OcrBox is a highlighted region in OCR-native coordinates. Its risk tier
// is computed from its own text only.
type OcrBox struct {
	X         float64  `json:"x"`
	Y         float64  `json:"y"`
	W         float64  `json:"w"`
	H         float64  `json:"h"`
	Text      string   `json:"text"`
	RiskLevel RiskTier `json:"risk_level"`
}

// MapBoxes builds highlight boxes for doc using a one-off Matcher over rules.
func MapBoxes(doc *Document, rules []Rule) []OcrBox {
	return NewMatcher(rules).MapBoxes(doc)
}

// MapBoxes prefers word-level boxes from the page hierarchy. When the
// hierarchy is absent or yields nothing usable, it falls back to the flat
// annotations, skipping the first aggregate entry.
func (m *Matcher) MapBoxes(doc *Document) []OcrBox {
	if doc == nil {
		return []OcrBox{}
	}

	if boxes := m.wordBoxes(doc.Pages); len(boxes) > 0 {
		return boxes
	}

	boxes := make([]OcrBox, 0)
	if len(doc.Annotations) < 2 {
		return boxes
	}

	for _, a := range doc.Annotations[1:] {
		if box, ok := m.box(a.Description, a.Bounds); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

func (m *Matcher) wordBoxes(pages []Page) []OcrBox {
	boxes := make([]OcrBox, 0)
	for _, page := range pages {
		for _, block := range page.Blocks {
			for _, para := range block.Paragraphs {
				for _, word := range para.Words {
					if box, ok := m.box(strings.Join(word.Symbols, ""), word.Bounds); ok {
						boxes = append(boxes, box)
					}
				}
			}
		}
	}
	return boxes
}

func (m *Matcher) box(text string, bounds Bounds) (OcrBox, bool) {
	if text == "" {
		return OcrBox{}, false
	}

	vertices := bounds.Vertices
	if len(vertices) == 0 {
		vertices = bounds.NormalizedVertices
	}
	if len(vertices) == 0 {
		return OcrBox{}, false
	}

	minX, minY := vertices[0].X, vertices[0].Y
	maxX, maxY := minX, minY
	for _, v := range vertices[1:] {
		minX = min(minX, v.X)
		minY = min(minY, v.Y)
		maxX = max(maxX, v.X)
		maxY = max(maxY, v.Y)
	}

	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return OcrBox{}, false
	}

	return OcrBox{
		X:         minX,
		Y:         minY,
		W:         w,
		H:         h,
		Text:      text,
		RiskLevel: m.Tier(text),
	}, true
}
