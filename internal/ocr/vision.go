package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/vision/v1"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/screening"
)

const documentTextDetection = "DOCUMENT_TEXT_DETECTION"

// NewVision creates a Cloud Vision provider. Extra client options are
// appended after the credential option.
func NewVision(ctx context.Context, cfg *config.OCRConfig, logger *slog.Logger, extra ...option.ClientOption) (Provider, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, extra...)

	svc, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create vision service: %w", err)
	}

	return &visionProvider{
		service: svc,
		hints:   cfg.LanguageHints,
		timeout: cfg.TimeoutDuration(),
		logger:  logger,
	}, nil
}

type visionProvider struct {
	service *vision.Service
	hints   []string
	timeout time.Duration
	logger  *slog.Logger
}

func (p *visionProvider) Detect(ctx context.Context, image []byte) (*screening.Document, error) {
	if len(image) == 0 {
		return nil, ErrEmptyImage
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{{
			Image:    &vision.Image{Content: base64.StdEncoding.EncodeToString(image)},
			Features: []*vision.Feature{{Type: documentTextDetection}},
			ImageContext: &vision.ImageContext{
				LanguageHints: p.hints,
			},
		}},
	}

	start := time.Now()
	resp, err := p.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if len(resp.Responses) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUpstream)
	}

	first := resp.Responses[0]
	if first.Error != nil && first.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, first.Error.Message)
	}

	doc := DocumentFromResponse(first)
	p.logger.Info(
		"text detected",
		"chars", len([]rune(doc.Text())),
		"pages", len(doc.Pages),
		"duration", time.Since(start),
	)
	return doc, nil
}

// DocumentFromResponse converts a Vision annotation response into the
// provider-neutral document tree. A nil response yields an empty document.
func DocumentFromResponse(resp *vision.AnnotateImageResponse) *screening.Document {
	doc := &screening.Document{}
	if resp == nil {
		return doc
	}

	if fta := resp.FullTextAnnotation; fta != nil {
		doc.FullText = fta.Text
		for _, pg := range fta.Pages {
			if pg == nil {
				continue
			}
			page := screening.Page{}
			for _, bl := range pg.Blocks {
				if bl == nil {
					continue
				}
				block := screening.Block{}
				for _, pa := range bl.Paragraphs {
					if pa == nil {
						continue
					}
					para := screening.Paragraph{}
					for _, w := range pa.Words {
						if w == nil {
							continue
						}
						para.Words = append(para.Words, convertWord(w))
					}
					block.Paragraphs = append(block.Paragraphs, para)
				}
				page.Blocks = append(page.Blocks, block)
			}
			doc.Pages = append(doc.Pages, page)
		}
	}

	for _, a := range resp.TextAnnotations {
		if a == nil {
			continue
		}
		doc.Annotations = append(doc.Annotations, screening.Annotation{
			Description: a.Description,
			Bounds:      convertBounds(a.BoundingPoly),
		})
	}

	return doc
}

func convertWord(w *vision.Word) screening.Word {
	word := screening.Word{Bounds: convertBounds(w.BoundingBox)}
	for _, s := range w.Symbols {
		if s != nil {
			word.Symbols = append(word.Symbols, s.Text)
		}
	}
	return word
}

func convertBounds(poly *vision.BoundingPoly) screening.Bounds {
	var b screening.Bounds
	if poly == nil {
		return b
	}
	for _, v := range poly.Vertices {
		if v != nil {
			b.Vertices = append(b.Vertices, screening.Vertex{X: float64(v.X), Y: float64(v.Y)})
		}
	}
	for _, v := range poly.NormalizedVertices {
		if v != nil {
			b.NormalizedVertices = append(b.NormalizedVertices, screening.Vertex{X: v.X, Y: v.Y})
		}
	}
	return b
}
