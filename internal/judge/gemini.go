package judge

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/internal/screening"
)

const jsonMIMEType = "application/json"

// Options overrides transport settings of the Gemini client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
}

type gemini struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	temperature *float32
	catalog     *screening.Catalog
	logger      *slog.Logger
}

// NewGemini creates a provider backed by the Gemini API.
func NewGemini(
	ctx context.Context,
	cfg *config.JudgeConfig,
	catalog *screening.Catalog,
	logger *slog.Logger,
	opts Options,
) (Provider, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &gemini{
		client:      client,
		model:       cfg.Model,
		timeout:     cfg.TimeoutDuration(),
		temperature: cfg.Temperature,
		catalog:     catalog,
		logger:      logger,
	}, nil
}

func (g *gemini) Judge(ctx context.Context, req Request) (string, error) {
	parts := []*genai.Part{{Text: judgePrompt(req, g.catalog)}}
	if len(req.Image) > 0 {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.MIMEType,
				Data:     req.Image,
			},
		})
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: judgeInstructions}},
		},
		ResponseMIMEType: jsonMIMEType,
		Temperature:      g.temperature,
	}

	return g.generate(ctx, "judge", parts, cfg)
}

func (g *gemini) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	parts := []*genai.Part{{Text: summaryPrompt(req)}}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: summaryInstructions}},
		},
		Temperature: g.temperature,
	}

	return g.generate(ctx, "summarize", parts, cfg)
}

func (g *gemini) generate(
	ctx context.Context,
	operation string,
	parts []*genai.Part,
	cfg *genai.GenerateContentConfig,
) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%s: generate content: %w", operation, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s: %w", operation, ErrEmptyResponse)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: %w", operation, ErrEmptyResponse)
	}

	g.logger.Info(
		"model response received",
		"operation", operation,
		"model", g.model,
		"chars", len(text),
		"duration", time.Since(start),
	)
	return text, nil
}
