package pipeline_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/JaimeStill/adscreen/internal/analyses"
	"github.com/JaimeStill/adscreen/internal/files"
	"github.com/JaimeStill/adscreen/internal/judge"
	"github.com/JaimeStill/adscreen/internal/ocr"
	"github.com/JaimeStill/adscreen/internal/pipeline"
	"github.com/JaimeStill/adscreen/internal/screening"
	"github.com/JaimeStill/adscreen/internal/telemetry"
	"github.com/JaimeStill/adscreen/pkg/repository"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// pngHeader sniffs as image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

const adText = "완치 보장 이벤트 진행중"

type fileStore struct {
	saveFn func(ctx context.Context, data []byte, contentType string) (*files.File, error)
}

func (f *fileStore) Save(ctx context.Context, data []byte, contentType string) (*files.File, error) {
	if f.saveFn != nil {
		return f.saveFn(ctx, data, contentType)
	}
	return &files.File{ID: uuid.New(), ContentType: contentType, SizeBytes: int64(len(data))}, nil
}

type ruleSource struct {
	rules []screening.Rule
	err   error
}

func (r *ruleSource) Snapshot(context.Context) ([]screening.Rule, error) {
	return r.rules, r.err
}

type resultStore struct {
	mu   sync.Mutex
	cmds []analyses.CreateCommand
	err  error
}

func (r *resultStore) Create(_ context.Context, cmd analyses.CreateCommand) (*analyses.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.cmds = append(r.cmds, cmd)

	id := cmd.ImageFileID
	return &analyses.Result{
		ID:             uuid.New(),
		AdName:         cmd.AdName,
		PassScore:      cmd.Selection.PassScore,
		RiskLevel:      cmd.Selection.RiskLevel,
		AnalysisSource: cmd.Selection.Source,
		AIError:        cmd.Selection.AIError,
		Status:         analyses.StatusDone,
		ImageFileID:    &id,
		OCRFullText:    cmd.OCRFullText,
		HasOCRBoxes:    len(cmd.OCRBoxes) > 0,
		OCRBoxes:       cmd.OCRBoxes,
		Findings:       cmd.Selection.Findings,
		AIRationale:    cmd.AIRationale,
		References:     cmd.References,
		RequestedBy:    cmd.RequestedBy,
	}, nil
}

type ocrProvider struct {
	doc *screening.Document
	err error
}

func (o *ocrProvider) Detect(context.Context, []byte) (*screening.Document, error) {
	return o.doc, o.err
}

type judgeProvider struct {
	judgeFn     func(ctx context.Context, req judge.Request) (string, error)
	summarizeFn func(ctx context.Context, req judge.SummaryRequest) (string, error)
}

func (j *judgeProvider) Judge(ctx context.Context, req judge.Request) (string, error) {
	return j.judgeFn(ctx, req)
}

func (j *judgeProvider) Summarize(ctx context.Context, req judge.SummaryRequest) (string, error) {
	if j.summarizeFn == nil {
		return "", judge.ErrMissingCredentials
	}
	return j.summarizeFn(ctx, req)
}

type recorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *recorder) Record(_ context.Context, action, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return nil
}

type fixture struct {
	results *resultStore
	metrics *telemetry.Metrics
	rec     *recorder
	deps    pipeline.Deps
}

func newFixture(j *judgeProvider) *fixture {
	f := &fixture{
		results: &resultStore{},
		metrics: telemetry.New(),
		rec:     &recorder{},
	}
	f.deps = pipeline.Deps{
		Files:        &fileStore{},
		Rules:        &ruleSource{rules: screening.DefaultRules()},
		Results:      f.results,
		OCR:          &ocrProvider{doc: &screening.Document{FullText: adText}},
		Judge:        j,
		Catalog:      screening.DefaultCatalog(),
		Metrics:      f.metrics,
		Recorder:     f.rec,
		Logger:       discard,
		MaxImageSize: 1024,
	}
	return f
}

func submission() pipeline.Submission {
	return pipeline.Submission{AdName: "spring promo", Image: pngHeader, MIMEType: "image/png"}
}

func TestAnalyzeJudgmentWins(t *testing.T) {
	var got judge.Request
	f := newFixture(&judgeProvider{
		judgeFn: func(_ context.Context, req judge.Request) (string, error) {
			got = req
			return "```json\n" + `{"passScore": 40, "riskLevel": "high", "rationale": "Claims a cure.",
				"findings": [{"text": "완치", "violationType": "efficacy", "riskLevel": "high", "referenceId": "ML56-02"}]}` + "\n```", nil
		},
	})

	result, err := pipeline.New(f.deps).Analyze(context.Background(), submission(), "reviewer@example.com")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if got.AdName != "spring promo" || got.MIMEType != "image/png" || got.OCRText != adText {
		t.Errorf("judge request = %+v", got)
	}
	if result.AnalysisSource != screening.SourceAI || result.AIError != nil {
		t.Errorf("source = %s, ai error = %v", result.AnalysisSource, result.AIError)
	}
	if result.PassScore != 40 || result.RiskLevel != screening.RiskHigh {
		t.Errorf("score = %d, risk = %s", result.PassScore, result.RiskLevel)
	}
	if !strings.HasPrefix(result.AIRationale, "Claims a cure.") || !strings.Contains(result.AIRationale, screening.LegalSummaryMarker) {
		t.Errorf("rationale = %q", result.AIRationale)
	}

	ids := make([]string, len(result.References))
	for i, ref := range result.References {
		ids[i] = ref.ID
	}
	if want := []string{"ML56-02", "ML57-01", "ML24-01"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("references = %v, want %v", ids, want)
	}
	if result.RequestedBy != "reviewer@example.com" {
		t.Errorf("requested by = %q", result.RequestedBy)
	}

	if n := testutil.ToFloat64(f.metrics.AnalysesTotal.WithLabelValues("ai", "high")); n != 1 {
		t.Errorf("analyses_total{ai,high} = %v, want 1", n)
	}
	if n := testutil.ToFloat64(f.metrics.JudgeFailures); n != 0 {
		t.Errorf("judge failures = %v, want 0", n)
	}
	if want := []string{"analysis completed: spring promo"}; !reflect.DeepEqual(f.rec.actions, want) {
		t.Errorf("audit = %v, want %v", f.rec.actions, want)
	}
}

func TestAnalyzeUnparsableJudgment(t *testing.T) {
	f := newFixture(&judgeProvider{
		judgeFn: func(context.Context, judge.Request) (string, error) {
			return "I cannot review this image.", nil
		},
		summarizeFn: func(context.Context, judge.SummaryRequest) (string, error) {
			return "Efficacy claims detected.", nil
		},
	})

	result, err := pipeline.New(f.deps).Analyze(context.Background(), submission(), "system")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	want := screening.NewMatcher(screening.DefaultRules()).Candidate(adText)

	if result.AnalysisSource != screening.SourceOCR {
		t.Errorf("source = %s, want ocr", result.AnalysisSource)
	}
	if result.AIError == nil || *result.AIError == "" {
		t.Error("ai error must be set")
	}
	if !reflect.DeepEqual(result.Findings, want.Findings) {
		t.Errorf("findings = %+v, want matcher findings %+v", result.Findings, want.Findings)
	}
	if result.PassScore != want.PassScore || result.RiskLevel != want.RiskLevel {
		t.Errorf("score = %d risk = %s, want %d %s", result.PassScore, result.RiskLevel, want.PassScore, want.RiskLevel)
	}
	if !strings.HasPrefix(result.AIRationale, "Efficacy claims detected.") {
		t.Errorf("rationale = %q", result.AIRationale)
	}
	if n := testutil.ToFloat64(f.metrics.JudgeFailures); n != 1 {
		t.Errorf("judge failures = %v, want 1", n)
	}
}

func TestAnalyzeJudgeUnavailable(t *testing.T) {
	f := newFixture(&judgeProvider{
		judgeFn: func(context.Context, judge.Request) (string, error) {
			return "", judge.ErrMissingCredentials
		},
	})

	result, err := pipeline.New(f.deps).Analyze(context.Background(), submission(), "system")
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if result.AnalysisSource != screening.SourceOCR {
		t.Errorf("source = %s, want ocr", result.AnalysisSource)
	}
	if result.AIError == nil || *result.AIError != judge.ErrMissingCredentials.Error() {
		t.Errorf("ai error = %v", result.AIError)
	}

	summary := screening.LegalSummary(result.Findings)
	if result.AIRationale != summary {
		t.Errorf("rationale = %q, want legal summary", result.AIRationale)
	}
}

func TestAnalyzeFatalStages(t *testing.T) {
	boom := errors.New("boom")
	okJudge := &judgeProvider{
		judgeFn: func(context.Context, judge.Request) (string, error) { return `{"findings": []}`, nil },
	}

	tests := []struct {
		name  string
		setup func(d *pipeline.Deps)
		stage string
		want  error
	}{
		{
			name: "storage",
			setup: func(d *pipeline.Deps) {
				d.Files = &fileStore{saveFn: func(context.Context, []byte, string) (*files.File, error) { return nil, boom }}
			},
			stage: pipeline.StageStorage,
			want:  boom,
		},
		{
			name:  "rules",
			setup: func(d *pipeline.Deps) { d.Rules = &ruleSource{err: boom} },
			stage: pipeline.StageRules,
			want:  boom,
		},
		{
			name:  "ocr",
			setup: func(d *pipeline.Deps) { d.OCR = &ocrProvider{err: ocr.ErrMissingCredentials} },
			stage: pipeline.StageOCR,
			want:  ocr.ErrMissingCredentials,
		},
		{
			name:  "record",
			setup: func(d *pipeline.Deps) { d.Results = &resultStore{err: boom} },
			stage: pipeline.StageRecord,
			want:  boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(okJudge)
			tt.setup(&f.deps)

			_, err := pipeline.New(f.deps).Analyze(context.Background(), submission(), "system")
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if got := pipeline.Stage(err); got != tt.stage {
				t.Errorf("stage = %q, want %q", got, tt.stage)
			}
			if got := pipeline.Message(err); got != tt.want.Error() {
				t.Errorf("message = %q, want %q", got, tt.want.Error())
			}
			if n := testutil.ToFloat64(f.metrics.AnalysisFailures.WithLabelValues(tt.stage)); n != 1 {
				t.Errorf("failures{%s} = %v, want 1", tt.stage, n)
			}
			if want := []string{"analysis failed: spring promo"}; !reflect.DeepEqual(f.rec.actions, want) {
				t.Errorf("audit = %v, want %v", f.rec.actions, want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	cause := fmt.Errorf("%w: quota exceeded", ocr.ErrUpstream)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "stage error", err: &pipeline.StageError{Stage: pipeline.StageOCR, Err: cause}, want: cause.Error()},
		{name: "wrapped stage error", err: fmt.Errorf("job: %w", &pipeline.StageError{Stage: pipeline.StageRecord, Err: cause}), want: cause.Error()},
		{name: "plain error", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pipeline.Message(tt.err); got != tt.want {
				t.Errorf("Message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(pngHeader)

	tests := []struct {
		name     string
		input    string
		declared string
		wantErr  bool
	}{
		{name: "data uri", input: "data:image/webp;base64," + encoded, declared: "image/webp"},
		{name: "bare base64", input: encoded},
		{name: "unpadded", input: strings.TrimRight(encoded, "=")},
		{name: "wrapped lines", input: encoded[:10] + "\n" + encoded[10:]},
		{name: "not base64", input: "%%%not-base64%%%", wantErr: true},
		{name: "data uri without base64", input: "data:image/png,abc", wantErr: true},
		{name: "data uri without payload", input: "data:image/png;base64", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			declared, data, err := pipeline.DecodeImage(tt.input)
			if tt.wantErr {
				if !errors.Is(err, pipeline.ErrInvalidImage) {
					t.Errorf("error = %v, want ErrInvalidImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeImage error: %v", err)
			}
			if declared != tt.declared {
				t.Errorf("declared = %q, want %q", declared, tt.declared)
			}
			if !bytes.Equal(data, pngHeader) {
				t.Errorf("data mismatch")
			}
		})
	}
}

func TestImageType(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		want     string
		wantErr  bool
	}{
		{name: "declared image", declared: "image/webp", data: []byte("anything"), want: "image/webp"},
		{name: "declared with params", declared: "image/jpeg; q=1", data: []byte("x"), want: "image/jpeg"},
		{name: "sniffed", declared: "application/octet-stream", data: pngHeader, want: "image/png"},
		{name: "not an image", data: []byte("plain text body"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ImageType(tt.declared, tt.data)
			if tt.wantErr {
				if !errors.Is(err, pipeline.ErrInvalidImage) {
					t.Errorf("error = %v, want ErrInvalidImage", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ImageType = %q, %v, want %q", got, err, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{pipeline.ErrMissingAdName, http.StatusBadRequest},
		{pipeline.ErrInvalidImage, http.StatusBadRequest},
		{pipeline.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
		{fmt.Errorf("%w (limit 10 MB)", pipeline.ErrImageTooLarge), http.StatusRequestEntityTooLarge},
		{&pipeline.StageError{Stage: pipeline.StageRecord, Err: fmt.Errorf("%w: analysis_results_pass_score_check", repository.ErrConstraint)}, http.StatusConflict},
		{&pipeline.StageError{Stage: pipeline.StageOCR, Err: ocr.ErrMissingCredentials}, http.StatusServiceUnavailable},
		{&pipeline.StageError{Stage: pipeline.StageOCR, Err: ocr.ErrUpstream}, http.StatusBadGateway},
		{&pipeline.StageError{Stage: pipeline.StageRecord, Err: errors.New("db")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := pipeline.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func newMux(f *fixture) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, pipeline.New(f.deps).Handler().Routes())
	return mux
}

func okJudge() *judgeProvider {
	return &judgeProvider{
		judgeFn: func(context.Context, judge.Request) (string, error) {
			return `{"passScore": 95, "riskLevel": "low", "rationale": "Fine.", "findings": []}`, nil
		},
	}
}

func TestHandlerAnalyzeJSON(t *testing.T) {
	f := newFixture(okJudge())
	mux := newMux(f)

	body, _ := json.Marshal(map[string]string{
		"ad_name": " spring promo ",
		"image":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader),
	})
	req := httptest.NewRequest("POST", "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got analyses.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.AdName != "spring promo" || got.AnalysisSource != screening.SourceAI || got.PassScore != 95 {
		t.Errorf("result = %+v", got)
	}

	want := []string{"analysis requested: spring promo", "analysis completed: spring promo"}
	if !reflect.DeepEqual(f.rec.actions, want) {
		t.Errorf("audit = %v, want %v", f.rec.actions, want)
	}
}

func TestHandlerAnalyzeMultipart(t *testing.T) {
	f := newFixture(okJudge())
	mux := newMux(f)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("ad_name", "clinic banner")
	part, _ := mw.CreateFormFile("image", "banner.png")
	part.Write(pngHeader)
	mw.Close()

	req := httptest.NewRequest("POST", "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(f.results.cmds) != 1 || f.results.cmds[0].AdName != "clinic banner" {
		t.Errorf("commands = %+v", f.results.cmds)
	}
}

func TestHandlerAnalyzeRejected(t *testing.T) {
	large := base64.StdEncoding.EncodeToString(append(pngHeader, make([]byte, 2048)...))

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing ad name", body: `{"image": "` + base64.StdEncoding.EncodeToString(pngHeader) + `"}`, want: http.StatusBadRequest},
		{name: "missing image", body: `{"ad_name": "x"}`, want: http.StatusBadRequest},
		{name: "malformed base64", body: `{"ad_name": "x", "image": "@@@"}`, want: http.StatusBadRequest},
		{name: "not an image", body: `{"ad_name": "x", "image": "` + base64.StdEncoding.EncodeToString([]byte("hello world")) + `"}`, want: http.StatusBadRequest},
		{name: "too large", body: `{"ad_name": "x", "image": "` + large + `"}`, want: http.StatusRequestEntityTooLarge},
		{name: "malformed json", body: `{`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(okJudge())
			mux := newMux(f)

			req := httptest.NewRequest("POST", "/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if len(f.results.cmds) != 0 {
				t.Error("rejected submission must not be analyzed")
			}
			if tt.want == http.StatusRequestEntityTooLarge && !strings.Contains(rec.Body.String(), "limit 1 KB") {
				t.Errorf("body = %s, want the configured limit", rec.Body.String())
			}
		})
	}
}

func TestHandlerAnalyzeOCRUnavailable(t *testing.T) {
	f := newFixture(okJudge())
	f.deps.OCR = &ocrProvider{err: ocr.ErrMissingCredentials}
	mux := newMux(f)

	body := `{"ad_name": "x", "image": "` + base64.StdEncoding.EncodeToString(pngHeader) + `"}`
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
