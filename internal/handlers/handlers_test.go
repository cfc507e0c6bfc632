package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type stubAnalyzer struct {
	input    services.AnalyzeInput
	score    float64
	tier     models.MatchTier
	scoreErr error
}

func (s *stubAnalyzer) Analyze(_ context.Context, input services.AnalyzeInput) (*models.Analysis, error) {
	s.input = input
	if len(input.Documents) == 0 {
		return nil, services.ErrNoDocuments
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, services.ErrEmptyJobDescription
	}

	analysis := &models.Analysis{ID: uuid.New(), JobTitle: input.JobTitle}
	for i, doc := range input.Documents {
		result := models.DocumentResult{ID: uuid.New(), FileName: doc.Name, Status: models.StatusCompleted}
		if i%2 == 1 {
			result.Status = models.StatusFailed
		}
		analysis.Results = append(analysis.Results, result)
	}
	return analysis, nil
}

func (s *stubAnalyzer) ScoreText(_ context.Context, _, jobDescription string) (float64, models.MatchTier, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return 0, "", services.ErrEmptyJobDescription
	}
	return s.score, s.tier, s.scoreErr
}

type stubLanguageData struct {
	err error
}

func (s stubLanguageData) Get(context.Context) (*services.LanguageData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return services.NewLanguageData([]string{"the"}, nil), nil
}

func newTestApp(analyzer services.AnalyzerService, languageData services.LanguageDataProvider) *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/health", NewHealthHandler(languageData).HandleHealth)
	api.Post("/analyze", NewAnalyzeHandler(analyzer, 1024, nil).HandleAnalyze)
	api.Post("/score", NewScoreHandler(analyzer).HandleScore)
	return app
}

type upload struct {
	name string
	data string
}

func multipartRequest(t *testing.T, fields map[string]string, files ...upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("resumes", f.name)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		io.WriteString(part, f.data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHandleAnalyze(t *testing.T) {
	t.Parallel()

	analyzer := &stubAnalyzer{}
	app := newTestApp(analyzer, stubLanguageData{})

	req := multipartRequest(t,
		map[string]string{
			"job_title":       "Backend Engineer",
			"job_description": "Python developer",
			"include_text":    "true",
		},
		upload{name: "alice.pdf", data: "%PDF-alice"},
		upload{name: "bob.PDF", data: "%PDF-bob"},
	)

	var got models.AnalyzeResponse
	if status := doRequest(t, app, req, &got); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if got.Succeeded != 1 || got.Failed != 1 {
		t.Fatalf("expected 1 succeeded and 1 failed, got %d/%d", got.Succeeded, got.Failed)
	}
	if len(got.Analysis.Results) != 2 || got.Analysis.Results[0].FileName != "alice.pdf" {
		t.Fatalf("unexpected results %+v", got.Analysis.Results)
	}
	if !analyzer.input.IncludeText {
		t.Fatalf("expected include_text to be forwarded")
	}
	if string(analyzer.input.Documents[1].Data) != "%PDF-bob" {
		t.Fatalf("expected file bytes to be forwarded")
	}
}

func TestHandleAnalyzeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fields map[string]string
		files  []upload
	}{
		{
			name:   "no files",
			fields: map[string]string{"job_description": "Python developer"},
		},
		{
			name:   "blank job description",
			fields: map[string]string{"job_description": "   "},
			files:  []upload{{name: "cv.pdf", data: "%PDF"}},
		},
		{
			name:   "not a pdf",
			fields: map[string]string{"job_description": "Python developer"},
			files:  []upload{{name: "cv.docx", data: "PK"}},
		},
		{
			name:   "too large",
			fields: map[string]string{"job_description": "Python developer"},
			files:  []upload{{name: "cv.pdf", data: strings.Repeat("x", 2048)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(&stubAnalyzer{}, stubLanguageData{})
			var body map[string]any
			status := doRequest(t, app, multipartRequest(t, tt.fields, tt.files...), &body)
			if status != fiber.StatusBadRequest {
				t.Fatalf("expected 400, got %d", status)
			}
			if body["error"] == "" || body["error"] == nil {
				t.Fatalf("expected error message")
			}
		})
	}
}

func TestHandleScore(t *testing.T) {
	t.Parallel()

	unavailable := &services.NormalizationError{Err: services.ErrLanguageDataUnavailable}

	tests := []struct {
		name     string
		body     string
		analyzer *stubAnalyzer
		status   int
		kind     string
	}{
		{
			name:     "scored",
			body:     `{"resume_text":"python developer","job_description":"python"}`,
			analyzer: &stubAnalyzer{score: 57.97, tier: models.TierModerate},
			status:   fiber.StatusOK,
		},
		{
			name:     "invalid body",
			body:     `{"resume_text":`,
			analyzer: &stubAnalyzer{},
			status:   fiber.StatusBadRequest,
		},
		{
			name:     "missing job description",
			body:     `{"resume_text":"python developer"}`,
			analyzer: &stubAnalyzer{},
			status:   fiber.StatusBadRequest,
		},
		{
			name:     "language data unavailable",
			body:     `{"resume_text":"python","job_description":"python"}`,
			analyzer: &stubAnalyzer{scoreErr: unavailable},
			status:   fiber.StatusServiceUnavailable,
			kind:     "normalization",
		},
		{
			name:     "scoring failure",
			body:     `{"resume_text":"python","job_description":"python"}`,
			analyzer: &stubAnalyzer{scoreErr: &services.ScoringError{Err: errors.New("non-finite similarity")}},
			status:   fiber.StatusUnprocessableEntity,
			kind:     "scoring",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(tt.analyzer, stubLanguageData{})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/score", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

			var body map[string]any
			status := doRequest(t, app, req, &body)
			if status != tt.status {
				t.Fatalf("expected %d, got %d (%v)", tt.status, status, body)
			}
			if tt.kind != "" && body["error_kind"] != tt.kind {
				t.Fatalf("expected error_kind %q, got %v", tt.kind, body["error_kind"])
			}
			if tt.status == fiber.StatusOK {
				if body["score"] != 57.97 || body["tier"] != "moderate" || body["label"] != "Moderate match" {
					t.Fatalf("unexpected response %v", body)
				}
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		languageData stubLanguageData
		status       string
		data         string
	}{
		{name: "ready", status: "healthy", data: "ready"},
		{
			name:         "degraded",
			languageData: stubLanguageData{err: fmt.Errorf("%w: offline", services.ErrLanguageDataUnavailable)},
			status:       "degraded",
			data:         "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := newTestApp(&stubAnalyzer{}, tt.languageData)
			var got models.HealthResponse
			code := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), &got)
			if code != fiber.StatusOK {
				t.Fatalf("expected 200, got %d", code)
			}
			if got.Status != tt.status || got.LanguageData != tt.data {
				t.Fatalf("unexpected health %+v", got)
			}
			if tt.status == "degraded" && got.Error == "" {
				t.Fatalf("expected error detail")
			}
		})
	}
}
