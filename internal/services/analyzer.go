package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
)

type AnalyzeInput struct {
	JobTitle       string
	JobDescription string
	Documents      []models.Document
	// IncludeText copies the extracted resume text and the job description
	// into the result for display.
	IncludeText bool
}

type AnalyzerService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*models.Analysis, error)
	ScoreText(ctx context.Context, resumeText, jobDescription string) (float64, models.MatchTier, error)
}

type analyzerService struct {
	pdfParser    PDFParserService
	languageData LanguageDataProvider
	scorer       Scorer
	logger       *zap.Logger
}

func NewAnalyzerService(
	pdfParser PDFParserService,
	languageData LanguageDataProvider,
	scorer Scorer,
	logger *zap.Logger,
) AnalyzerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyzerService{
		pdfParser:    pdfParser,
		languageData: languageData,
		scorer:       scorer,
		logger:       logger,
	}
}

// Analyze scores every document against the job description, one at a time
// and in upload order. A failing document is reported on its own result and
// never stops the rest of the batch.
func (a *analyzerService) Analyze(ctx context.Context, input AnalyzeInput) (*models.Analysis, error) {
	if len(input.Documents) == 0 {
		return nil, ErrNoDocuments
	}
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}

	analysis := &models.Analysis{
		ID:        uuid.New(),
		JobTitle:  strings.TrimSpace(input.JobTitle),
		Results:   make([]models.DocumentResult, 0, len(input.Documents)),
		CreatedAt: time.Now(),
	}
	if input.IncludeText {
		analysis.JobDescription = input.JobDescription
	}

	log := a.logger.With(zap.String("analysis_id", analysis.ID.String()))
	log.Info("🔄 Starting analysis", zap.Int("documents", len(input.Documents)))

	normalizer := a.normalizer(ctx)
	jobClean, jobErr := normalizer.Normalize(input.JobDescription)
	if jobErr != nil {
		log.Error("❌ Failed to normalize job description", zap.Error(jobErr))
	}

	for _, doc := range input.Documents {
		var result models.DocumentResult
		if err := ctx.Err(); err != nil {
			result = failedResult(doc.Name, err)
		} else {
			result = a.analyzeDocument(doc, normalizer, jobClean, jobErr, input.IncludeText)
		}

		if result.Failed() {
			log.Warn("⚠️  Document failed",
				zap.String("file", doc.Name),
				zap.String("error_kind", result.ErrorKind),
				zap.Stringp("error", result.ErrorMessage),
			)
		} else {
			log.Info("✅ Document scored",
				zap.String("file", doc.Name),
				zap.Float64("score", result.Score),
				zap.String("tier", string(result.Tier)),
			)
		}
		analysis.Results = append(analysis.Results, result)
	}

	return analysis, nil
}

func (a *analyzerService) analyzeDocument(
	doc models.Document,
	normalizer Normalizer,
	jobClean string,
	jobErr error,
	includeText bool,
) models.DocumentResult {
	content, err := a.pdfParser.ExtractTextWithMetaData(doc.Data)
	if err != nil {
		return failedResult(doc.Name, err)
	}

	var extracted *string
	if includeText {
		extracted = &content.Text
	}

	fail := func(err error) models.DocumentResult {
		r := failedResult(doc.Name, err)
		r.PageCount = content.PageCount
		r.ExtractedText = extracted
		return r
	}

	if jobErr != nil {
		return fail(jobErr)
	}

	resumeClean, err := normalizer.Normalize(content.Text)
	if err != nil {
		return fail(err)
	}

	score, err := a.scorer.Score(resumeClean, jobClean)
	if err != nil {
		return fail(err)
	}

	tier := a.scorer.Classify(score)
	return models.DocumentResult{
		ID:            uuid.New(),
		FileName:      doc.Name,
		Status:        models.StatusCompleted,
		Score:         score,
		Tier:          tier,
		Label:         tier.Label(),
		PageCount:     content.PageCount,
		ExtractedText: extracted,
	}
}

func (a *analyzerService) ScoreText(ctx context.Context, resumeText, jobDescription string) (float64, models.MatchTier, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return 0, "", ErrEmptyJobDescription
	}

	normalizer := a.normalizer(ctx)

	jobClean, err := normalizer.Normalize(jobDescription)
	if err != nil {
		return 0, "", err
	}
	resumeClean, err := normalizer.Normalize(resumeText)
	if err != nil {
		return 0, "", err
	}

	score, err := a.scorer.Score(resumeClean, jobClean)
	if err != nil {
		return 0, "", err
	}
	return score, a.scorer.Classify(score), nil
}

func (a *analyzerService) normalizer(ctx context.Context) Normalizer {
	data, err := a.languageData.Get(ctx)
	if err != nil {
		return NewNormalizer(nil)
	}
	return NewNormalizer(data)
}

func failedResult(name string, err error) models.DocumentResult {
	msg := err.Error()
	return models.DocumentResult{
		ID:           uuid.New(),
		FileName:     name,
		Status:       models.StatusFailed,
		ErrorKind:    ErrorKind(err),
		ErrorMessage: &msg,
	}
}
