package handlers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
	logger      *zap.Logger
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	maxFileSize int64,
	logger *zap.Logger,
) *AnalyzeHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleAnalyze handles POST /analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please upload at least one resume.",
		})
	}

	documents := make([]models.Document, 0, len(files))
	for _, file := range files {
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is not a PDF file", file.Filename),
			})
		}
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to open uploaded file %s", file.Filename),
			})
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read uploaded file %s", file.Filename),
			})
		}

		documents = append(documents, models.Document{
			Name: file.Filename,
			Data: data,
		})
	}

	includeText, _ := strconv.ParseBool(c.FormValue("include_text", c.Query("include_text")))

	analysis, err := h.analyzer.Analyze(c.UserContext(), services.AnalyzeInput{
		JobTitle:       c.FormValue("job_title"),
		JobDescription: c.FormValue("job_description"),
		Documents:      documents,
		IncludeText:    includeText,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyJobDescription) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please enter a job description.",
			})
		}
		if errors.Is(err, services.ErrNoDocuments) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please upload at least one resume.",
			})
		}
		h.logger.Error("❌ Analysis failed", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to analyze resumes")
	}

	response := models.AnalyzeResponse{Analysis: analysis}
	for _, r := range analysis.Results {
		if r.Failed() {
			response.Failed++
		} else {
			response.Succeeded++
		}
	}

	return c.JSON(response)
}
