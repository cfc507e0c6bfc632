package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type ScoreHandler struct {
	analyzer services.AnalyzerService
}

func NewScoreHandler(analyzer services.AnalyzerService) *ScoreHandler {
	return &ScoreHandler{
		analyzer: analyzer,
	}
}

// HandleScore handles POST /score for text that is already extracted.
func (h *ScoreHandler) HandleScore(c *fiber.Ctx) error {
	var req models.ScoreRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	score, tier, err := h.analyzer.ScoreText(c.UserContext(), req.ResumeText, req.JobDescription)
	if err != nil {
		if errors.Is(err, services.ErrEmptyJobDescription) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "job_description is required",
			})
		}
		if errors.Is(err, services.ErrLanguageDataUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error":      err.Error(),
				"error_kind": services.ErrorKind(err),
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      err.Error(),
			"error_kind": services.ErrorKind(err),
		})
	}

	return c.JSON(models.ScoreResponse{
		Score: score,
		Tier:  tier,
		Label: tier.Label(),
	})
}
