package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type HealthHandler struct {
	languageData services.LanguageDataProvider
}

func NewHealthHandler(languageData services.LanguageDataProvider) *HealthHandler {
	return &HealthHandler{
		languageData: languageData,
	}
}

// HandleHealth reports the service as degraded when scoring cannot run.
// Extraction keeps working in that state.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	response := models.HealthResponse{
		Status:       "healthy",
		Time:         time.Now(),
		LanguageData: "ready",
	}

	if _, err := h.languageData.Get(c.UserContext()); err != nil {
		response.Status = "degraded"
		response.LanguageData = "unavailable"
		response.Error = err.Error()
	}

	return c.JSON(response)
}
