package models

import "time"

type ScoreRequest struct {
	ResumeText     string `json:"resume_text"`
	JobDescription string `json:"job_description"`
}

type ScoreResponse struct {
	Score float64   `json:"score"`
	Tier  MatchTier `json:"tier"`
	Label string    `json:"label"`
}

type AnalyzeResponse struct {
	Analysis  *Analysis `json:"analysis"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

type HealthResponse struct {
	Status       string    `json:"status"`
	Time         time.Time `json:"time"`
	LanguageData string    `json:"language_data"`
	Error        string    `json:"error,omitempty"`
}
