package models

import (
	"time"

	"github.com/google/uuid"
)

type ResultStatus string

const (
	StatusCompleted ResultStatus = "completed"
	StatusFailed    ResultStatus = "failed"
)

type MatchTier string

const (
	TierStrong   MatchTier = "strong"
	TierModerate MatchTier = "moderate"
	TierLow      MatchTier = "low"
)

// Label is the human readable text shown next to a score.
func (t MatchTier) Label() string {
	switch t {
	case TierStrong:
		return "Excellent match"
	case TierModerate:
		return "Moderate match"
	default:
		return "Low match"
	}
}

// DocumentResult is the outcome for a single resume in a batch.
type DocumentResult struct {
	ID            uuid.UUID    `json:"id"`
	FileName      string       `json:"file_name"`
	Status        ResultStatus `json:"status"`
	Score         float64      `json:"score"`
	Tier          MatchTier    `json:"tier,omitempty"`
	Label         string       `json:"label,omitempty"`
	PageCount     int          `json:"page_count,omitempty"`
	ExtractedText *string      `json:"extracted_text,omitempty"`
	ErrorKind     string       `json:"error_kind,omitempty"`
	ErrorMessage  *string      `json:"error_message,omitempty"`
}

func (r DocumentResult) Failed() bool {
	return r.Status == StatusFailed
}

type Analysis struct {
	ID             uuid.UUID        `json:"id"`
	JobTitle       string           `json:"job_title,omitempty"`
	JobDescription string           `json:"job_description,omitempty"`
	Results        []DocumentResult `json:"results"`
	CreatedAt      time.Time        `json:"created_at"`
}
