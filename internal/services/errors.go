package services

import (
	"errors"
	"fmt"
)

var (
	ErrLanguageDataUnavailable = errors.New("language data unavailable")
	ErrNoDocuments             = errors.New("at least one resume is required")
	ErrEmptyJobDescription     = errors.New("job description is required")
)

// ExtractionError reports a PDF that could not be read.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func (e *ExtractionError) Kind() string { return "extraction" }

// NormalizationError reports a failure inside the text cleaning pipeline.
type NormalizationError struct {
	Err error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("failed to normalize text: %v", e.Err)
}

func (e *NormalizationError) Unwrap() error { return e.Err }

func (e *NormalizationError) Kind() string { return "normalization" }

// ScoringError reports a failure while vectorizing or comparing documents.
type ScoringError struct {
	Err error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("failed to calculate similarity: %v", e.Err)
}

func (e *ScoringError) Unwrap() error { return e.Err }

func (e *ScoringError) Kind() string { return "scoring" }

// ErrorKind returns the pipeline stage an error belongs to, or "internal".
func ErrorKind(err error) string {
	var kinded interface{ Kind() string }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}
	return "internal"
}
