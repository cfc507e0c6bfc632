package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
	ExtractTextWithMetaData(data []byte) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct {
	logger *zap.Logger
}

func NewPDFParserService(logger *zap.Logger) PDFParserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pdfParserService{logger: logger}
}

func (p *pdfParserService) ExtractText(data []byte) (string, error) {
	content, err := p.ExtractTextWithMetaData(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData reads every page in order. Pages are separated by a
// newline so words at page boundaries never fuse.
func (p *pdfParserService) ExtractTextWithMetaData(data []byte) (content *PDFContent, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = &ExtractionError{Err: fmt.Errorf("pdf parser panic: %v", r)}
		}
	}()

	if len(data) == 0 {
		return nil, &ExtractionError{Err: errors.New("empty file")}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("failed to open PDF: %w", err)}
	}

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, &ExtractionError{Err: errors.New("PDF has no pages")}
	}

	var textBuilder strings.Builder
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			p.logger.Debug("skipping unreadable page",
				zap.Int("page", pageIndex),
				zap.Error(err),
			)
			continue
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString(text)
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, &ExtractionError{Err: errors.New("no text content found in PDF")}
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
	}, nil
}
