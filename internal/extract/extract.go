package extract

// Package extract turns uploaded documents into plain text. PDFs are read
// page by page for embedded text; scanned PDFs with no usable text layer fall
// back to rasterizing each page and running OCR. Plain text files pass through.

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"legalscan/internal/model"
)

var (
	// ErrNoText means no readable text could be produced from the input.
	ErrNoText = errors.New("no readable text found in document")
	// ErrUnsupported means the file type has no extraction path.
	ErrUnsupported = errors.New("unsupported document type")
)

// MinReadableRunes is the threshold below which embedded PDF text is treated
// as a scanned document and OCR is attempted.
const MinReadableRunes = 20

// Result is the outcome of text extraction.
type Result struct {
	Text      string
	PageCount int
	Source    string // model.SourceEmbedded or model.SourceOCR
}

// Extractor produces plain text from a raw document.
type Extractor interface {
	Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error)
}

// Service routes a document to the right extraction path by content type and
// file extension.
type Service struct {
	pdf *PDFExtractor
}

// NewService builds the extraction service. engine may be nil, in which case
// scanned PDFs fail with ErrNoText instead of being OCRed.
func NewService(engine OCREngine, dpi int) *Service {
	return &Service{pdf: NewPDFExtractor(engine, dpi)}
}

var _ Extractor = (*Service)(nil)

// Extract returns the plain text of the document.
func (s *Service) Extract(ctx context.Context, data []byte, filename, contentType string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case contentType == "application/pdf" || ext == ".pdf":
		return s.pdf.Extract(ctx, data)
	case strings.HasPrefix(contentType, "text/") || ext == ".txt":
		text := strings.TrimSpace(string(data))
		if utf8.RuneCountInString(text) == 0 {
			return nil, ErrNoText
		}
		return &Result{Text: text, PageCount: 1, Source: model.SourceEmbedded}, nil
	default:
		return nil, ErrUnsupported
	}
}

// needsOCR reports whether embedded text is too thin to analyze, which is how
// scanned documents are detected.
func needsOCR(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < MinReadableRunes
}
