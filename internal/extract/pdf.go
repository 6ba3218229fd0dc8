package extract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"

	"legalscan/internal/model"
)

// PDFExtractor reads embedded text from PDF pages via MuPDF and falls back to
// OCR for scanned documents.
type PDFExtractor struct {
	ocr OCREngine
	dpi int
}

// NewPDFExtractor builds a PDF extractor. engine may be nil to disable OCR.
func NewPDFExtractor(engine OCREngine, dpi int) *PDFExtractor {
	if dpi <= 0 {
		dpi = 300
	}
	return &PDFExtractor{ocr: engine, dpi: dpi}
}

// Extract returns the PDF's text. Embedded text wins; when it is shorter than
// MinReadableRunes the pages are rasterized and recognized one by one.
func (p *PDFExtractor) Extract(ctx context.Context, data []byte) (*Result, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	var parts []string
	for i := 0; i < pages; i++ {
		pg, err := doc.Text(i)
		if err != nil {
			continue
		}
		if pg = strings.TrimSpace(pg); pg != "" {
			parts = append(parts, pg)
		}
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))

	if !needsOCR(text) {
		return &Result{Text: text, PageCount: pages, Source: model.SourceEmbedded}, nil
	}
	if p.ocr == nil {
		if text == "" {
			return nil, ErrNoText
		}
		return &Result{Text: text, PageCount: pages, Source: model.SourceEmbedded}, nil
	}

	ocrText, err := p.recognizePages(ctx, doc, pages)
	if err != nil {
		return nil, err
	}
	if ocrText == "" {
		return nil, ErrNoText
	}
	return &Result{Text: ocrText, PageCount: pages, Source: model.SourceOCR}, nil
}

func (p *PDFExtractor) recognizePages(ctx context.Context, doc *fitz.Document, pages int) (string, error) {
	var parts []string
	for i := 0; i < pages; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(i, float64(p.dpi))
		if err != nil {
			return "", fmt.Errorf("rasterize page %d: %w", i+1, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("encode page %d: %w", i+1, err)
		}

		text, err := p.ocr.Recognize(ctx, buf.Bytes())
		if err != nil {
			return "", fmt.Errorf("ocr page %d: %w", i+1, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
