// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from question paper and syllabus PDFs
// with pluggable backends.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/papergen/pkg/types"
)

// Extractor reads a PDF at path and returns its text.
type Extractor interface {
	Extract(path string) (string, error)
}

// New returns the extractor for the configured backend. Empty selects the
// pure-Go reader.
func New(backend types.ExtractorBackend) (Extractor, error) {
	switch backend {
	case "", types.ExtractorPDF:
		return PlainExtractor{}, nil
	case types.ExtractorDocconv:
		return DocconvExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (want pdf or docconv)", backend)
	}
}

// ExtractText runs e on path and never fails: any error, including a panic
// from the decoder, is logged and yields the empty string.
func ExtractText(e Extractor, path string, log *zap.Logger) (text string) {
	if log == nil {
		log = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error("reading PDF", zap.String("path", path), zap.Any("panic", r))
			text = ""
		}
	}()

	text, err := e.Extract(path)
	if err != nil {
		log.Error("reading PDF", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// PlainExtractor walks the pages with github.com/ledongthuc/pdf and joins
// their text, each page followed by a newline.
type PlainExtractor struct{}

// Extract implements Extractor.
func (PlainExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			b.WriteString("\n")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting page %d of %s: %w", i, path, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
