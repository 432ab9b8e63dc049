// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"os"

	"code.sajari.com/docconv"
)

// DocconvExtractor converts PDFs through code.sajari.com/docconv, which
// shells out to poppler's pdftotext. It copes with font encodings the
// pure-Go reader cannot decode, at the cost of an external binary.
type DocconvExtractor struct{}

// Extract implements Extractor.
func (DocconvExtractor) Extract(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	text, _, err := docconv.ConvertPDF(f)
	if err != nil {
		return "", fmt.Errorf("converting %s with docconv: %w", path, err)
	}
	return text, nil
}
