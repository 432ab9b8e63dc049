// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"time"
)

// PaperRecord is the extracted text of one historical question paper.
// Records are built once per discovered file and discarded after the
// prompt is assembled.
type PaperRecord struct {
	// Filename is the base name of the PDF (e.g. "MAY18_paper.pdf").
	Filename string `json:"filename" yaml:"filename"`

	// Year is inferred from the filename; nil when no pattern matched.
	Year *int `json:"year" yaml:"year"`

	// Content is the extracted text, truncated to MaxPaperChars characters.
	Content string `json:"content" yaml:"content"`
}

// MaxPaperChars is the number of characters of each paper kept in a PaperRecord.
const MaxPaperChars = 4000

// YearLabel renders Year for display, or "unknown" when absent.
func (p PaperRecord) YearLabel() string {
	if p.Year == nil {
		return "unknown"
	}
	return strconv.Itoa(*p.Year)
}

// Run is one entry in the generation history.
type Run struct {
	ID         string     `json:"id" yaml:"id"`
	StartedAt  time.Time  `json:"started_at" yaml:"started_at"`
	Backend    LLMBackend `json:"backend" yaml:"backend"`
	Model      string     `json:"model" yaml:"model"`
	Threshold  int        `json:"threshold" yaml:"threshold"`
	Papers     int        `json:"papers" yaml:"papers"`
	Success    bool       `json:"success" yaml:"success"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
	OutputPath string     `json:"output_path" yaml:"output_path"`
}
