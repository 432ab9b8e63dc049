// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers discovers historical question papers, reads their text,
// infers their exam year, and reads the curated-question threshold.
package papers

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/papergen/internal/pdftext"
	"github.com/pdiddy/papergen/internal/textutil"
	"github.com/pdiddy/papergen/pkg/types"
)

// DefaultThreshold is the curated percentage used when the threshold file
// is missing or unparsable.
const DefaultThreshold = 30

// ReadThreshold returns the integer percentage stored in path, or
// DefaultThreshold when the file is absent, unparsable, or outside [0,100].
func ReadThreshold(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultThreshold
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || v < 0 || v > 100 {
		return DefaultThreshold
	}
	return v
}

// WriteThreshold stores v in path, creating parent directories.
func WriteThreshold(path string, v int) error {
	if v < 0 || v > 100 {
		return fmt.Errorf("threshold %d out of range [0,100]", v)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating threshold directory: %w", err)
	}
	return os.WriteFile(path, []byte(strconv.Itoa(v)), 0o644)
}

var (
	monthYearRe = regexp.MustCompile(`(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)(\d{2})(?:\D|$)`)
	fullYearRe  = regexp.MustCompile(`20\d{2}`)
)

// yearPivot splits two-digit years: below it map to 20xx, otherwise 19xx.
const yearPivot = 50

// YearFromFilename infers the exam year from a filename such as
// "MAY18_paper.pdf" (2018), "DEC99.pdf" (1999) or "Exam2021.pdf" (2021).
// A month code followed by exactly two digits wins over a bare 20xx year;
// "SEP2019" is read as 2019, not as month code plus "20".
// It returns nil when neither pattern matches.
func YearFromFilename(name string) *int {
	if m := monthYearRe.FindStringSubmatch(name); m != nil {
		yy, _ := strconv.Atoi(m[2])
		year := 1900 + yy
		if yy < yearPivot {
			year = 2000 + yy
		}
		return &year
	}
	if m := fullYearRe.FindString(name); m != "" {
		year, _ := strconv.Atoi(m)
		return &year
	}
	return nil
}

// Discover lists the PDFs directly inside dir, sorted by name. A missing
// directory, or a path that is not a directory, yields no files rather
// than an error.
func Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading papers directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading papers directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load extracts each PDF and builds its PaperRecord. Unreadable files
// produce a record with empty content.
func Load(e pdftext.Extractor, paths []string, log *zap.Logger) []types.PaperRecord {
	records := make([]types.PaperRecord, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		text := pdftext.ExtractText(e, p, log)
		records = append(records, types.PaperRecord{
			Filename: name,
			Year:     YearFromFilename(name),
			Content:  textutil.Truncate(text, types.MaxPaperChars),
		})
	}
	return records
}
