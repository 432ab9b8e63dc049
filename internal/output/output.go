// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists a generation Result to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/papergen/pkg/types"
)

// DefaultPath is the result file written when no path is configured.
const DefaultPath = "output_paper_api.json"

// CheckFormat reports whether format is supported. Empty means json.
func CheckFormat(format types.OutputFormat) error {
	switch format {
	case "", types.OutputJSON, types.OutputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}

// Marshal renders r in the given format. JSON uses two-space indentation
// and leaves non-ASCII and HTML characters unescaped. Both formats keep the
// model's key order when r carries its source text.
func Marshal(r types.Result, format types.OutputFormat) ([]byte, error) {
	switch format {
	case "", types.OutputJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("marshaling result: %w", err)
		}
		return buf.Bytes(), nil
	case types.OutputYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshaling result: %w", err)
		}
		return data, nil
	default:
		return nil, CheckFormat(format)
	}
}

// Write marshals r and writes it to path, creating parent directories.
// An existing file is replaced.
func Write(path string, r types.Result, format types.OutputFormat) error {
	data, err := Marshal(r, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
