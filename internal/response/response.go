// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package response recovers the JSON object from model output that may be
// wrapped in Markdown code fences or surrounded by prose.
package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/papergen/internal/textutil"
	"github.com/pdiddy/papergen/pkg/types"
)

const (
	// ParseFailedMessage is the error text of a result whose response
	// could not be decoded.
	ParseFailedMessage = "Failed to parse response"

	// MaxExcerptChars bounds the raw response kept on a parse failure.
	MaxExcerptChars = 1000
)

// StripFences returns the body of the first ```json fence, or failing that
// the body of the first ``` fence. Text without fences is returned as-is.
// An unterminated fence yields everything after the opening marker.
func StripFences(s string) string {
	for _, marker := range []string{"```json", "```"} {
		if _, after, ok := strings.Cut(s, marker); ok {
			inner, _, _ := strings.Cut(after, "```")
			return inner
		}
	}
	return s
}

// SliceObject returns the span from the first '{' to the last '}'
// inclusive. When no such ordered pair exists s is returned unchanged.
func SliceObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}

// Decode strips fences, slices the outermost object and decodes exactly one
// JSON object from it. Numbers are kept as json.Number so integers and
// decimals round-trip unchanged.
func Decode(raw string) (map[string]any, error) {
	obj, _, err := decode(raw)
	return obj, err
}

// decode is Decode that also returns the object's source bytes.
func decode(raw string) (map[string]any, json.RawMessage, error) {
	text := strings.TrimSpace(SliceObject(StripFences(raw)))

	dec := json.NewDecoder(strings.NewReader(text))
	var src json.RawMessage
	if err := dec.Decode(&src); err != nil {
		return nil, nil, fmt.Errorf("decoding response object: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("decoding response object: trailing data after object")
	}

	obj := objectOf(src)
	if obj == nil {
		return nil, nil, errors.New("decoding response object: not a JSON object")
	}
	return obj, src, nil
}

func objectOf(src json.RawMessage) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil
	}
	return obj
}

// Parse turns raw model output into a Result. A decode failure becomes an
// error result carrying the first MaxExcerptChars characters of raw.
func Parse(raw string) types.Result {
	obj, src, err := decode(raw)
	if err != nil {
		return types.ParseFailure(ParseFailedMessage, textutil.Truncate(raw, MaxExcerptChars))
	}
	return types.SuccessRaw(obj, src)
}
