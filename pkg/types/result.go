// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Result is the outcome of one generation run. It is either a success
// carrying the object returned by the model, or an error carrying a
// message and, for parse failures, an excerpt of the raw response.
//
// The remote object is trusted as-is; no schema is enforced. The expected
// top-level keys are analysis, curated_questions, ai_generated_questions
// and summary.
type Result struct {
	// Fields is the decoded remote object. Nil for error results.
	Fields map[string]any

	// Raw is the remote object as received, compacted. When set, it is
	// what gets written, so the model's key order survives.
	Raw json.RawMessage

	// Err is the failure message. Empty for success results.
	Err string

	// RawResponse is the leading excerpt of a response that failed to parse.
	RawResponse string
}

// Success wraps a decoded remote object.
func Success(fields map[string]any) Result {
	if fields == nil {
		fields = map[string]any{}
	}
	return Result{Fields: fields}
}

// SuccessRaw wraps a decoded remote object together with its source text.
func SuccessRaw(fields map[string]any, raw json.RawMessage) Result {
	r := Success(fields)
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		r.Raw = buf.Bytes()
	}
	return r
}

// Failure builds an error result.
func Failure(msg string) Result {
	return Result{Err: msg}
}

// ParseFailure builds an error result that keeps a diagnostic excerpt.
func ParseFailure(msg, raw string) Result {
	return Result{Err: msg, RawResponse: raw}
}

// OK reports whether the run succeeded.
func (r Result) OK() bool {
	return r.Err == ""
}

// Map flattens the result into the mapping written to disk: the remote
// object plus "success": true, or "error" (and "raw_response").
func (r Result) Map() map[string]any {
	if !r.OK() {
		m := map[string]any{"error": r.Err}
		if r.RawResponse != "" {
			m["raw_response"] = r.RawResponse
		}
		return m
	}
	m := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		m[k] = v
	}
	m["success"] = true
	return m
}

// ordered reports whether r can be written from Raw. A remote object that
// already has a "success" key goes through Map so the flag overrides it.
func (r Result) ordered() bool {
	if !r.OK() || len(r.Raw) == 0 {
		return false
	}
	_, clash := r.Fields["success"]
	return !clash
}

// MarshalJSON encodes the flattened mapping without HTML escaping. A
// success built with SuccessRaw keeps the remote key order and gets
// "success" appended last.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.ordered() {
		body := bytes.TrimSuffix(r.Raw, []byte("}"))
		out := make([]byte, 0, len(r.Raw)+16)
		out = append(out, body...)
		if len(r.Fields) > 0 {
			out = append(out, ',')
		}
		return append(out, `"success":true}`...), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Map()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML encodes the flattened mapping, in the remote key order when
// the source text is available.
func (r Result) MarshalYAML() (any, error) {
	if r.ordered() {
		var doc yaml.Node
		if err := yaml.Unmarshal(r.Raw, &doc); err == nil && len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode {
			root := doc.Content[0]
			blockStyle(root)
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "success"},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"},
			)
			return root, nil
		}
	}
	return yamlSafe(r.Map()), nil
}

// blockStyle drops the flow style JSON input parses with, so collections
// render as indented YAML blocks.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// yamlSafe converts json.Number values (produced by the response decoder)
// into native numbers so YAML renders them unquoted.
func yamlSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlSafe(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlSafe(e)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

// Summary holds the counts reported under the "summary" key.
type Summary struct {
	ThresholdUsed    int `json:"threshold_used"`
	CuratedCount     int `json:"curated_count"`
	AIGeneratedCount int `json:"ai_generated_count"`
	TotalQuestions   int `json:"total_questions"`
}

// Question holds the printable fields of one entry of curated_questions or
// ai_generated_questions. Missing or oddly typed fields are left zero; the
// entry itself is kept.
type Question struct {
	Number          int
	Question        string
	Frequency       int
	YearsAppeared   []int
	ImportanceScore float64
	SyllabusTopic   string
}

// Summary decodes the "summary" object. Missing or malformed fields are zero.
func (r Result) Summary() Summary {
	var s Summary
	obj, ok := r.Fields["summary"].(map[string]any)
	if !ok {
		return s
	}
	s.ThresholdUsed = intField(obj["threshold_used"])
	s.CuratedCount = intField(obj["curated_count"])
	s.AIGeneratedCount = intField(obj["ai_generated_count"])
	s.TotalQuestions = intField(obj["total_questions"])
	return s
}

// CuratedQuestions reads "curated_questions". Entries that are not objects
// are skipped.
func (r Result) CuratedQuestions() []Question {
	return questions(r.Fields["curated_questions"])
}

// GeneratedQuestions reads "ai_generated_questions". Entries that are not
// objects are skipped.
func (r Result) GeneratedQuestions() []Question {
	return questions(r.Fields["ai_generated_questions"])
}

func questions(v any) []Question {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Question
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		q := Question{
			Number:          intField(obj["number"]),
			Question:        stringField(obj["question"]),
			Frequency:       intField(obj["frequency"]),
			ImportanceScore: floatField(obj["importance_score"]),
			SyllabusTopic:   stringField(obj["syllabus_topic"]),
		}
		if years, ok := obj["years_appeared"].([]any); ok {
			for _, y := range years {
				q.YearsAppeared = append(q.YearsAppeared, intField(y))
			}
		}
		out = append(out, q)
	}
	return out
}

func intField(v any) int {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(t)
	case int:
		return t
	case string:
		s := strings.TrimSpace(t)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func floatField(v any) float64 {
	switch t := v.(type) {
	case json.Number:
		f, _ := t.Float64()
		return f
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	}
	return 0
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// String renders a one-line description for logs.
func (r Result) String() string {
	if r.OK() {
		return fmt.Sprintf("success (%d keys)", len(r.Fields))
	}
	return "error: " + r.Err
}
