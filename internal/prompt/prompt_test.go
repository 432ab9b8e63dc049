package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papergen/pkg/types"
)

func year(v int) *int { return &v }

func TestBuild_Sections(t *testing.T) {
	papers := []types.PaperRecord{
		{Filename: "MAY18.pdf", Year: year(2018), Content: "Q1. Explain deadlock."},
		{Filename: "notes.pdf", Content: "Q2. Define a semaphore."},
	}

	got, err := Build(papers, "Unit 1: Process management", 45)
	require.NoError(t, err)

	for _, want := range []string{
		"**Question Papers (2 papers):**",
		"--- Paper 1: MAY18.pdf (Year: 2018) ---\nQ1. Explain deadlock.",
		"--- Paper 2: notes.pdf (Year: unknown) ---\nQ2. Define a semaphore.",
		"**Syllabus:**\nUnit 1: Process management",
		"**Threshold:** 45%",
		"Frequency (50%)",
		"Recency (30%)",
		"Diversity (20%)",
		"Select top 45% curated questions",
		"Generate 55% NEW questions from syllabus",
		`"threshold_used": 45,`,
		`"curated_questions": [`,
		`"ai_generated_questions": [`,
	} {
		assert.Contains(t, got, want)
	}
	assert.True(t, strings.HasPrefix(got, "You are an expert question paper generator"))
	assert.True(t, strings.HasSuffix(got, "Start with { and end with }"))
	assert.Less(t, strings.Index(got, "Paper 1:"), strings.Index(got, "Paper 2:"))
}

func TestBuild_Truncation(t *testing.T) {
	paper := strings.Repeat("a", MaxExcerptChars) + "TAIL"
	syllabus := strings.Repeat("s", MaxSyllabusChars) + "SYLLABUS-TAIL"

	got, err := Build([]types.PaperRecord{{Filename: "x.pdf", Content: paper}}, syllabus, 30)
	require.NoError(t, err)

	assert.Contains(t, got, strings.Repeat("a", MaxExcerptChars))
	assert.NotContains(t, got, "TAIL")
	assert.Contains(t, got, strings.Repeat("s", MaxSyllabusChars))
}

func TestBuild_NoEscaping(t *testing.T) {
	got, err := Build([]types.PaperRecord{{Filename: "a&b <c>.pdf", Content: `"quoted" {braces}`}}, "", 30)
	require.NoError(t, err)
	assert.Contains(t, got, "a&b <c>.pdf")
	assert.Contains(t, got, `"quoted" {braces}`)
}

func TestBuild_NoPapers(t *testing.T) {
	got, err := Build(nil, "", 0)
	require.NoError(t, err)
	assert.Contains(t, got, "(0 papers)")
	assert.Contains(t, got, "Generate 100% NEW questions")
}
