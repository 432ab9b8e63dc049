// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt assembles the single instruction prompt that asks the
// model to analyze past papers and produce a new question paper as JSON.
package prompt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pdiddy/papergen/internal/textutil"
	"github.com/pdiddy/papergen/pkg/types"
)

const (
	// MaxExcerptChars bounds each paper's text inside the prompt.
	MaxExcerptChars = 2000
	// MaxSyllabusChars bounds the syllabus text inside the prompt.
	MaxSyllabusChars = 3000
)

// SystemPrompt is the system message for chat-style backends.
const SystemPrompt = "You are an expert academic question paper generator."

// paperPromptTmpl is the full instruction. Values are interpolated as-is;
// nothing is escaped.
var paperPromptTmpl = template.Must(template.New("paper").Parse(`You are an expert question paper generator for academic exams.

**YOUR TASK:**
Analyze old question papers and syllabus, then generate an intelligent question paper.

**INPUTS:**

**Question Papers ({{len .Papers}} papers):**
{{range .Papers}}
--- Paper {{.Index}}: {{.Filename}} (Year: {{.Year}}) ---
{{.Content}}
{{end}}

**Syllabus:**
{{.Syllabus}}

**Threshold:** {{.Threshold}}%

---

**INSTRUCTIONS:**

1. Extract ALL questions from papers (ignore headers/instructions)
2. Group similar questions and calculate importance:
   - Frequency (50%): Times appeared
   - Recency (30%): Newer = higher score
   - Diversity (20%): Different years
3. Select top {{.Threshold}}% curated questions
4. Generate {{.Generated}}% NEW questions from syllabus

**OUTPUT (Valid JSON only):**
{
  "analysis": {
    "total_questions_found": 20,
    "unique_question_groups": 18,
    "papers_analyzed": [{"filename": "MAY18.pdf", "year": 2018, "questions_extracted": 10}]
  },
  "curated_questions": [
    {
      "number": 1,
      "question": "Complete question text",
      "frequency": 2,
      "years_appeared": [2018, 2019],
      "importance_score": 85.5,
      "marks": 10
    }
  ],
  "ai_generated_questions": [
    {
      "number": 1,
      "question": "Complete question text",
      "syllabus_topic": "Topic from syllabus",
      "difficulty": "medium",
      "marks": 10
    }
  ],
  "summary": {
    "threshold_used": {{.Threshold}},
    "curated_count": 6,
    "ai_generated_count": 14,
    "total_questions": 20
  }
}

Output ONLY valid JSON. Start with { and end with }`))

type paperView struct {
	Index    int
	Filename string
	Year     string
	Content  string
}

// Build renders the prompt for the given papers, syllabus text and
// curated-question threshold.
func Build(papers []types.PaperRecord, syllabus string, threshold int) (string, error) {
	views := make([]paperView, len(papers))
	for i, p := range papers {
		views[i] = paperView{
			Index:    i + 1,
			Filename: p.Filename,
			Year:     p.YearLabel(),
			Content:  textutil.Truncate(p.Content, MaxExcerptChars),
		}
	}

	data := struct {
		Papers    []paperView
		Syllabus  string
		Threshold int
		Generated int
	}{
		Papers:    views,
		Syllabus:  textutil.Truncate(syllabus, MaxSyllabusChars),
		Threshold: threshold,
		Generated: 100 - threshold,
	}

	var buf bytes.Buffer
	if err := paperPromptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering prompt: %w", err)
	}
	return buf.String(), nil
}
