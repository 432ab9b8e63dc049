// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the question paper pipeline: extract past papers
// and the syllabus, assemble one prompt, call the model once, parse the
// JSON it returns, and persist the result.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/papergen/internal/llm"
	"github.com/pdiddy/papergen/internal/output"
	"github.com/pdiddy/papergen/internal/papers"
	"github.com/pdiddy/papergen/internal/pdftext"
	"github.com/pdiddy/papergen/internal/prompt"
	"github.com/pdiddy/papergen/internal/response"
	"github.com/pdiddy/papergen/internal/textutil"
	"github.com/pdiddy/papergen/pkg/types"
)

// NoFilesMessage is the error of a run whose papers directory holds no PDFs.
const NoFilesMessage = "No PDF files found"

// Recorder stores one entry per run. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run types.Run) error
}

// Pipeline holds the collaborators of one generation run. Fields are set
// once and only read afterwards.
type Pipeline struct {
	Extractor pdftext.Extractor
	Backend   llm.Backend
	Config    types.GenerationConfig

	// Out receives human-readable progress. Nil discards it.
	Out io.Writer
	// Log receives diagnostics. Nil discards them.
	Log *zap.Logger
	// History, when set, records every saved run.
	History Recorder

	now func() time.Time
}

// Stats describes the inputs of a run.
type Stats struct {
	Papers        int
	Threshold     int
	SyllabusFound bool
	ResponseChars int
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

func (p *Pipeline) log() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

// Process reads the inputs, calls the backend once and parses the answer.
// Every failure is folded into an error Result. When the papers directory
// is missing or empty it returns before any network call.
func (p *Pipeline) Process(ctx context.Context) (types.Result, Stats) {
	var stats Stats
	w := p.out()
	log := p.log()

	paths, err := papers.Discover(p.Config.PapersDir)
	if err != nil {
		log.Error("discovering papers", zap.Error(err))
		return types.Failure(err.Error()), stats
	}
	if len(paths) == 0 {
		return types.Failure(NoFilesMessage), stats
	}

	if p.Backend == nil {
		return types.Failure("no LLM backend configured"), stats
	}

	records := papers.Load(p.Extractor, paths, log)
	stats.Papers = len(records)

	var syllabus string
	if p.Config.SyllabusPath != "" {
		if _, err := os.Stat(p.Config.SyllabusPath); err == nil {
			syllabus = textutil.Truncate(pdftext.ExtractText(p.Extractor, p.Config.SyllabusPath, log), prompt.MaxSyllabusChars)
		}
	}
	stats.SyllabusFound = syllabus != ""

	stats.Threshold = papers.ReadThreshold(p.Config.ThresholdPath)
	fmt.Fprintf(w, "✓ Threshold: %d%%\n", stats.Threshold)

	text, err := prompt.Build(records, syllabus, stats.Threshold)
	if err != nil {
		return types.Failure(err.Error()), stats
	}

	found := "Not found"
	if stats.SyllabusFound {
		found = "Found"
	}
	fmt.Fprintf(w, "\nProcessing:\n   Papers: %d\n   Threshold: %d%%\n   Syllabus: %s\n", stats.Papers, stats.Threshold, found)

	backend := string(p.Config.Backend)
	if backend == "" {
		backend = string(types.BackendGroq)
	}
	fmt.Fprintf(w, "\nCalling %s API...\n", strings.ToUpper(backend))

	raw, err := p.Backend.Generate(ctx, text)
	if err != nil {
		log.Error("calling backend", zap.String("backend", backend), zap.Error(err))
		return types.Failure(err.Error()), stats
	}
	stats.ResponseChars = len([]rune(raw))
	fmt.Fprintf(w, "\n✓ Response received (%d chars)\n", stats.ResponseChars)

	result := response.Parse(raw)
	if !result.OK() {
		log.Warn("parsing response", zap.Int("response_chars", stats.ResponseChars))
	}
	return result, stats
}

// Save runs Process exactly once, writes the result to the configured
// output path, records the run, and returns the result. The error is
// non-nil only when the result file could not be written.
func (p *Pipeline) Save(ctx context.Context) (types.Result, error) {
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	runID := uuid.NewString()
	started := now()
	log := p.log().With(zap.String("run_id", runID))

	path := p.Config.OutputPath
	if path == "" {
		path = output.DefaultPath
	}

	result, stats := p.Process(ctx)

	if err := output.Write(path, result, p.Config.Format); err != nil {
		return result, err
	}
	fmt.Fprintf(p.out(), "\nOutput saved to: %s\n", path)
	log.Info("run finished", zap.Bool("success", result.OK()), zap.String("output", path))

	if p.History != nil {
		run := types.Run{
			ID:         runID,
			StartedAt:  started,
			Backend:    p.Config.Backend,
			Model:      p.Config.Model,
			Threshold:  stats.Threshold,
			Papers:     stats.Papers,
			Success:    result.OK(),
			Error:      result.Err,
			OutputPath: path,
		}
		if run.Backend == "" {
			run.Backend = types.BackendGroq
		}
		if err := p.History.Record(ctx, run); err != nil {
			log.Warn("recording run history", zap.Error(err))
		}
	}
	return result, nil
}

// PrintSummary writes the totals and the first three questions of each
// kind, or the error of a failed run.
func PrintSummary(w io.Writer, r types.Result) {
	if !r.OK() {
		fmt.Fprintf(w, "\nError: %s\n", r.Err)
		return
	}

	s := r.Summary()
	fmt.Fprintf(w, "\nSUCCESS!\n\nSUMMARY:\n")
	fmt.Fprintf(w, "  Total: %d\n", s.TotalQuestions)
	fmt.Fprintf(w, "  Curated: %d\n", s.CuratedCount)
	fmt.Fprintf(w, "  AI-Generated: %d\n", s.AIGeneratedCount)

	fmt.Fprintf(w, "\nCURATED QUESTIONS:\n")
	for _, q := range head(r.CuratedQuestions(), 3) {
		fmt.Fprintf(w, "\nQ%d. %s...\n", q.Number, textutil.Truncate(q.Question, 100))
		fmt.Fprintf(w, "   %dx | %v | %g%%\n", q.Frequency, q.YearsAppeared, q.ImportanceScore)
	}

	fmt.Fprintf(w, "\nAI-GENERATED:\n")
	for _, q := range head(r.GeneratedQuestions(), 3) {
		fmt.Fprintf(w, "\nQ%d. %s...\n", q.Number, textutil.Truncate(q.Question, 100))
		fmt.Fprintf(w, "   %s\n", q.SyllabusTopic)
	}
}

func head(qs []types.Question, n int) []types.Question {
	if len(qs) > n {
		return qs[:n]
	}
	return qs
}
