package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/papergen/internal/generate"
	"github.com/pdiddy/papergen/internal/history"
	"github.com/pdiddy/papergen/internal/llm"
	"github.com/pdiddy/papergen/internal/output"
	"github.com/pdiddy/papergen/internal/pdftext"
	"github.com/pdiddy/papergen/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a question paper with one LLM call",
	Long: `Generate reads every PDF in the papers directory, the syllabus PDF and
the threshold file, sends a single prompt to the configured LLM backend, and
writes the returned question paper to the output file.

A failed run (no papers, API error, unparsable response) still writes a
result file carrying an "error" key and exits with status 0.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig(cmd)

	p, cleanup, err := newPipeline(cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	printBanner(os.Stdout, cfg.Backend)

	result, err := p.Save(cmd.Context())
	if err != nil {
		return err
	}
	generate.PrintSummary(os.Stdout, result)
	fmt.Println("\n" + strings.Repeat("=", 70))
	return nil
}

// newPipeline wires extractor, backend and history for cfg. The cleanup
// closes the history store.
func newPipeline(cfg types.GenerationConfig, w io.Writer) (*generate.Pipeline, func(), error) {
	extractor, err := pdftext.New(cfg.Extractor)
	if err != nil {
		return nil, nil, err
	}
	if err := output.CheckFormat(cfg.Format); err != nil {
		return nil, nil, err
	}
	backend, err := llm.New(cfg.AIConfig)
	if err != nil {
		return nil, nil, err
	}

	p := &generate.Pipeline{
		Extractor: extractor,
		Backend:   backend,
		Config:    cfg,
		Out:       w,
		Log:       logger,
	}

	cleanup := func() {}
	if cfg.HistoryDB != "" {
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warn("run history disabled", zap.Error(err))
		} else {
			p.History = store
			cleanup = func() { store.Close() }
		}
	}
	return p, cleanup, nil
}

func printBanner(w io.Writer, backend types.LLMBackend) {
	if backend == "" {
		backend = types.BackendGroq
	}
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "PAPERGEN - API-BASED QUESTION PAPER GENERATOR")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "\nUsing API service: %s\n", strings.ToUpper(string(backend)))
	fmt.Fprintf(w, "Credential: set %s or add .secrets/%s\n\n", llm.CredentialEnv(backend), llm.CredentialSecret(backend))
}

func init() {
	addPipelineFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}
