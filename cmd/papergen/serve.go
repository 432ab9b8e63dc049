package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/papergen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload and generate endpoints over HTTP",
	Long: `Serve exposes three endpoints:

  POST /upload-question-paper  multipart "question_papers" PDFs and "threshold"
  POST /generate               run the pipeline and return the result JSON
  GET  /health                 liveness check

Uploaded papers go to the papers directory and the threshold to the
threshold file, so a later generate run picks them up.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	cfg := pipelineConfig(cmd)

	p, cleanup, err := newPipeline(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &server.Server{
		PapersDir:     cfg.PapersDir,
		ThresholdPath: cfg.ThresholdPath,
		Run:           p.Save,
		Log:           logger,
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", addr)
	logger.Info("serving", zap.String("addr", addr), zap.String("papers_dir", cfg.PapersDir))
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving on %s: %w", addr, err)
	}
	return nil
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "listen address")
	addPipelineFlags(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
