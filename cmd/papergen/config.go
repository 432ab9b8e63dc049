// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/papergen/internal/llm"
	"github.com/pdiddy/papergen/pkg/types"
)

// addPipelineFlags registers the flags shared by generate and serve.
// Unset flags fall back to the viper key of the same meaning.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("papers-dir", "", "directory of past question paper PDFs (default artifacts/question_papers)")
	cmd.Flags().String("syllabus", "", "syllabus PDF (default artifacts/College_Course_Syllabus.pdf)")
	cmd.Flags().String("threshold-file", "", "file holding the curated percentage (default artifacts/question_papers/threshold.txt)")
	cmd.Flags().StringP("output", "o", "", "result file (default output_paper_api.json)")
	cmd.Flags().String("format", "", "output format: json or yaml")
	cmd.Flags().String("backend", "", "LLM backend: groq or huggingface")
	cmd.Flags().String("model", "", "model identifier (default depends on backend)")
	cmd.Flags().String("extractor", "", "PDF text extractor: pdf or docconv")
	cmd.Flags().String("history-db", "", "SQLite file recording past runs (default artifacts/history.db)")
	cmd.Flags().Bool("no-history", false, "do not record this run")
}

// setting returns the flag value when it was set, else the viper key.
func setting(cmd *cobra.Command, flag, key string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

// pipelineConfig assembles the generation settings from flags, config
// file, environment and .secrets/.
func pipelineConfig(cmd *cobra.Command) types.GenerationConfig {
	backend := types.LLMBackend(setting(cmd, "backend", "llm.backend"))

	apiKey := viper.GetString("llm.api_key")
	if apiKey == "" {
		apiKey = os.Getenv(llm.CredentialEnv(backend))
	}
	apiKey = loadedSecrets.Get(llm.CredentialSecret(backend), apiKey)

	temperature := viper.GetFloat64("llm.temperature")

	cfg := types.GenerationConfig{
		AIConfig: types.AIConfig{
			Backend:     backend,
			Model:       setting(cmd, "model", "llm.model"),
			Endpoint:    viper.GetString("llm.endpoint"),
			APIKey:      apiKey,
			Temperature: &temperature,
			MaxTokens:   viper.GetInt("llm.max_tokens"),
		},
		PapersDir:     setting(cmd, "papers-dir", "papers_dir"),
		SyllabusPath:  setting(cmd, "syllabus", "syllabus_path"),
		ThresholdPath: setting(cmd, "threshold-file", "threshold_path"),
		OutputPath:    setting(cmd, "output", "output"),
		Format:        types.OutputFormat(setting(cmd, "format", "format")),
		Extractor:     types.ExtractorBackend(setting(cmd, "extractor", "extractor")),
		HistoryDB:     setting(cmd, "history-db", "history_db"),
	}
	if noHistory, _ := cmd.Flags().GetBool("no-history"); noHistory {
		cfg.HistoryDB = ""
	}
	return cfg
}
