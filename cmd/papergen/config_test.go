package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/papergen/pkg/types"
)

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	addPipelineFlags(cmd)
	return cmd
}

func TestPipelineConfig_Defaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg := pipelineConfig(newFlagCmd())

	assert.Equal(t, types.BackendGroq, cfg.Backend)
	assert.Equal(t, "artifacts/question_papers", cfg.PapersDir)
	assert.Equal(t, "artifacts/College_Course_Syllabus.pdf", cfg.SyllabusPath)
	assert.Equal(t, "artifacts/question_papers/threshold.txt", cfg.ThresholdPath)
	assert.Equal(t, "output_paper_api.json", cfg.OutputPath)
	assert.Equal(t, types.OutputJSON, cfg.Format)
	assert.Equal(t, types.ExtractorPDF, cfg.Extractor)
	assert.Equal(t, "artifacts/history.db", cfg.HistoryDB)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, 0.5, *cfg.Temperature)
}

func TestPipelineConfig_ZeroTemperatureIsKept(t *testing.T) {
	viper.Set("llm.temperature", 0.0)
	t.Cleanup(func() { viper.Set("llm.temperature", 0.5) })

	cfg := pipelineConfig(newFlagCmd())
	require.NotNil(t, cfg.Temperature)
	assert.Zero(t, *cfg.Temperature)
}

func TestPipelineConfig_FlagsOverride(t *testing.T) {
	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("papers-dir", "exams"))
	require.NoError(t, cmd.Flags().Set("output", "out/paper.yaml"))
	require.NoError(t, cmd.Flags().Set("format", "yaml"))
	require.NoError(t, cmd.Flags().Set("no-history", "true"))

	cfg := pipelineConfig(cmd)

	assert.Equal(t, "exams", cfg.PapersDir)
	assert.Equal(t, "out/paper.yaml", cfg.OutputPath)
	assert.Equal(t, types.OutputYAML, cfg.Format)
	assert.Empty(t, cfg.HistoryDB)
}

func TestPipelineConfig_CredentialSources(t *testing.T) {
	loadedSecrets = map[string]string{"groq-api-key": "gsk_from_secrets", "hf-api-key": "hf_from_secrets"}
	t.Cleanup(func() { loadedSecrets = nil })

	t.Setenv("GROQ_API_KEY", "gsk_from_env")
	cfg := pipelineConfig(newFlagCmd())
	assert.Equal(t, "gsk_from_env", cfg.APIKey, "environment wins over .secrets/")

	t.Setenv("GROQ_API_KEY", "")
	cfg = pipelineConfig(newFlagCmd())
	assert.Equal(t, "gsk_from_secrets", cfg.APIKey)

	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("backend", "huggingface"))
	t.Setenv("HF_API_KEY", "")
	cfg = pipelineConfig(cmd)
	assert.Equal(t, types.BackendHuggingFace, cfg.Backend)
	assert.Equal(t, "hf_from_secrets", cfg.APIKey)
}

func TestNewPipeline_RejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		cfg    types.GenerationConfig
		errMsg string
	}{
		{"extractor", types.GenerationConfig{Extractor: "ocr"}, "unknown extractor"},
		{"format", types.GenerationConfig{Format: "csv"}, "unknown output format"},
		{"backend", types.GenerationConfig{AIConfig: types.AIConfig{Backend: "openai"}}, "unknown LLM backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newPipeline(tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
