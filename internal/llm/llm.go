// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm sends the generation prompt to a hosted text-generation API
// and returns the raw generated text. Two interchangeable backends exist:
// an OpenAI-compatible chat-completion endpoint (Groq) and a plain
// inference endpoint (Hugging Face).
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/papergen/pkg/types"
)

// ErrMissingCredential is returned before any network I/O when the
// selected backend has no API key.
var ErrMissingCredential = errors.New("missing API credential")

// defaultTemperature matches the sampling used for every backend.
const defaultTemperature = 0.5

// Backend generates text for one prompt.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New returns the backend selected by cfg.Backend. Empty selects Groq.
// The returned backend uses http.DefaultClient.
func New(cfg types.AIConfig) (Backend, error) {
	return NewWithClient(cfg, nil)
}

// NewWithClient is New with an explicit HTTP client.
func NewWithClient(cfg types.AIConfig, client *http.Client) (Backend, error) {
	temp := defaultTemperature
	if cfg.Temperature != nil {
		temp = *cfg.Temperature
	}

	switch cfg.Backend {
	case "", types.BackendGroq:
		b := &ChatBackend{
			APIKey:      cfg.APIKey,
			Model:       orDefault(cfg.Model, DefaultChatModel),
			Endpoint:    orDefault(cfg.Endpoint, DefaultChatEndpoint),
			Temperature: temp,
			MaxTokens:   cfg.MaxTokens,
			Client:      client,
		}
		if b.MaxTokens <= 0 {
			b.MaxTokens = defaultChatMaxTokens
		}
		return b, nil
	case types.BackendHuggingFace:
		model := orDefault(cfg.Model, DefaultInferenceModel)
		b := &InferenceBackend{
			APIKey:       cfg.APIKey,
			Model:        model,
			Endpoint:     orDefault(cfg.Endpoint, inferenceBaseURL+model),
			Temperature:  temp,
			MaxNewTokens: cfg.MaxTokens,
			Client:       client,
		}
		if b.MaxNewTokens <= 0 {
			b.MaxNewTokens = defaultInferenceMaxTokens
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q (want groq or huggingface)", cfg.Backend)
	}
}

// CredentialEnv names the environment variable holding the key for backend.
func CredentialEnv(backend types.LLMBackend) string {
	if backend == types.BackendHuggingFace {
		return "HF_API_KEY"
	}
	return "GROQ_API_KEY"
}

// CredentialSecret names the .secrets/ file holding the key for backend.
func CredentialSecret(backend types.LLMBackend) string {
	if backend == types.BackendHuggingFace {
		return "hf-api-key"
	}
	return "groq-api-key"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
