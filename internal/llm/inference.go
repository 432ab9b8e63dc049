// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/papergen/internal/httputil"
)

const (
	// DefaultInferenceModel is the Hugging Face model used when none is configured.
	DefaultInferenceModel = "Qwen/Qwen2.5-72B-Instruct"

	inferenceBaseURL          = "https://api-inference.huggingface.co/models/"
	defaultInferenceMaxTokens = 4000
)

// InferenceBackend calls a plain text-generation inference API that takes
// the prompt as "inputs" and returns a list of generations.
type InferenceBackend struct {
	APIKey       string
	Model        string
	Endpoint     string
	Temperature  float64
	MaxNewTokens int
	Client       *http.Client
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
}

type inferenceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type inferenceGeneration struct {
	GeneratedText string `json:"generated_text"`
}

// Generate implements Backend.
func (b *InferenceBackend) Generate(ctx context.Context, prompt string) (string, error) {
	if b.APIKey == "" {
		return "", fmt.Errorf("%w: HF_API_KEY not set, get a free key at https://huggingface.co/settings/tokens", ErrMissingCredential)
	}

	reqBody := inferenceRequest{
		Inputs: prompt,
		Parameters: inferenceParameters{
			MaxNewTokens:   b.MaxNewTokens,
			Temperature:    b.Temperature,
			ReturnFullText: false,
		},
	}

	data, err := httputil.PostJSON(ctx, b.Client, b.Endpoint, b.APIKey, reqBody)
	if err != nil {
		return "", err
	}

	var gens []inferenceGeneration
	if err := json.Unmarshal(data, &gens); err != nil {
		return "", fmt.Errorf("decoding inference response: %w", err)
	}
	if len(gens) == 0 {
		return "", fmt.Errorf("inference API returned no generations")
	}
	return gens[0].GeneratedText, nil
}
