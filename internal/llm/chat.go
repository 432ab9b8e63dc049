// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/papergen/internal/httputil"
	"github.com/pdiddy/papergen/internal/prompt"
)

const (
	// DefaultChatEndpoint is Groq's OpenAI-compatible completion URL.
	DefaultChatEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	// DefaultChatModel is the Groq model used when none is configured.
	DefaultChatModel = "meta-llama/llama-4-scout-17b-16e-instruct"

	defaultChatMaxTokens = 6000
)

// ChatBackend calls a chat-completion style API with a system and a user
// message.
type ChatBackend struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float64
	MaxTokens   int
	Client      *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements Backend.
func (c *ChatBackend) Generate(ctx context.Context, userPrompt string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("%w: GROQ_API_KEY not set, get a free key at https://console.groq.com", ErrMissingCredential)
	}

	reqBody := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.SystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}

	data, err := httputil.PostJSON(ctx, c.Client, c.Endpoint, c.APIKey, reqBody)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
