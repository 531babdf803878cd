/*
Package decision provides the LLM-backed concert decider.

PURPOSE:
  Implements pricing.Decider over an OpenAI-compatible chat-completions API
  (OpenRouter by default). The model is asked to answer with exactly one
  token: a concert name or the word "Wait".

CONTRACT:
  This is a replaceable capability. It can fail, time out, or answer
  garbage; pricing.Engine.Decide handles every such outcome with the local
  deterministic fallback, so nothing here is load-bearing for correctness.
  Each call runs under an explicit timeout.

CONFIGURATION:
  API key, base URL, model, and timeout come from the environment (see
  cmd/server). A client without an API key reports itself disabled and
  returns pricing.ErrDeciderUnavailable, which triggers the fallback.

SEE ALSO:
  - pricing/resolver.go: Fallback handling and answer mapping
*/
package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/warp/ticket-engine/pricing"
)

// Defaults for the OpenRouter-compatible endpoint.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "openai/gpt-oss-20b:free"
	DefaultTimeout = 10 * time.Second

	maxTokens   = 512
	temperature = 0.5
)

const systemPrompt = "You are an assistant that chooses exactly one concert artist " +
	"from the available list. Output only the artist name or the single word 'Wait' " +
	"(without quotes)."

// Config holds decider settings.
type Config struct {
	APIKey  string
	BaseURL string        // empty -> DefaultBaseURL
	Model   string        // empty -> DefaultModel
	Timeout time.Duration // zero -> DefaultTimeout
}

// Client asks a chat-completions model which concert to buy.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// Compile-time check that Client implements pricing.Decider.
var _ pricing.Decider = (*Client)(nil)

// NewClient creates a decider from the given config. Returns nil if the API
// key is empty (decider disabled; callers fall back to the local heuristic).
func NewClient(cfg Config) *Client {
	if cfg.APIKey == "" {
		return nil
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Enabled reports whether the decider is configured.
func (c *Client) Enabled() bool { return c != nil }

// Decide asks the model to pick a concert (or "Wait") given the prompt and
// the current engine state. The raw model answer is returned; mapping it to
// a known concert is the resolver's job.
func (c *Client) Decide(ctx context.Context, prompt string, state pricing.StateView, available []pricing.ConcertName) (string, error) {
	if c == nil {
		return "", pricing.ErrDeciderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	names := make([]string, len(available))
	for i, n := range available {
		names[i] = string(n)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(prompt, state, names)},
		},
	})
	if err != nil {
		log.Printf("[Decision] chat completion failed: %v", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// userMessage assembles the decision prompt: user intent, a JSON snapshot of
// the current state, the available artists, and the single-token rules.
func userMessage(prompt string, state pricing.StateView, names []string) string {
	stateJSON := marshalState(state)

	return fmt.Sprintf(
		"User prompt: %s\n\n"+
			"Current state (JSON):\n%s\n\n"+
			"Available artists: %s\n\n"+
			"Rules:\n"+
			"- If user explicitly mentions an artist, pick that artist.\n"+
			"- If user says 'cheapest' choose the cheapest available today.\n"+
			"- If user says 'costliest' choose the costliest available today.\n"+
			"- If user says 'wait' or similar, respond 'Wait'.\n"+
			"- Output EXACTLY one token: artist name or 'Wait'.",
		prompt, stateJSON, strings.Join(names, ", "),
	)
}

func marshalState(state pricing.StateView) string {
	prices := make(map[string]float64, len(state.Concerts))
	remaining := make(map[string]int, len(state.Concerts))
	preference := make(map[string]int, len(state.Concerts))
	for name, cs := range state.Concerts {
		f, _ := cs.LatestPrice.Float64()
		prices[string(name)] = f
		remaining[string(name)] = cs.Remaining
		preference[string(name)] = cs.Preference
	}

	out, err := json.Marshal(map[string]any{
		"prices":     prices,
		"remaining":  remaining,
		"preference": preference,
		"date":       state.Date.String(),
	})
	if err != nil {
		return "{}"
	}
	return string(out)
}
