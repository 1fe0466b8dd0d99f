// Package gemini adapts the Gemini API client to single-turn text prompts.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// ErrNoCandidates is returned when the model produced no usable text.
var ErrNoCandidates = errors.New("gemini: no candidates in response")

const apiVersion = "v1beta"

// Config configures a Client. An empty BaseURL uses the public endpoint.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client sends single-turn prompts to a Gemini model. It is safe for
// concurrent use.
type Client struct {
	models  *genai.Models
	model   string
	timeout time.Duration
}

// New creates a Client for cfg.Model.
func New(ctx context.Context, cfg Config) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &Client{models: gc.Models, model: cfg.Model, timeout: cfg.Timeout}, nil
}

// Generate sends prompt and returns the text of the first candidate.
// Upstream failures are returned as genai.APIError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	text := resp.Text()
	if text == "" {
		return "", ErrNoCandidates
	}
	return text, nil
}
