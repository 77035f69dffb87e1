// Package engine wraps the LLM providers behind a single per-file code
// analysis call. Requests are throttled process-wide because the engine is a
// rate-limited, cost-metered dependency.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"golang.org/x/time/rate"
)

const (
	analysisTemperature = 0.1
	analysisMaxTokens   = 2000
)

// Options selects and configures the underlying LLM provider.
type Options struct {
	Provider          string
	APIKey            string
	Model             string
	BaseURL           string
	RequestsPerSecond float64
}

// Client is an analysis engine backed by one LLM provider.
type Client struct {
	llm     llms.Model
	model   string
	limiter *rate.Limiter
}

// New creates an engine client for the configured provider.
func New(ctx context.Context, opts Options) (*Client, error) {
	var model llms.Model
	var err error

	log.Debug().
		Str("provider", opts.Provider).
		Str("model", opts.Model).
		Msg("Creating analysis engine")

	switch opts.Provider {
	case "openai":
		llmOpts := []openai.Option{openai.WithToken(opts.APIKey)}
		if opts.Model != "" {
			llmOpts = append(llmOpts, openai.WithModel(opts.Model))
		}
		if opts.BaseURL != "" {
			llmOpts = append(llmOpts, openai.WithBaseURL(opts.BaseURL))
		}
		model, err = openai.New(llmOpts...)
	case "anthropic":
		llmOpts := []anthropic.Option{anthropic.WithToken(opts.APIKey)}
		if opts.Model != "" {
			llmOpts = append(llmOpts, anthropic.WithModel(opts.Model))
		}
		model, err = anthropic.New(llmOpts...)
	case "googleai", "gemini":
		llmOpts := []googleai.Option{googleai.WithAPIKey(opts.APIKey)}
		if opts.Model != "" {
			llmOpts = append(llmOpts, googleai.WithDefaultModel(opts.Model))
		}
		model, err = googleai.New(ctx, llmOpts...)
	case "ollama":
		llmOpts := []ollama.Option{}
		if opts.Model != "" {
			llmOpts = append(llmOpts, ollama.WithModel(opts.Model))
		}
		if opts.BaseURL != "" {
			llmOpts = append(llmOpts, ollama.WithServerURL(opts.BaseURL))
		}
		model, err = ollama.New(llmOpts...)
	default:
		return nil, fmt.Errorf("unsupported engine provider: %s", opts.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create model for provider %s: %w", opts.Provider, err)
	}

	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		llm:     model,
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// AnalyzeCode submits one file's content for review and returns the raw
// engine response text. The caller owns parsing.
func (c *Client) AnalyzeCode(ctx context.Context, code, filename string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	log.Debug().
		Str("filename", filename).
		Int("code_bytes", len(code)).
		Msg("Sending code analysis request to engine")

	response, err := llms.GenerateFromSinglePrompt(ctx, c.llm, BuildReviewPrompt(code, filename),
		llms.WithTemperature(analysisTemperature),
		llms.WithMaxTokens(analysisMaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("engine call failed: %w", err)
	}

	log.Info().
		Str("filename", filename).
		Int("response_bytes", len(response)).
		Msg("Code analysis response received")
	return response, nil
}
