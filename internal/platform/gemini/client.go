package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/jpcarmona/atenea/internal/config"
)

// GeminiClient implements the ai.Client interface using Google's Gemini API.
type GeminiClient struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// NewGeminiClient creates a GeminiClient from the LLM configuration.
func NewGeminiClient(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*GeminiClient, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrInvalidConfig, err)
	}

	return &GeminiClient{
		logger: logger.With("component", "gemini_client"),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Generate sends the prompt in JSON mode and returns the model's answer.
// The caller is responsible for parsing the JSON.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	return g.callWithRetry(ctx, prompt, genCfg)
}

// Classify sends the prompt expecting a short plain-text answer, typically a
// single domain word. Deterministic settings keep routing stable.
func (g *GeminiClient) Classify(ctx context.Context, prompt string) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 10,
	}
	text, err := g.callWithRetry(ctx, prompt, genCfg)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// callWithRetry makes a call to the Gemini API with exponential backoff.
//
// Transient API errors are retried up to config.MaxRetries times with
// jittered exponential backoff. Permanent errors, such as content blocked by
// safety filters or an empty answer, are returned immediately.
func (g *GeminiClient) callWithRetry(
	ctx context.Context,
	prompt string,
	genCfg *genai.GenerateContentConfig,
) (string, error) {
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	maxRetries := g.config.MaxRetries
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 1
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.DebugContext(ctx, "calling gemini API",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1,
			"prompt_length", len(prompt))

		text, err := g.callOnce(ctx, prompt, genCfg)
		if err == nil {
			g.logger.DebugContext(ctx, "gemini API call successful", "attempt", attemptNum)
			return text, nil
		}

		g.logger.ErrorContext(ctx, "gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if errors.Is(err, ErrContentBlocked) || errors.Is(err, ErrEmptyResponse) {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				ErrTransientFailure, maxRetries, err)
		}

		// delay = baseDelay * (2^attempt) * (0.5 + rand(0, 0.5))
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		jitterFactor := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoffSeconds * jitterFactor * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying gemini API call after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			g.logger.WarnContext(ctx, "gemini API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single GenerateContent call and extracts the text.
func (g *GeminiClient) callOnce(
	ctx context.Context,
	prompt string,
	genCfg *genai.GenerateContentConfig,
) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", err
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", ErrContentBlocked
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrEmptyResponse)
	}
	return text, nil
}
