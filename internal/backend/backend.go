package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/config"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// ErrUnavailable is returned when a backend is called without the
// credentials it needs. It is checked lazily at call time so a pipeline can
// be constructed without committing to a backend.
var ErrUnavailable = errors.New("backend unavailable")

// ErrGeneration wraps provider-side failures (network, rate limit,
// malformed response, timeout). The backend never retries; retry policy
// belongs to the caller.
var ErrGeneration = errors.New("generation failed")

// Backend is a single text-generation call against one provider. Instances
// hold no per-call state and may be shared across stages and concurrent runs.
type Backend interface {
	// Name identifies the provider for metadata and summaries
	Name() string

	// Model returns the model the backend was configured with
	Model() string

	// Generate submits a system instruction and user payload and returns
	// the generated text with usage metadata
	Generate(ctx context.Context, system, prompt string) (*types.Generation, error)
}

// Options configure a backend variant at construction time. Selection is
// per run, not per stage.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // bound on a single call; zero means no bound
}

// New selects a backend variant by name using the loaded settings
func New(name string, cfg *config.Settings) (Backend, error) {
	opts := Options{
		Model:       cfg.Model(name),
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	}
	switch name {
	case "anthropic":
		return NewAnthropic(cfg.AnthropicAPIKey, opts), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, opts), nil
	case "mock":
		return NewMock(), nil
	}
	return nil, fmt.Errorf("unknown backend: %q", name)
}

// callContext applies the per-call timeout when one is configured
func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
