package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// Anthropic implements Backend over the Anthropic Messages API
type Anthropic struct {
	apiKey string
	opts   Options
	client anthropic.Client
}

// NewAnthropic creates an Anthropic backend. Construction never fails;
// a missing key surfaces as ErrUnavailable on the first Generate call.
func NewAnthropic(apiKey string, opts Options) *Anthropic {
	return &Anthropic{
		apiKey: apiKey,
		opts:   opts,
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Name identifies the provider
func (a *Anthropic) Name() string { return "anthropic" }

// Model returns the configured model
func (a *Anthropic) Model() string { return a.opts.Model }

// Generate submits one messages request and collects the text blocks
func (a *Anthropic) Generate(ctx context.Context, system, prompt string) (*types.Generation, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrUnavailable)
	}

	ctx, cancel := callContext(ctx, a.opts.Timeout)
	defer cancel()

	start := time.Now()
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.opts.Model),
		MaxTokens:   int64(a.opts.MaxTokens),
		Temperature: anthropic.Float(a.opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: %w", ErrGeneration, err)
	}

	var parts []string
	for _, block := range msg.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}

	input := int(msg.Usage.InputTokens)
	output := int(msg.Usage.OutputTokens)
	return &types.Generation{
		Content: strings.Join(parts, "\n"),
		Usage: types.Usage{
			PromptTokens:     input,
			CompletionTokens: output,
			TotalTokens:      input + output,
		},
		Duration: duration,
	}, nil
}
