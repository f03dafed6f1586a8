package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// OpenAI implements Backend over the OpenAI Chat Completions API
type OpenAI struct {
	apiKey string
	opts   Options
	client openai.Client
}

// NewOpenAI creates an OpenAI backend. Construction never fails; a missing
// key surfaces as ErrUnavailable on the first Generate call.
func NewOpenAI(apiKey string, opts Options) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		opts:   opts,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Name identifies the provider
func (o *OpenAI) Name() string { return "openai" }

// Model returns the configured model
func (o *OpenAI) Model() string { return o.opts.Model }

// Generate submits one chat completion request
func (o *OpenAI) Generate(ctx context.Context, system, prompt string) (*types.Generation, error) {
	if o.apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrUnavailable)
	}

	ctx, cancel := callContext(ctx, o.opts.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.opts.Temperature),
		MaxTokens:   openai.Int(int64(o.opts.MaxTokens)),
	})
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", ErrGeneration)
	}

	return &types.Generation{
		Content: resp.Choices[0].Message.Content,
		Usage: types.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Duration: duration,
	}, nil
}
