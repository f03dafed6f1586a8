package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/config"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// Compile-time checks: all variants satisfy Backend.
var (
	_ Backend = (*Anthropic)(nil)
	_ Backend = (*OpenAI)(nil)
	_ Backend = (*Mock)(nil)
)

func TestAnthropicMissingKeyFailsLazily(t *testing.T) {
	// Construction must succeed without credentials; the failure surfaces
	// at call time, before any network activity.
	b := NewAnthropic("", Options{Model: "claude-3-5-sonnet-20241022", MaxTokens: 16})
	assert.Equal(t, "anthropic", b.Name())

	_, err := b.Generate(context.Background(), "sys", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestOpenAIMissingKeyFailsLazily(t *testing.T) {
	b := NewOpenAI("", Options{Model: "gpt-4o", MaxTokens: 16})
	assert.Equal(t, "openai", b.Name())

	_, err := b.Generate(context.Background(), "sys", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewSelectsVariant(t *testing.T) {
	cfg := &config.Settings{
		AnthropicAPIKey: "ak",
		OpenAIAPIKey:    "ok",
		ModelAnthropic:  "claude-3-5-sonnet-20241022",
		ModelOpenAI:     "gpt-4o",
		Temperature:     0.2,
		MaxTokens:       4096,
		Timeout:         time.Minute,
	}

	b, err := New("anthropic", cfg)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", b.Name())
	assert.Equal(t, "claude-3-5-sonnet-20241022", b.Model())

	b, err = New("openai", cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", b.Name())
	assert.Equal(t, "gpt-4o", b.Model())

	b, err = New("mock", cfg)
	require.NoError(t, err)
	assert.Equal(t, "mock", b.Name())

	_, err = New("cohere", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestMockReturnsScriptedResponses(t *testing.T) {
	m := NewMock()
	m.Responses = []string{"first", "second"}
	m.Content = "fallback"

	gen, err := m.Generate(context.Background(), "sys-1", "prompt-1")
	require.NoError(t, err)
	assert.Equal(t, "first", gen.Content)
	assert.Equal(t, types.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}, gen.Usage)

	gen, err = m.Generate(context.Background(), "sys-2", "prompt-2")
	require.NoError(t, err)
	assert.Equal(t, "second", gen.Content)

	gen, err = m.Generate(context.Background(), "sys-3", "prompt-3")
	require.NoError(t, err)
	assert.Equal(t, "fallback", gen.Content)

	calls := m.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "sys-1", calls[0].System)
	assert.Equal(t, "prompt-3", calls[2].Prompt)
}

func TestMockFailsAtScriptedCall(t *testing.T) {
	boom := errors.New("rate limited")
	m := NewMock()
	m.FailAt = 2
	m.FailErr = boom

	_, err := m.Generate(context.Background(), "s", "p")
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), "s", "p")
	assert.ErrorIs(t, err, boom)

	_, err = m.Generate(context.Background(), "s", "p")
	require.NoError(t, err)
}

func TestMockHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewMock()
	_, err := m.Generate(ctx, "s", "p")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, m.Calls())
}
