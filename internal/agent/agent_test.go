package agent

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/internal/backend"
	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

func testPrompts(system, user string) fstest.MapFS {
	return fstest.MapFS{
		"system.md": &fstest.MapFile{Data: []byte(system)},
		"user.md":   &fstest.MapFile{Data: []byte(user)},
	}
}

func TestExecuteRendersDocumentsSorted(t *testing.T) {
	prompts := testPrompts(
		"analyst for {{.Operation}}",
		"{{range .Documents}}[{{.Name}}]{{end}}",
	)
	a, err := New("comparison", "", prompts, "system.md", "user.md")
	require.NoError(t, err)

	m := backend.NewMock()
	docs := types.DocumentSet{"ZULU – ROP": "z", "ALPHA – ROP": "a"}

	res, err := a.Execute(context.Background(), m, "BOP Installation", docs, types.NewOutputs())
	require.NoError(t, err)
	assert.Equal(t, "comparison", res.Name)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "analyst for BOP Installation", calls[0].System)
	assert.Equal(t, "[ALPHA – ROP][ZULU – ROP]", calls[0].Prompt)
}

func TestExecuteRendersPreviousOutputsInOrder(t *testing.T) {
	prompts := testPrompts(
		"sys",
		"{{range .Previous}}<<{{.Name}}:{{.Content}}>>{{end}}",
	)
	a, err := New("gaps", "", prompts, "system.md", "user.md")
	require.NoError(t, err)

	prev := types.NewOutputs()
	require.NoError(t, prev.Append("comparison", "cmp-out"))
	require.NoError(t, prev.Append("hp_evaluation", "hp-out"))

	m := backend.NewMock()
	_, err = a.Execute(context.Background(), m, "op", types.DocumentSet{"d": "x"}, prev)
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "<<comparison:cmp-out>><<hp_evaluation:hp-out>>", calls[0].Prompt)
}

func TestExecuteTruncatesLongDocumentsInPromptOnly(t *testing.T) {
	prompts := testPrompts("sys", "{{range .Documents}}{{.Text}}{{end}}")
	a, err := New("comparison", "", prompts, "system.md", "user.md")
	require.NoError(t, err)

	long := strings.Repeat("x", maxDocChars+500)
	m := backend.NewMock()
	_, err = a.Execute(context.Background(), m, "op", types.DocumentSet{"d": long}, types.NewOutputs())
	require.NoError(t, err)

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0].Prompt, maxDocChars+3) // truncated + ellipsis
	assert.True(t, strings.HasSuffix(calls[0].Prompt, "..."))
}

func TestExecuteRecordsBackendMetadata(t *testing.T) {
	prompts := testPrompts("sys", "user")
	a, err := New("comparison", "", prompts, "system.md", "user.md")
	require.NoError(t, err)

	m := backend.NewMock()
	m.Ident = "stub-a"
	m.ModelName = "stub-model"
	m.Content = "analysis"

	res, err := a.Execute(context.Background(), m, "op", types.DocumentSet{"d": "x"}, types.NewOutputs())
	require.NoError(t, err)

	assert.Equal(t, "analysis", res.Content)
	assert.Equal(t, "comparison", res.Meta.Name)
	assert.Equal(t, "stub-a", res.Meta.Backend)
	assert.Equal(t, "stub-model", res.Meta.Model)
	assert.Equal(t, 15, res.Meta.Usage.TotalTokens)
	assert.False(t, res.Meta.Timestamp.IsZero())
}

func TestExecutePropagatesBackendErrorUnchanged(t *testing.T) {
	prompts := testPrompts("sys", "user")
	a, err := New("comparison", "", prompts, "system.md", "user.md")
	require.NoError(t, err)

	m := backend.NewMock()
	m.Err = backend.ErrUnavailable

	_, err = a.Execute(context.Background(), m, "op", types.DocumentSet{"d": "x"}, types.NewOutputs())
	assert.ErrorIs(t, err, backend.ErrUnavailable)
}

func TestNewRejectsMissingTemplate(t *testing.T) {
	prompts := testPrompts("sys", "user")
	_, err := New("comparison", "", prompts, "missing.md", "user.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading prompt template")
}

func TestBuiltinAgentsLoadFromEmbeddedPrompts(t *testing.T) {
	agents, err := Builtin(DefaultPrompts())
	require.NoError(t, err)
	require.Len(t, agents, 5)

	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	assert.Equal(t, []string{
		"comparison",
		"gaps",
		"hp_evaluation",
		"equipment_validation",
		"standardisation",
	}, names)
}

func TestBuiltinPromptsRender(t *testing.T) {
	// Every embedded template must render against a realistic data set.
	agents, err := Builtin(DefaultPrompts())
	require.NoError(t, err)

	prev := types.NewOutputs()
	m := backend.NewMock()
	docs := types.DocumentSet{"DANA – BOP INSTALLATION ROP": "procedure text"}

	for _, a := range agents {
		res, err := a.Execute(context.Background(), m, "BOP Installation", docs, prev)
		require.NoError(t, err, "stage %s", a.Name)
		require.NoError(t, prev.Append(res.Name, res.Content))
	}
	assert.Len(t, m.Calls(), 5)
}
