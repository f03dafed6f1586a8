package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// writeSourceTree lays out a source directory with rig subdirectories
func writeSourceTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestListRigs(t *testing.T) {
	root := writeSourceTree(t, map[string]string{
		"rig_b/running_procedure.txt": "b text",
		"rig_b/notes.md":              "b notes",
		"rig_b/diagram.pdf":           "binary",
		"rig_a/running_procedure.txt": "a text",
		"empty_rig/.gitkeep":          "",
	})
	// a top-level stray file must be ignored
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0o644))

	rigs, err := ListRigs(root)
	require.NoError(t, err)

	require.Len(t, rigs, 2)
	assert.Equal(t, "rig_a", rigs[0].Name)
	assert.Equal(t, []string{"running_procedure.txt"}, rigs[0].Documents)
	assert.Equal(t, "rig_b", rigs[1].Name)
	assert.Equal(t, []string{"notes.md", "running_procedure.txt"}, rigs[1].Documents)
}

func TestListRigsMissingDirectory(t *testing.T) {
	_, err := ListRigs(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading source directory")
}

func TestDocumentLabel(t *testing.T) {
	assert.Equal(t, "RIGA – DOC1", DocumentLabel("riga", "doc1.txt"))
	assert.Equal(t, "RIG B – RUNNING PROCEDURE", DocumentLabel("rig b", "running_procedure.md"))
}

func TestLoadDocuments(t *testing.T) {
	root := writeSourceTree(t, map[string]string{
		"riga/doc1.txt": "rig a contents",
		"rigb/doc2.txt": "rig b contents",
	})

	rigs, err := ListRigs(root)
	require.NoError(t, err)

	docs, err := LoadDocuments(root, rigs)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "rig a contents", docs["RIGA – DOC1"])
	assert.Equal(t, "rig b contents", docs["RIGB – DOC2"])
}

func TestLoadDocumentsEmpty(t *testing.T) {
	_, err := LoadDocuments(t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents found")
}

func TestCombine(t *testing.T) {
	docs := types.DocumentSet{
		"RIGB – DOC": "b text",
		"RIGA – DOC": "a text",
	}

	combined := Combine(docs)

	require.Len(t, combined, 1)
	text, ok := combined[CombinedDocumentName]
	require.True(t, ok)

	// Separators present, sorted by label
	aIdx := strings.Index(text, "=== RIG: RIGA – DOC ===")
	bIdx := strings.Index(text, "=== RIG: RIGB – DOC ===")
	require.GreaterOrEqual(t, aIdx, 0)
	require.Greater(t, bIdx, aIdx)
	assert.Contains(t, text, "a text")
	assert.Contains(t, text, "b text")
}
