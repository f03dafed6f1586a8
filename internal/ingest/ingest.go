package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Ahmedibrahim1989/agentic-bop-workflow/pkg/types"
)

// CombinedDocumentName labels the single document produced by Combine
const CombinedDocumentName = "Combined BOP Text"

// ListRigs scans the source directory for rig subdirectories containing at
// least one text document, sorted by rig name.
func ListRigs(sourceDir string) ([]types.Rig, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var rigs []types.Rig
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		docs, err := listDocuments(filepath.Join(sourceDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			continue
		}
		rigs = append(rigs, types.Rig{Name: entry.Name(), Documents: docs})
	}

	sort.Slice(rigs, func(i, j int) bool { return rigs[i].Name < rigs[j].Name })
	return rigs, nil
}

// LoadDocuments reads every document of the given rigs into a document set
// keyed "<RIG> – <DOCUMENT>"
func LoadDocuments(sourceDir string, rigs []types.Rig) (types.DocumentSet, error) {
	docs := make(types.DocumentSet)
	for _, rig := range rigs {
		for _, doc := range rig.Documents {
			path := filepath.Join(sourceDir, rig.Name, doc)
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			docs[DocumentLabel(rig.Name, doc)] = string(data)
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found under %s", sourceDir)
	}
	return docs, nil
}

// DocumentLabel builds the document-set key for one rig document
func DocumentLabel(rigName, fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.ReplaceAll(base, "_", " ")
	return fmt.Sprintf("%s – %s", strings.ToUpper(rigName), strings.ToUpper(base))
}

// Combine collapses a document set into one document with rig separators,
// in sorted label order
func Combine(docs types.DocumentSet) types.DocumentSet {
	labels := make([]string, 0, len(docs))
	for label := range docs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var b strings.Builder
	for _, label := range labels {
		fmt.Fprintf(&b, "=== RIG: %s ===\n\n%s\n\n", label, docs[label])
	}
	return types.DocumentSet{CombinedDocumentName: b.String()}
}

// listDocuments collects the text documents directly inside a rig directory
func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rig directory: %w", err)
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
			docs = append(docs, entry.Name())
		}
	}
	sort.Strings(docs)
	return docs, nil
}
