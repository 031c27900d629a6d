package plugin

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gjc14/webie/discovery"
)

// ManifestSource finds declarative plugins: plugin.yaml files inside plugin
// directories under Root. The root is re-scanned on every call.
type ManifestSource struct {
	Root       string
	Convention discovery.Convention
}

// NewManifestSource creates a ManifestSource using discovery.Default.
func NewManifestSource(root string) *ManifestSource {
	return &ManifestSource{Root: root, Convention: discovery.Default}
}

// Candidates implements Source.
func (m *ManifestSource) Candidates(ctx context.Context) ([]Candidate, error) {
	found, err := m.Convention.Manifests(m.Root)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(found))
	for _, f := range found {
		out = append(out, Candidate{
			ID:       f.ID,
			Origin:   f.File,
			Document: ManifestDocument(f.File),
		})
	}
	return out, nil
}

// ManifestDocument returns a DocumentFunc reading the manifest at path.
// Read and decode failures come back as *ImportError.
func ManifestDocument(path string) DocumentFunc {
	return func() (any, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ImportError{Path: path, Err: err}
		}
		return DecodeManifest(path, data)
	}
}

// DecodeManifest decodes a plugin.yaml document without interpreting it,
// so the schema sees the values exactly as written.
func DecodeManifest(path string, data []byte) (any, error) {
	var doc any
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty manifest")
		}
		return nil, &ImportError{Path: path, Err: err}
	}
	return doc, nil
}
