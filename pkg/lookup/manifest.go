package lookup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/fipsref/internal/atomicfile"
	"github.com/agentstation/fipsref/pkg/constants"
	"github.com/agentstation/fipsref/pkg/errors"
)

// Manifest is the audit record of one build. Fields are declared in
// alphabetical JSON order so the encoded keys are sorted at every level.
type Manifest struct {
	Inputs []Input `json:"inputs" yaml:"inputs"`
	Output Output  `json:"output" yaml:"output"`
	Source Source  `json:"source" yaml:"source"`
}

// Input describes one fetched source file.
type Input struct {
	Path   string `json:"path" yaml:"path"`
	SHA256 string `json:"sha256" yaml:"sha256"`
	URL    string `json:"url" yaml:"url"`
}

// Output describes the written lookup table.
type Output struct {
	Path     string `json:"path" yaml:"path"`
	RowCount int    `json:"row_count" yaml:"row_count"`
	SHA256   string `json:"sha256" yaml:"sha256"`
}

// Source identifies the reference release.
type Source struct {
	Type string `json:"type" yaml:"type"`
	Year int    `json:"year" yaml:"year"`
}

// ManifestPath derives the manifest location from the lookup table path by
// replacing its extension.
func ManifestPath(out string) string {
	return strings.TrimSuffix(out, filepath.Ext(out)) + constants.ManifestSuffix
}

// WriteManifest atomically writes m as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.WrapResource("encode", "manifest", path, err)
	}
	return atomicfile.WriteBytes(path, data)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &m, nil
}

// SHA256File hashes a file in 1 MiB chunks.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, 1<<20)); err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
