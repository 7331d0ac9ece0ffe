package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ManifestName is the file written at the root of the output directory.
const ManifestName = "manifest.json"

// Manifest records what one batch run produced.
type Manifest struct {
	RunID         string          `json:"run_id"`
	Generated     time.Time       `json:"generated"`
	FormatVersion string          `json:"format_version"`
	Entries       []ManifestEntry `json:"entries"`
}

// ManifestEntry represents one source model in the manifest.
// Paths are relative to the input and output directories, slash separated.
type ManifestEntry struct {
	Source     string `json:"source"`
	Hash       string `json:"hash"`
	Output     string `json:"output,omitempty"`
	Preview    string `json:"preview,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Bones      int    `json:"bones"`
	Cubes      int    `json:"cubes"`
	Error      string `json:"error,omitempty"`
}

// ContentHash returns the hex xxhash64 of a source file's bytes.
func ContentHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// LoadManifest reads a previous manifest. A missing file yields an empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("batch: read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("batch: parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Lookup returns the entry for a source path.
func (m *Manifest) Lookup(source string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.Source == source {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// WriteManifest writes m to path as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest %s: %w", path, err)
	}
	return nil
}
