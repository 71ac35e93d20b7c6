// Package manifest persists the outcome of a discovery run as JSON so the
// upload stage can consume the sequence without rescanning the directory.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/alrs/upload-scripts/pkg/types"
)

type Manifest struct {
	Source    string         `json:"source"`
	Kind      types.Kind     `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	Photos    []*types.Photo `json:"photos,omitempty"`
	Videos    []*types.Video `json:"videos,omitempty"`
}

// Build assembles a manifest from an ordered record sequence. Records keep
// their assigned indices.
func Build(source string, kind types.Kind, records []types.VisualRecord) *Manifest {
	m := &Manifest{
		Source:    source,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	for _, record := range records {
		switch r := record.(type) {
		case *types.Photo:
			m.Photos = append(m.Photos, r)
		case *types.Video:
			m.Videos = append(m.Videos, r)
		}
	}

	return m
}

// Len returns the number of records in the manifest.
func (m *Manifest) Len() int {
	return len(m.Photos) + len(m.Videos)
}

// Save writes the manifest atomically (temp file then rename).
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

// Load reads a manifest written by Save.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, err
	}

	return m, nil
}
