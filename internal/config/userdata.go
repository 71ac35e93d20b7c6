package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alrs/upload-scripts/pkg/types"
)

// maxRunHistoryEntries bounds the persisted run history.
const maxRunHistoryEntries = 100

// maxPathHistoryEntries bounds the autocomplete path history.
const maxPathHistoryEntries = 20

// UserDataManager manages per-user data (settings, path history, run history).
type UserDataManager struct {
	dataDir string
}

// validatePath checks for potentially malicious characters in paths.
// Settings round-trip through the web UI, so reject paths carrying
// HTML/script patterns. Note: <> alone are allowed as they're valid in
// Unix filenames.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	lowerPath := strings.ToLower(path)

	htmlTagPatterns := []string{
		"<script",
		"</script",
		"<iframe",
		"<object",
		"<embed",
		"<img",
	}
	for _, pattern := range htmlTagPatterns {
		if strings.Contains(lowerPath, pattern) {
			return fmt.Errorf("path contains HTML tag pattern: %s", pattern)
		}
	}

	dangerousPatterns := []string{
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
	}
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerPath, pattern) {
			return fmt.Errorf("path contains potentially malicious pattern: %s", pattern)
		}
	}

	if len(path) > 4096 {
		return fmt.Errorf("path too long (max 4096 characters)")
	}

	return nil
}

// NewUserDataManager creates a manager rooted at the default data dir.
func NewUserDataManager() (*UserDataManager, error) {
	dataDir := DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &UserDataManager{dataDir: dataDir}, nil
}

// NewUserDataManagerAt creates a manager rooted at an explicit directory.
func NewUserDataManagerAt(dataDir string) (*UserDataManager, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &UserDataManager{dataDir: dataDir}, nil
}

// SaveSettings saves web UI settings to disk.
func (m *UserDataManager) SaveSettings(settings *types.UserSettings) error {
	if err := validatePath(settings.Source); err != nil {
		return &ValidationError{
			Field:   "source",
			Message: fmt.Sprintf("invalid source path: %v", err),
		}
	}

	settings.UpdatedAt = time.Now()
	return m.writeJSON("settings.json", settings)
}

// LoadSettings loads web UI settings, or defaults when none are saved.
func (m *UserDataManager) LoadSettings() (*types.UserSettings, error) {
	settings := &types.UserSettings{}
	cfg := DefaultConfig()
	settings.Type = cfg.Type
	settings.Jobs = cfg.Jobs
	settings.ManifestFile = cfg.ManifestFile
	settings.LogFile = cfg.LogFile

	if err := m.readJSON("settings.json", settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SavePathHistory saves the source path autocomplete history.
func (m *UserDataManager) SavePathHistory(history *types.PathHistory) error {
	for _, p := range history.Source {
		if err := validatePath(p); err != nil {
			return &ValidationError{
				Field:   "source",
				Message: fmt.Sprintf("invalid path in history: %v", err),
			}
		}
	}

	if len(history.Source) > maxPathHistoryEntries {
		history.Source = history.Source[:maxPathHistoryEntries]
	}

	history.UpdatedAt = time.Now()
	return m.writeJSON("path_history.json", history)
}

// LoadPathHistory loads the source path autocomplete history.
func (m *UserDataManager) LoadPathHistory() (*types.PathHistory, error) {
	history := &types.PathHistory{Source: []string{}}
	if err := m.readJSON("path_history.json", history); err != nil {
		return nil, err
	}
	return history, nil
}

// AddRunEntry prepends a discovery run record to the history.
func (m *UserDataManager) AddRunEntry(entry types.RunHistoryEntry) error {
	history, err := m.LoadRunHistory()
	if err != nil {
		return err
	}

	history.Entries = append([]types.RunHistoryEntry{entry}, history.Entries...)
	if len(history.Entries) > maxRunHistoryEntries {
		history.Entries = history.Entries[:maxRunHistoryEntries]
	}
	history.UpdatedAt = time.Now()

	return m.writeJSON("run_history.json", history)
}

// LoadRunHistory loads past discovery runs, newest first.
func (m *UserDataManager) LoadRunHistory() (*types.RunHistory, error) {
	history := &types.RunHistory{Entries: []types.RunHistoryEntry{}}
	if err := m.readJSON("run_history.json", history); err != nil {
		return nil, err
	}
	return history, nil
}

func (m *UserDataManager) writeJSON(name string, v interface{}) error {
	filename := filepath.Join(m.dataDir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	// Atomic write: write to temp file then rename
	tmpFile := filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmpFile, filename); err != nil {
		os.Remove(tmpFile)
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}

	return nil
}

func (m *UserDataManager) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(m.dataDir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
