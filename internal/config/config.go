package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/alrs/upload-scripts/pkg/types"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Source is the directory holding the sequence to discover.
	Source string `yaml:"source" json:"source"`
	// Type selects photo or video discovery.
	Type types.Kind `yaml:"type" json:"type"`
	// RequireGPS switches photo discovery to the GPS-validated policy:
	// records are ordered by GPS timestamp and files without a full GPS
	// fix are dropped.
	RequireGPS   bool   `yaml:"require_gps" json:"require_gps"`
	Jobs         int    `yaml:"jobs" json:"jobs"`
	ManifestFile string `yaml:"manifest_file" json:"manifest_file"`
	LogFile      string `yaml:"log_file" json:"log_file"`
	LogJSON      bool   `yaml:"log_json" json:"log_json"`
}

// DataDir is the per-user directory for logs, manifests and settings.
func DataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".osc-tools")
}

func DefaultConfig() *Config {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 4
	}

	dataDir := DataDir()

	return &Config{
		Type:         types.KindPhoto,
		RequireGPS:   false,
		Jobs:         jobs,
		ManifestFile: filepath.Join(dataDir, "manifest.json"),
		LogFile:      filepath.Join(dataDir, "osc-tools.log"),
		LogJSON:      false,
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return &ValidationError{Field: "source", Message: "source path is required"}
	}
	if c.Type != types.KindPhoto && c.Type != types.KindVideo {
		return &ValidationError{Field: "type", Message: "type must be photo or video"}
	}
	if c.RequireGPS && c.Type == types.KindVideo {
		return &ValidationError{Field: "require_gps", Message: "GPS validation only applies to photo discovery"}
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}

	dataDir := DataDir()
	if c.LogFile == "" {
		c.LogFile = filepath.Join(dataDir, "osc-tools.log")
	}
	if c.ManifestFile == "" {
		c.ManifestFile = filepath.Join(dataDir, "manifest.json")
	}

	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
