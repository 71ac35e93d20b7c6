package log

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alrs/upload-scripts/pkg/types"
)

func TestLogger_InfoWritesTextLine(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "osc.log")

	l, err := New(logPath, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Info("hello")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "INFO hello") {
		t.Fatalf("unexpected log content: %s", string(data))
	}
}

func TestLogger_ErrorIncludesErrorMessage(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "osc.log")

	l, err := New(logPath, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.Error("discovery failed", errors.New("boom"))
	l.Close()

	data, _ := os.ReadFile(logPath)
	if !strings.Contains(string(data), "Error: boom") {
		t.Fatalf("unexpected log content: %s", string(data))
	}
}

func TestLogger_JSONMode(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "osc.log")

	l, err := New(logPath, true, false)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l.LogRun(types.RunSummary{
		Source:     "/data",
		Kind:       types.KindPhoto,
		Candidates: 5,
		Discovered: 3,
	})
	l.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("unexpected level: %s", entry.Level)
	}
	if entry.Kind != types.KindPhoto {
		t.Errorf("unexpected kind: %s", entry.Kind)
	}
	if !strings.Contains(entry.Message, "discovered 3 of 5") {
		t.Errorf("unexpected message: %s", entry.Message)
	}
}

func TestNew_CreatesLogDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "a", "b", "osc.log")

	l, err := New(logPath, false, true)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("log file not created: %v", err)
	}
}
