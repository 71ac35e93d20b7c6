package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alrs/upload-scripts/pkg/types"
)

type Logger struct {
	mu      sync.Mutex
	console io.Writer
	file    *os.File
	logJSON bool
	logText bool
}

func New(logFilePath string, logJSON, logText bool) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	return &Logger{
		console: os.Stdout,
		file:    file,
		logJSON: logJSON,
		logText: logText,
	}, nil
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type LogEntry struct {
	Timestamp time.Time  `json:"timestamp"`
	Level     string     `json:"level"`
	Message   string     `json:"message"`
	Source    string     `json:"source,omitempty"`
	Kind      types.Kind `json:"kind,omitempty"`
	Error     string     `json:"error,omitempty"`
}

func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Message:   msg,
	}
	l.writeEntry(entry)
}

func (l *Logger) Error(msg string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "ERROR",
		Message:   msg,
		Error:     err.Error(),
	}
	l.writeEntry(entry)
}

// LogRun records the outcome of one discovery run.
func (l *Logger) LogRun(summary types.RunSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Message: fmt.Sprintf("discovered %d of %d candidates in %s",
			summary.Discovered, summary.Candidates, summary.Source),
		Source: summary.Source,
		Kind:   summary.Kind,
	}
	l.writeEntry(entry)
}

func (l *Logger) writeEntry(entry LogEntry) {
	if l.logJSON && l.file != nil {
		data, _ := json.Marshal(entry)
		l.file.Write(data)
		l.file.Write([]byte("\n"))
	}

	if l.logText && l.file != nil {
		line := fmt.Sprintf("[%s] %s %s\n",
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.Level,
			entry.Message,
		)
		if entry.Error != "" {
			line = fmt.Sprintf("[%s] %s %s - Error: %s\n",
				entry.Timestamp.Format("2006-01-02 15:04:05"),
				entry.Level,
				entry.Message,
				entry.Error,
			)
		}
		l.file.WriteString(line)
	}
}

func (l *Logger) Summary(summary types.RunSummary) {
	fmt.Fprintln(l.console, "\n=== Discovery Summary ===")
	fmt.Fprintf(l.console, "Source:       %s\n", summary.Source)
	fmt.Fprintf(l.console, "Type:         %s\n", summary.Kind)
	fmt.Fprintf(l.console, "Candidates:   %d\n", summary.Candidates)
	fmt.Fprintf(l.console, "Discovered:   %d\n", summary.Discovered)
	fmt.Fprintf(l.console, "Dropped:      %d\n", summary.Dropped)
	fmt.Fprintf(l.console, "Duration:     %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Fprintln(l.console, "=========================")
}

func (l *Logger) Progress(current, total int, filename string) {
	fmt.Fprintf(l.console, "\r[%d/%d] %s", current, total, filename)
}
