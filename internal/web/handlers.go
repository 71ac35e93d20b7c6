package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/alrs/upload-scripts/internal/config"
	"github.com/alrs/upload-scripts/internal/pipeline"
	"github.com/alrs/upload-scripts/pkg/types"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type APIErrorResponse struct {
	Message string `json:"message"`
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIErrorResponse{Message: message})
}

func writeValidationError(w http.ResponseWriter, field, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(ValidationError{
		Field:   field,
		Message: message,
	})
}

type BrowseResponse struct {
	Path    string     `json:"path"`
	Entries []DirEntry `json:"entries"`
	Error   string     `json:"error,omitempty"`
}

type DirEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		homeDir, _ := os.UserHomeDir()
		path = homeDir
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeAPIError(w, http.StatusNotFound, err.Error())
			return
		}
		if errors.Is(err, os.ErrPermission) {
			writeAPIError(w, http.StatusForbidden, err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var dirEntries []DirEntry
	for _, entry := range entries {
		if entry.Name()[0] == '.' {
			continue
		}
		dirEntries = append(dirEntries, DirEntry{
			Name:  entry.Name(),
			Path:  filepath.Join(path, entry.Name()),
			IsDir: entry.IsDir(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BrowseResponse{
		Path:    path,
		Entries: dirEntries,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := config.DefaultConfig()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

var runMutex sync.Mutex

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !runMutex.TryLock() {
		writeAPIError(w, http.StatusConflict, "discovery already running")
		return
	}

	cfg := config.DefaultConfig()
	if err := json.NewDecoder(r.Body).Decode(cfg); err != nil {
		runMutex.Unlock()
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := cfg.Validate(); err != nil {
		runMutex.Unlock()
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr.Field, validationErr.Message)
			return
		}

		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "started"})

	go func() {
		defer runMutex.Unlock()
		defer func() {
			if r := recover(); r != nil {
				s.broadcastProgress(pipeline.ProgressUpdate{Type: "error", Error: fmt.Sprintf("Internal Server Error: %v", r)})
			}
		}()

		p, err := pipeline.New(cfg)
		if err != nil {
			s.broadcastProgress(pipeline.ProgressUpdate{Type: "error", Error: err.Error()})
			return
		}
		defer p.Close()

		p.SetProgressCallback(func(update pipeline.ProgressUpdate) {
			s.broadcastProgress(update)
		})

		if _, err := p.Run(); err != nil {
			s.broadcastProgress(pipeline.ProgressUpdate{Type: "error", Error: err.Error()})
		}
	}()
}

func (s *Server) broadcastJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.hub.broadcast <- data
}

func (s *Server) broadcastProgress(update pipeline.ProgressUpdate) {
	s.broadcastJSON(update)
}

// UserData-related handlers (settings, path history, run history)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	m, err := config.NewUserDataManager()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	settings, err := m.LoadSettings()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(settings)
}

func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings types.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := config.NewUserDataManager()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := m.SaveSettings(&settings); err != nil {
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr.Field, validationErr.Message)
			return
		}

		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleGetPathHistory(w http.ResponseWriter, r *http.Request) {
	m, err := config.NewUserDataManager()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	history, err := m.LoadPathHistory()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func (s *Server) handleSavePathHistory(w http.ResponseWriter, r *http.Request) {
	var history types.PathHistory
	if err := json.NewDecoder(r.Body).Decode(&history); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := config.NewUserDataManager()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := m.SavePathHistory(&history); err != nil {
		var validationErr *config.ValidationError
		if errors.As(err, &validationErr) {
			writeValidationError(w, validationErr.Field, validationErr.Message)
			return
		}

		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleGetRunHistory(w http.ResponseWriter, r *http.Request) {
	// Limit from query parameter (default 20, max 100)
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil {
			limit = parsedLimit
			if limit > 100 {
				limit = 100
			} else if limit < 1 {
				limit = 20
			}
		}
	}

	m, err := config.NewUserDataManager()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	history, err := m.LoadRunHistory()
	if err != nil {
		writeAPIError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Entries are already sorted newest first
	if len(history.Entries) > limit {
		history.Entries = history.Entries[:limit]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": s.version})
}
