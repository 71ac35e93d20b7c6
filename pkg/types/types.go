// Package types defines core data structures shared across upload-scripts modules.
package types

import (
	"time"
)

// Kind tags a discovery result with the concrete record type it contains.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// VisualRecord is a discovered media file with its position in the sequence.
// All records returned by one discovery call share the same concrete type.
type VisualRecord interface {
	// RecordPath returns the filesystem path of the media file.
	RecordPath() string
	// RecordIndex returns the dense zero-based sequence index.
	RecordIndex() int
	// SetIndex assigns the sequence index after ordering is final.
	SetIndex(i int)
}

// Photo represents a discovered photo file. The metadata fields are only
// populated by GPS-validated discovery; nil means the tag was absent.
type Photo struct {
	// Path is the path to the source file.
	Path string `json:"path"`
	// Index is the zero-based position in the ordered sequence.
	Index int `json:"index"`
	// ExifTimestamp is the capture time from the camera clock.
	ExifTimestamp *time.Time `json:"exif_timestamp,omitempty"`
	// GPSTimestamp is the capture time from the GPS receiver. It is
	// authoritative over ExifTimestamp when both are present.
	GPSTimestamp *time.Time `json:"gps_timestamp,omitempty"`
	// Latitude and Longitude are decimal degrees, sign-normalized.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	// GPSSpeed is meters per second.
	GPSSpeed *float64 `json:"gps_speed,omitempty"`
	// GPSAltitude is meters relative to sea level, negative below.
	GPSAltitude *float64 `json:"gps_altitude,omitempty"`
	// GPSCompass is the heading in degrees from true north.
	GPSCompass *float64 `json:"gps_compass,omitempty"`
}

func (p *Photo) RecordPath() string { return p.Path }
func (p *Photo) RecordIndex() int   { return p.Index }
func (p *Photo) SetIndex(i int)     { p.Index = i }

// Video represents a discovered video file. Videos carry no embedded
// metadata at this stage.
type Video struct {
	Path  string `json:"path"`
	Index int    `json:"index"`
}

func (v *Video) RecordPath() string { return v.Path }
func (v *Video) RecordIndex() int   { return v.Index }
func (v *Video) SetIndex(i int)     { v.Index = i }

// RunSummary contains statistics for a completed discovery run.
type RunSummary struct {
	Source     string        `json:"source"`
	Kind       Kind          `json:"kind"`
	Candidates int           `json:"candidates"`
	Discovered int           `json:"discovered"`
	Dropped    int           `json:"dropped"`
	StartTime  time.Time     `json:"start_time"`
	EndTime    time.Time     `json:"end_time"`
	Duration   time.Duration `json:"duration"`
}

// UserSettings represents the current web UI settings.
type UserSettings struct {
	Source       string    `json:"source"`
	Type         Kind      `json:"type"`
	RequireGPS   bool      `json:"require_gps"`
	Jobs         int       `json:"jobs"`
	ManifestFile string    `json:"manifest_file"`
	LogFile      string    `json:"log_file"`
	LogJSON      bool      `json:"log_json"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PathHistory stores recently used source paths for autocomplete.
type PathHistory struct {
	Source    []string  `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunStatus represents the outcome of a discovery run.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// RunHistoryEntry represents a single discovery run record.
type RunHistoryEntry struct {
	ID        string     `json:"id"`
	Summary   RunSummary `json:"summary"`
	Status    RunStatus  `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// RunHistory stores the collection of past discovery runs, newest first.
type RunHistory struct {
	Entries   []RunHistoryEntry `json:"entries"`
	UpdatedAt time.Time         `json:"updated_at"`
}
