package pipeline

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alrs/upload-scripts/internal/config"
	"github.com/alrs/upload-scripts/internal/discovery"
	"github.com/alrs/upload-scripts/internal/log"
	"github.com/alrs/upload-scripts/internal/manifest"
	"github.com/alrs/upload-scripts/pkg/types"
)

// Pipeline wires configuration, discovery, manifest persistence and run
// history into one discovery run.
type Pipeline struct {
	cfg              *config.Config
	policy           discovery.Policy
	logger           *log.Logger
	userDataManager  *config.UserDataManager
	progressCallback ProgressCallback
}

func New(cfg *config.Config) (*Pipeline, error) {
	logger, err := log.New(cfg.LogFile, cfg.LogJSON, true)
	if err != nil {
		return nil, err
	}

	userDataManager, err := config.NewUserDataManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create user data manager: %w", err)
	}

	p := &Pipeline{
		cfg:             cfg,
		policy:          policyFor(cfg),
		logger:          logger,
		userDataManager: userDataManager,
	}

	if exifPolicy, ok := p.policy.(*discovery.ExifPhotoPolicy); ok {
		exifPolicy.SetProgress(func(current, total int, filename string) {
			p.logger.Progress(current, total, filename)
			if p.progressCallback != nil {
				p.progressCallback(ProgressUpdate{
					Type:     "extract_progress",
					Current:  current,
					Total:    total,
					Filename: filename,
				})
			}
		})
	}

	return p, nil
}

func policyFor(cfg *config.Config) discovery.Policy {
	if cfg.Type == types.KindVideo {
		return discovery.NewVideoPolicy()
	}
	if cfg.RequireGPS {
		return discovery.NewExifPhotoPolicy(cfg.Jobs)
	}
	return discovery.NewPhotoPolicy()
}

func (p *Pipeline) SetProgressCallback(cb ProgressCallback) {
	p.progressCallback = cb
}

func (p *Pipeline) Close() error {
	return p.logger.Close()
}

func (p *Pipeline) Run() (*types.RunSummary, error) {
	startTime := time.Now()

	p.logger.Info("Starting discovery: '" + p.cfg.Source + "'")

	if p.progressCallback != nil {
		p.progressCallback(ProgressUpdate{
			Type:    "status",
			Message: "Scanning " + p.cfg.Source,
		})
	}

	result, err := discovery.Discover(p.policy, p.cfg.Source)
	if err != nil {
		p.logger.Error("discovery failed", err)
		p.recordRun(types.RunSummary{
			Source:    p.cfg.Source,
			Kind:      p.policy.Kind(),
			StartTime: startTime,
			EndTime:   time.Now(),
			Duration:  time.Since(startTime),
		}, types.RunStatusFailed)
		return nil, err
	}

	summary := types.RunSummary{
		Source:     p.cfg.Source,
		Kind:       result.Kind,
		Candidates: result.Candidates,
		Discovered: len(result.Records),
		Dropped:    result.Candidates - len(result.Records),
		StartTime:  startTime,
		EndTime:    time.Now(),
		Duration:   time.Since(startTime),
	}

	m := manifest.Build(p.cfg.Source, result.Kind, result.Records)
	if err := m.Save(p.cfg.ManifestFile); err != nil {
		p.logger.Error("failed to write manifest", err)
		p.recordRun(summary, types.RunStatusFailed)
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	p.recordRun(summary, types.RunStatusSuccess)
	p.logger.LogRun(summary)
	p.logger.Summary(summary)

	if p.progressCallback != nil {
		p.progressCallback(ProgressUpdate{
			Type:    "done",
			Summary: &summary,
		})
	}

	return &summary, nil
}

func (p *Pipeline) recordRun(summary types.RunSummary, status types.RunStatus) {
	entry := types.RunHistoryEntry{
		ID:        strconv.FormatInt(summary.StartTime.UnixNano(), 10),
		Summary:   summary,
		Status:    status,
		CreatedAt: summary.StartTime,
	}
	if err := p.userDataManager.AddRunEntry(entry); err != nil {
		p.logger.Error("failed to save run history", err)
	}
}
