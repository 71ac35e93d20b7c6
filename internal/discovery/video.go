package discovery

import (
	"path/filepath"

	"github.com/alrs/upload-scripts/pkg/types"
)

// VideoPolicy discovers mp4 files ordered by the numeric sequence embedded
// in their filenames.
type VideoPolicy struct{}

func NewVideoPolicy() VideoPolicy { return VideoPolicy{} }

func (VideoPolicy) Kind() types.Kind { return types.KindVideo }

func (VideoPolicy) Match(name string) bool { return matchVideo(name) }

func (VideoPolicy) BuildAll(paths []string) []types.VisualRecord {
	records := make([]types.VisualRecord, 0, len(paths))
	for _, path := range paths {
		records = append(records, &types.Video{Path: path})
	}
	return records
}

func (VideoPolicy) Less(a, b types.VisualRecord) bool {
	return sequenceKey(filepath.Base(a.RecordPath())) <
		sequenceKey(filepath.Base(b.RecordPath()))
}
