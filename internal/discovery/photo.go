package discovery

import (
	"path/filepath"

	"github.com/alrs/upload-scripts/pkg/types"
)

// PhotoPolicy discovers photos ordered by the numeric sequence embedded in
// their filenames. Records carry no metadata and construction never fails.
type PhotoPolicy struct{}

func NewPhotoPolicy() PhotoPolicy { return PhotoPolicy{} }

func (PhotoPolicy) Kind() types.Kind { return types.KindPhoto }

func (PhotoPolicy) Match(name string) bool { return matchPhoto(name) }

func (PhotoPolicy) BuildAll(paths []string) []types.VisualRecord {
	records := make([]types.VisualRecord, 0, len(paths))
	for _, path := range paths {
		records = append(records, &types.Photo{Path: path})
	}
	return records
}

func (PhotoPolicy) Less(a, b types.VisualRecord) bool {
	return sequenceKey(filepath.Base(a.RecordPath())) <
		sequenceKey(filepath.Base(b.RecordPath()))
}
