package discovery

import (
	"path/filepath"
	"sync"

	"github.com/alrs/upload-scripts/internal/metadata"
	"github.com/alrs/upload-scripts/pkg/types"
)

// ProgressFunc receives extraction progress while records are built.
type ProgressFunc func(current, total int, filename string)

// ExifPhotoPolicy discovers photos carrying a full GPS fix, ordered by GPS
// timestamp. A file whose EXIF block is unreadable or lacks any of
// latitude, longitude, or the GPS timestamp is dropped; the remaining
// fields are best-effort.
type ExifPhotoPolicy struct {
	workers  int
	progress ProgressFunc
}

func NewExifPhotoPolicy(workers int) *ExifPhotoPolicy {
	if workers < 1 {
		workers = 1
	}
	return &ExifPhotoPolicy{workers: workers}
}

// SetProgress installs a callback invoked once per file as extraction
// completes. Calls are serialized.
func (p *ExifPhotoPolicy) SetProgress(fn ProgressFunc) { p.progress = fn }

func (p *ExifPhotoPolicy) Kind() types.Kind { return types.KindPhoto }

func (p *ExifPhotoPolicy) Match(name string) bool { return matchPhoto(name) }

// BuildAll extracts EXIF metadata on a bounded worker pool. Results are
// collected by input position and compacted afterwards, so the surviving
// order never depends on worker scheduling.
func (p *ExifPhotoPolicy) BuildAll(paths []string) []types.VisualRecord {
	built := make([]*types.Photo, len(paths))

	type job struct {
		pos  int
		path string
	}
	jobs := make(chan job, len(paths))

	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				built[j.pos] = buildGPSPhoto(j.path)
				if p.progress != nil {
					mu.Lock()
					completed++
					p.progress(completed, len(paths), filepath.Base(j.path))
					mu.Unlock()
				}
			}
		}()
	}

	for i, path := range paths {
		jobs <- job{pos: i, path: path}
	}
	close(jobs)
	wg.Wait()

	records := make([]types.VisualRecord, 0, len(paths))
	for _, photo := range built {
		if photo != nil {
			records = append(records, photo)
		}
	}
	return records
}

// buildGPSPhoto returns nil when the mandatory trio is incomplete. Partial
// GPS data is not acceptable: a record either places the photo on the map
// and the timeline, or it is not part of the sequence.
func buildGPSPhoto(path string) *types.Photo {
	tags, err := metadata.AllTags(path)
	if err != nil {
		return nil
	}

	gpsTime, ok := tags.GPSTimestamp()
	if !ok {
		return nil
	}
	lat, ok := tags.GPSLatitude()
	if !ok {
		return nil
	}
	long, ok := tags.GPSLongitude()
	if !ok {
		return nil
	}

	photo := &types.Photo{
		Path:         path,
		GPSTimestamp: &gpsTime,
		Latitude:     &lat,
		Longitude:    &long,
	}

	if ts, ok := tags.Timestamp(); ok {
		photo.ExifTimestamp = &ts
	}
	if v, ok := tags.GPSSpeed(); ok {
		photo.GPSSpeed = &v
	}
	if v, ok := tags.GPSAltitude(); ok {
		photo.GPSAltitude = &v
	}
	if v, ok := tags.GPSCompass(); ok {
		photo.GPSCompass = &v
	}

	return photo
}

func (p *ExifPhotoPolicy) Less(a, b types.VisualRecord) bool {
	return a.(*types.Photo).GPSTimestamp.Before(*b.(*types.Photo).GPSTimestamp)
}
