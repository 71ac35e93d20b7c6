// Package discovery enumerates the media files of a directory and produces
// the ordered, indexed sequence of records the upload stage consumes.
// A Policy decides which files are candidates, how their records are built,
// and in what order the sequence runs.
package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alrs/upload-scripts/pkg/types"
)

// Policy selects candidate files, builds their records, and orders them.
type Policy interface {
	// Kind tags the records this policy produces.
	Kind() types.Kind
	// Match reports whether the base filename is a candidate.
	Match(name string) bool
	// BuildAll builds one record per path. Paths whose build fails are
	// dropped from the returned slice.
	BuildAll(paths []string) []types.VisualRecord
	// Less orders two surviving records.
	Less(a, b types.VisualRecord) bool
}

// Result is the outcome of one discovery call.
type Result struct {
	// Records is the ordered sequence, indices assigned 0..N-1.
	Records []types.VisualRecord
	// Kind is the concrete type of every record in the sequence.
	Kind types.Kind
	// Candidates is the number of files that passed the name filter,
	// including ones later dropped by record construction.
	Candidates int
}

// Discover scans the immediate entries of dir under the given policy.
// A path that is missing or not a directory yields an empty Result and no
// error; callers treat "nothing found" and "bad path" identically. Only a
// failing directory listing is reported as an error.
func Discover(p Policy, dir string) (Result, error) {
	result := Result{Kind: p.Kind()}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return result, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result, err
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() || !p.Match(entry.Name()) {
			continue
		}
		candidates = append(candidates, filepath.Join(dir, entry.Name()))
	}
	result.Candidates = len(candidates)

	records := p.BuildAll(candidates)

	// Stable sort over the listing order keeps equal keys deterministic,
	// so re-running over an unchanged directory reproduces the sequence.
	sort.SliceStable(records, func(i, j int) bool {
		return p.Less(records[i], records[j])
	})
	for i, record := range records {
		record.SetIndex(i)
	}

	result.Records = records
	return result, nil
}

// matchPhoto keeps the historical substring semantics: the extension only
// has to contain "jpg" or "jpeg" (case-sensitive), and a "thumb" anywhere
// in the stem excludes the file regardless of case. Existing directories
// were sequenced under these rules, so they are preserved byte for byte.
func matchPhoto(name string) bool {
	ext := filepath.Ext(name)
	if !strings.Contains(ext, "jpg") && !strings.Contains(ext, "jpeg") {
		return false
	}
	stem := strings.TrimSuffix(name, ext)
	return !strings.Contains(strings.ToLower(stem), "thumb")
}

func matchVideo(name string) bool {
	return strings.Contains(filepath.Ext(name), "mp4")
}
