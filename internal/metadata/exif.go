// Package metadata reads EXIF tags from media files and derives the
// timestamp and GPS fields used to build a geo-referenced sequence.
package metadata

import (
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Tags wraps the decoded EXIF block of one file. All derivation methods
// report absence with ok=false instead of an error: a tag that is missing,
// malformed, or zero-denominator is simply absent.
type Tags struct {
	x *exif.Exif
}

// AllTags decodes the EXIF block of the file at path.
func AllTags(path string) (*Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}

	return &Tags{x: x}, nil
}

// Timestamp derives the capture time from the camera clock
// (DateTimeOriginal with the usual fallbacks).
func (t *Tags) Timestamp() (time.Time, bool) {
	dt, err := t.x.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}

// GPSTimestamp derives the capture time from the GPS receiver by combining
// GPSDateStamp with the three GPSTimeStamp rationals. The result is UTC.
func (t *Tags) GPSTimestamp() (time.Time, bool) {
	dateTag, err := t.x.Get(exif.GPSDateStamp)
	if err != nil {
		return time.Time{}, false
	}
	dateStr, err := dateTag.StringVal()
	if err != nil {
		return time.Time{}, false
	}

	day, err := time.Parse("2006:01:02", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, false
	}

	timeTag, err := t.x.Get(exif.GPSTimeStamp)
	if err != nil {
		return time.Time{}, false
	}

	var clock [3]float64
	for i := range clock {
		v, ok := ratValue(timeTag, i)
		if !ok {
			return time.Time{}, false
		}
		clock[i] = v
	}

	seconds := clock[0]*3600 + clock[1]*60 + clock[2]
	return day.UTC().Add(time.Duration(seconds * float64(time.Second))), true
}

// GPSLatitude derives the latitude in decimal degrees, negative south.
func (t *Tags) GPSLatitude() (float64, bool) {
	lat, _, err := t.x.LatLong()
	if err != nil {
		return 0, false
	}
	return lat, true
}

// GPSLongitude derives the longitude in decimal degrees, negative west.
func (t *Tags) GPSLongitude() (float64, bool) {
	_, long, err := t.x.LatLong()
	if err != nil {
		return 0, false
	}
	return long, true
}

// GPSSpeed derives the receiver speed in meters per second. The GPSSpeedRef
// unit (km/h, mph or knots) is folded in here so callers never see raw
// units.
func (t *Tags) GPSSpeed() (float64, bool) {
	tag, err := t.x.Get(exif.GPSSpeed)
	if err != nil {
		return 0, false
	}
	speed, ok := ratValue(tag, 0)
	if !ok {
		return 0, false
	}

	// Ref defaults to km/h when the tag is missing, per the EXIF spec.
	unit := "K"
	if refTag, err := t.x.Get(exif.GPSSpeedRef); err == nil {
		if ref, err := refTag.StringVal(); err == nil {
			unit = strings.TrimSpace(ref)
		}
	}

	switch unit {
	case "M":
		return speed * 0.44704, true
	case "N":
		return speed * 0.514444, true
	default:
		return speed / 3.6, true
	}
}

// GPSAltitude derives the altitude in meters, negative below sea level
// (GPSAltitudeRef 1).
func (t *Tags) GPSAltitude() (float64, bool) {
	tag, err := t.x.Get(exif.GPSAltitude)
	if err != nil {
		return 0, false
	}
	alt, ok := ratValue(tag, 0)
	if !ok {
		return 0, false
	}

	if refTag, err := t.x.Get(exif.GPSAltitudeRef); err == nil {
		if ref, err := refTag.Int(0); err == nil && ref == 1 {
			alt = -alt
		}
	}

	return alt, true
}

// GPSCompass derives the heading in degrees from north (GPSImgDirection).
func (t *Tags) GPSCompass() (float64, bool) {
	tag, err := t.x.Get(exif.GPSImgDirection)
	if err != nil {
		return 0, false
	}
	return ratValue(tag, 0)
}

func ratValue(tag *tiff.Tag, i int) (float64, bool) {
	num, den, err := tag.Rat2(i)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}
