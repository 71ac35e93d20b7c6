package discovery

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/alrs/upload-scripts/pkg/types"
)

// Little-endian TIFF builder for GPS photo fixtures. The files get .jpg
// names; the name filter only looks at filenames and the EXIF decoder
// accepts TIFF content directly.

type tiffField struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiField(tag uint16, val string) tiffField {
	data := append([]byte(val), 0x00)
	return tiffField{tag: tag, typ: 2, count: uint32(len(data)), data: data}
}

func rationalField(tag uint16, rats ...[2]uint32) tiffField {
	data := make([]byte, 0, len(rats)*8)
	for _, r := range rats {
		data = binary.LittleEndian.AppendUint32(data, r[0])
		data = binary.LittleEndian.AppendUint32(data, r[1])
	}
	return tiffField{tag: tag, typ: 5, count: uint32(len(rats)), data: data}
}

func encodeIFD(base uint32, fields []tiffField) []byte {
	dataOffset := base + 2 + uint32(len(fields))*12 + 4

	block := binary.LittleEndian.AppendUint16(nil, uint16(len(fields)))
	var data []byte
	for _, f := range fields {
		block = binary.LittleEndian.AppendUint16(block, f.tag)
		block = binary.LittleEndian.AppendUint16(block, f.typ)
		block = binary.LittleEndian.AppendUint32(block, f.count)
		if len(f.data) <= 4 {
			v := make([]byte, 4)
			copy(v, f.data)
			block = append(block, v...)
		} else {
			block = binary.LittleEndian.AppendUint32(block, dataOffset+uint32(len(data)))
			data = append(data, f.data...)
		}
	}
	block = binary.LittleEndian.AppendUint32(block, 0) // next IFD offset
	return append(block, data...)
}

// writeGPSPhoto writes a TIFF-in-.jpg fixture with a GPS fix at the given
// UTC clock on 2019:03:05. withLatitude=false drops the latitude tags so
// the mandatory trio is incomplete.
func writeGPSPhoto(t *testing.T, path string, clock [3]uint32, withLatitude bool) {
	t.Helper()

	gpsFields := []tiffField{}
	if withLatitude {
		gpsFields = append(gpsFields,
			asciiField(0x0001, "N"),
			rationalField(0x0002, [2]uint32{45, 1}, [2]uint32{30, 1}, [2]uint32{0, 1}),
		)
	}
	gpsFields = append(gpsFields,
		asciiField(0x0003, "E"),
		rationalField(0x0004, [2]uint32{9, 1}, [2]uint32{15, 1}, [2]uint32{0, 1}),
		rationalField(0x0007, [2]uint32{clock[0], 1}, [2]uint32{clock[1], 1}, [2]uint32{clock[2], 1}),
		asciiField(0x001D, "2019:03:05"),
	)

	pointer := tiffField{tag: 0x8825, typ: 4, count: 1, data: []byte{0, 0, 0, 0}}
	ifd0 := encodeIFD(8, []tiffField{pointer})

	gpsOffset := uint32(8 + len(ifd0))
	pointer.data = binary.LittleEndian.AppendUint32(nil, gpsOffset)
	ifd0 = encodeIFD(8, []tiffField{pointer})
	gps := encodeIFD(gpsOffset, gpsFields)

	out := []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}
	out = append(out, ifd0...)
	out = append(out, gps...)

	if err := os.WriteFile(path, out, 0644); err != nil {
		t.Fatalf("failed to write gps photo fixture: %v", err)
	}
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("media"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func recordNames(records []types.VisualRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = filepath.Base(r.RecordPath())
	}
	return names
}
