package metadata

import (
	"encoding/binary"
	"os"
	"testing"
)

// Minimal little-endian TIFF writer for EXIF fixtures. Field data longer
// than four bytes lands in the data area after the IFD, as the spec
// requires.

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

func byteField(tag uint16, val byte) tiffField {
	return tiffField{tag: tag, typ: 1, count: 1, data: []byte{val}}
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

// writeTIFF writes a TIFF containing the given IFD0 fields and, when
// gpsFields is non-empty, a GPS sub-IFD referenced from IFD0.
func writeTIFF(t *testing.T, path string, ifd0Fields, gpsFields []tiffField) {
	t.Helper()

	const headerLen = 8
	fields := append([]tiffField(nil), ifd0Fields...)
	if len(gpsFields) > 0 {
		fields = append(fields, tiffField{tag: 0x8825, typ: 4, count: 1, data: []byte{0, 0, 0, 0}})
	}

	ifd0 := encodeIFD(headerLen, fields)
	var gps []byte
	if len(gpsFields) > 0 {
		gpsOffset := uint32(headerLen + len(ifd0))
		fields[len(fields)-1].data = binary.LittleEndian.AppendUint32(nil, gpsOffset)
		ifd0 = encodeIFD(headerLen, fields)
		gps = encodeIFD(gpsOffset, gpsFields)
	}

	out := []byte{0x49, 0x49, 0x2A, 0x00, 0x08, 0x00, 0x00, 0x00}
	out = append(out, ifd0...)
	out = append(out, gps...)

	if err := os.WriteFile(path, out, 0644); err != nil {
		t.Fatalf("failed to write tiff fixture: %v", err)
	}
}

// GPS tag IDs used by fixtures.
const (
	tagGPSLatitudeRef  = 0x0001
	tagGPSLatitude     = 0x0002
	tagGPSLongitudeRef = 0x0003
	tagGPSLongitude    = 0x0004
	tagGPSAltitudeRef  = 0x0005
	tagGPSAltitude     = 0x0006
	tagGPSTimeStamp    = 0x0007
	tagGPSSpeedRef     = 0x000C
	tagGPSSpeed        = 0x000D
	tagGPSImgDirection = 0x0011
	tagGPSDateStamp    = 0x001D
	tagDateTime        = 0x0132
)

// fullGPSFields returns a GPS IFD with every tag the extractor derives:
// 45.5N 9.25E, 120m, 10:20:30 on 2019:03:05, 36 km/h, heading 90.5.
func fullGPSFields() []tiffField {
	return []tiffField{
		asciiField(tagGPSLatitudeRef, "N"),
		rationalField(tagGPSLatitude, [2]uint32{45, 1}, [2]uint32{30, 1}, [2]uint32{0, 1}),
		asciiField(tagGPSLongitudeRef, "E"),
		rationalField(tagGPSLongitude, [2]uint32{9, 1}, [2]uint32{15, 1}, [2]uint32{0, 1}),
		byteField(tagGPSAltitudeRef, 0),
		rationalField(tagGPSAltitude, [2]uint32{1200, 10}),
		rationalField(tagGPSTimeStamp, [2]uint32{10, 1}, [2]uint32{20, 1}, [2]uint32{30, 1}),
		asciiField(tagGPSSpeedRef, "K"),
		rationalField(tagGPSSpeed, [2]uint32{36, 1}),
		rationalField(tagGPSImgDirection, [2]uint32{905, 10}),
		asciiField(tagGPSDateStamp, "2019:03:05"),
	}
}

func writePlainFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("not-a-real-jpeg-with-exif"), 0644); err != nil {
		t.Fatalf("failed to write plain file: %v", err)
	}
}

func withoutTag(fields []tiffField, tag uint16) []tiffField {
	out := make([]tiffField, 0, len(fields))
	for _, f := range fields {
		if f.tag != tag {
			out = append(out, f)
		}
	}
	return out
}
