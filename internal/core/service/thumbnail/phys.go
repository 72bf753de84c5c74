package thumbnail

import (
	"bytes"
	"encoding/binary"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pHYs payload of a macOS HiDPI screenshot: 5669 px/m on both axes, metric
var physHiDPI = []byte{0x00, 0x00, 0x16, 0x25, 0x00, 0x00, 0x16, 0x25, 0x01}

// isHiDPIPNG scans the PNG chunk list for a pHYs chunk matching the density
// macOS stamps into HiDPI screenshots. Anything malformed reads as "no".
func isHiDPIPNG(data []byte) bool {
	if !bytes.HasPrefix(data, pngSignature) {
		return false
	}

	offset := len(pngSignature)
	for offset+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		chunkType := string(data[offset+4 : offset+8])
		dataStart := offset + 8
		if dataStart+length > len(data) {
			return false
		}

		switch chunkType {
		case "pHYs":
			return bytes.Equal(data[dataStart:dataStart+length], physHiDPI)
		case "IDAT", "IEND":
			// pHYs must precede the image data
			return false
		}

		offset = dataStart + length + 4 // skip CRC
	}
	return false
}
