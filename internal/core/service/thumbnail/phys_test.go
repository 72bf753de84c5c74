package thumbnail

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func chunk(chunkType string, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+12)
	out = binary.BigEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, chunkType...)
	out = append(out, payload...)
	out = append(out, 0, 0, 0, 0) // CRC, not validated here
	return out
}

func pngWithChunks(chunks ...[]byte) []byte {
	out := append([]byte(nil), pngSignature...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return out
}

func TestIsHiDPIPNG(t *testing.T) {
	ihdr := chunk("IHDR", make([]byte, 13))
	idat := chunk("IDAT", []byte{0x00})
	iend := chunk("IEND", nil)

	t.Run("detects macOS pHYs density", func(t *testing.T) {
		data := pngWithChunks(ihdr, chunk("pHYs", physHiDPI), idat, iend)
		assert.True(t, isHiDPIPNG(data))
	})

	t.Run("other density is not hidpi", func(t *testing.T) {
		payload := []byte{0x00, 0x00, 0x0b, 0x13, 0x00, 0x00, 0x0b, 0x13, 0x01} // 72dpi
		data := pngWithChunks(ihdr, chunk("pHYs", payload), idat, iend)
		assert.False(t, isHiDPIPNG(data))
	})

	t.Run("no pHYs chunk", func(t *testing.T) {
		data := pngWithChunks(ihdr, idat, iend)
		assert.False(t, isHiDPIPNG(data))
	})

	t.Run("not a png", func(t *testing.T) {
		assert.False(t, isHiDPIPNG([]byte("GIF89a")))
	})

	t.Run("truncated chunk is malformed, not hidpi", func(t *testing.T) {
		data := pngWithChunks(ihdr)
		data = append(data, 0x00, 0x00, 0xff, 0xff, 'p', 'H', 'Y', 's')
		assert.False(t, isHiDPIPNG(data))
	})
}
