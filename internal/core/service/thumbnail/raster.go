package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"github.com/disintegration/imaging"
)

type rasterSource struct {
	frame  image.Image
	width  int
	height int
}

func (r *rasterSource) Size() (int, int)   { return r.width, r.height }
func (r *rasterSource) Frame() image.Image { return r.frame }

type imageDecoder struct{}

// NewImageDecoder creates a raster decoder for still images. Video frame
// extraction needs a platform decoder and is injected separately where
// available; this decoder reports video files as having no raster source.
func NewImageDecoder() port.RasterDecoder {
	return &imageDecoder{}
}

// Decode decodes an image file, correcting reported dimensions for HiDPI
// screenshots (macOS writes a pHYs chunk into its PNGs at double density).
func (d *imageDecoder) Decode(ctx context.Context, file domain.File) (port.RasterSource, error) {
	if !strings.HasPrefix(file.ContentType, "image/") {
		return nil, domain.ErrNoRasterSource
	}

	frame, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.ContentType, err)
	}

	bounds := frame.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if file.ContentType == "image/png" && isHiDPIPNG(file.Data) {
		width >>= 1
		height >>= 1
	}

	return &rasterSource{frame: frame, width: width, height: height}, nil
}
