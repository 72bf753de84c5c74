package port

import (
	"context"
	"image"

	"mediasend/internal/core/domain"
)

// RasterSource is a decoded image or video frame ready for thumbnailing.
// Size returns the corrected display dimensions, which may differ from the
// frame's pixel dimensions (HiDPI screenshots).
type RasterSource interface {
	Size() (width, height int)
	Frame() image.Image
}

// RasterDecoder decodes a file into a raster source. The concrete decode
// mechanism is platform-specific; a decoder that cannot handle the file's
// format must return domain.ErrNoRasterSource.
type RasterDecoder interface {
	Decode(ctx context.Context, file domain.File) (RasterSource, error)
}

// Thumbnailer produces a downscaled rendition plus a perceptual-hash
// placeholder from a raster source.
type Thumbnailer interface {
	Generate(ctx context.Context, src RasterSource, mimeType string) (*domain.Thumbnail, error)
}
