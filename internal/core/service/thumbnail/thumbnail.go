package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"github.com/buckket/go-blurhash"
	"github.com/disintegration/imaging"
)

// Bounding box for generated thumbnails. The result preserves the source
// aspect ratio exactly and never exceeds either dimension.
const (
	maxWidth  = 800
	maxHeight = 600
)

// Blurhash component counts, matching what message viewers expect
const (
	blurhashXComponents = 4
	blurhashYComponents = 3
)

type generator struct {
	logger *slog.Logger
}

// NewGenerator creates a thumbnail generator
func NewGenerator(logger *slog.Logger) port.Thumbnailer {
	return &generator{logger: logger}
}

// Generate renders the source into a downscaled raster, encodes it as
// mimeType and computes the blurhash placeholder over the scaled pixels.
func (g *generator) Generate(ctx context.Context, src port.RasterSource, mimeType string) (*domain.Thumbnail, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.ErrUploadCanceled
	}

	sourceWidth, sourceHeight := src.Size()
	targetWidth, targetHeight := targetSize(sourceWidth, sourceHeight)

	scaled := imaging.Resize(src.Frame(), targetWidth, targetHeight, imaging.Lanczos)

	hashed := make(chan string, 1)
	go func() {
		hash, err := blurhash.Encode(blurhashXComponents, blurhashYComponents, scaled)
		if err != nil {
			g.logger.Warn("blurhash encoding failed", "error", err)
			hash = ""
		}
		hashed <- hash
	}()

	data, err := encode(scaled, mimeType)
	if err != nil {
		return nil, err
	}

	return &domain.Thumbnail{
		Data:         data,
		ContentType:  mimeType,
		Width:        targetWidth,
		Height:       targetHeight,
		SourceWidth:  sourceWidth,
		SourceHeight: sourceHeight,
		Blurhash:     <-hashed,
	}, nil
}

// targetSize constrains the source dimensions to the bounding box, shrinking
// by height first and truncating the derived dimension downward.
func targetSize(width, height int) (int, int) {
	targetWidth, targetHeight := width, height
	if targetHeight > maxHeight {
		targetWidth = int(float64(targetWidth) * (float64(maxHeight) / float64(targetHeight)))
		targetHeight = maxHeight
	}
	if targetWidth > maxWidth {
		targetHeight = int(float64(targetHeight) * (float64(maxWidth) / float64(targetWidth)))
		targetWidth = maxWidth
	}
	return targetWidth, targetHeight
}

func encode(img image.Image, mimeType string) ([]byte, error) {
	var format imaging.Format
	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return nil, fmt.Errorf("unsupported thumbnail type: %s", mimeType)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
