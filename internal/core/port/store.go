package port

import (
	"context"

	"mediasend/internal/core/domain"
)

// ProgressFunc is invoked as payload bytes are transmitted to the store
type ProgressFunc func(loaded, total int64)

// UploadOptions controls a single content-store upload
type UploadOptions struct {
	// ContentType declared to the store. Empty means application/octet-stream.
	ContentType string
	// Filename declared to the store. Empty means the filename is withheld.
	Filename string
	// Progress, if set, is called as bytes are transmitted.
	Progress ProgressFunc
}

// ContentStore is an interface to define content store interactions.
// UploadBytes returns an opaque locator for the stored payload. It must
// surface context cancellation as domain.ErrUploadCanceled and a store-side
// size rejection as domain.ErrPayloadTooLarge.
type ContentStore interface {
	UploadBytes(ctx context.Context, payload []byte, opts UploadOptions) (string, error)
	GetMediaConfig(ctx context.Context) (*domain.MediaConfig, error)
}
