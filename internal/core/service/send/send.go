package send

import (
	"context"
	"log/slog"
	"sync"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"
)

// Minimum size for image files before a generated thumbnail is worth keeping
const imageSizeThresholdThumbnail = 1 << 15 // 32KiB

// Minimum size improvement for image thumbnails; if either floor is not met
// the thumbnail is dropped. Video posters skip these checks entirely, as a
// poster frame is always useful and videos tend to be much larger.
const (
	imageThumbnailMinReductionSize    = 1 << 16 // 64KiB
	imageThumbnailMinReductionPercent = 0.1
)

// Image types whose thumbnail is kept even when it is larger than the input,
// because the thumbnail doubles as a more widely supported rendition.
var alwaysIncludeThumbnail = []string{"image/avif", "image/webp"}

type sendService struct {
	attach   port.AttachmentUploader
	decoder  port.RasterDecoder
	thumbs   port.Thumbnailer
	policy   port.MediaConfigProvider
	sender   port.MessageSender
	confirm  port.UploadConfirmer
	notifier port.UploadNotifier
	logger   *slog.Logger

	mu       sync.Mutex
	inflight []*domain.Upload
}

// NewSendService creates the attachment send pipeline. The service owns the
// in-flight upload registry; construct one per active session.
func NewSendService(
	attach port.AttachmentUploader,
	decoder port.RasterDecoder,
	thumbs port.Thumbnailer,
	policy port.MediaConfigProvider,
	sender port.MessageSender,
	confirm port.UploadConfirmer,
	notifier port.UploadNotifier,
	logger *slog.Logger,
) port.SendService {
	return &sendService{
		attach:   attach,
		decoder:  decoder,
		thumbs:   thumbs,
		policy:   policy,
		sender:   sender,
		confirm:  confirm,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *sendService) isFileSizeAcceptable(file domain.File) bool {
	limit, ok := s.policy.UploadLimit()
	return !ok || file.Size <= limit
}

// canceled is the cooperative cancellation checkpoint used between pipeline steps
func canceled(ctx context.Context, rec *domain.Upload) bool {
	return rec.Canceled() || ctx.Err() != nil
}
