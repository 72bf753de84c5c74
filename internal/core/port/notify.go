package port

import "mediasend/internal/core/domain"

// UploadNotifier is an interface to define the lifecycle observer surface.
// Implementations must not block the calling pipeline.
type UploadNotifier interface {
	UploadStarted(u *domain.Upload)
	UploadProgress(u *domain.Upload)
	UploadFinished(u *domain.Upload)
	UploadFailed(u *domain.Upload, err error)
	UploadCanceled(u *domain.Upload)
}
