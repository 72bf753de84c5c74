package port

import (
	"context"

	"mediasend/internal/core/domain"
)

// UploadConfirmer is an interface to define the caller-side confirmation
// checkpoints of a batch send.
type UploadConfirmer interface {
	// ConfirmOversized presents files rejected by the size policy and reports
	// whether to continue with the remaining files.
	ConfirmOversized(ctx context.Context, tooBig []domain.File, totalFiles int) (bool, error)
	// ConfirmUpload asks about one accepted file. uploadAll suppresses the
	// question for the rest of the batch.
	ConfirmUpload(ctx context.Context, file domain.File, index, totalFiles int) (proceed, uploadAll bool, err error)
}
