package port

import (
	"context"

	"mediasend/internal/core/domain"
)

// EncryptionOracle reports whether a room requires attachments to be
// encrypted before leaving the process.
type EncryptionOracle interface {
	IsRoomEncrypted(roomID string) bool
}

// AttachmentUploader wraps a payload for upload: passthrough for plaintext
// rooms, encrypt-then-upload for confidential rooms. The returned Attachment
// carries either a bare locator or an encryption bundle, never both.
type AttachmentUploader interface {
	Upload(ctx context.Context, roomID string, payload []byte, contentType, filename string, progress ProgressFunc) (*domain.Attachment, error)
}
