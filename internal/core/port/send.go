package port

import (
	"context"

	"mediasend/internal/core/domain"

	"github.com/google/uuid"
)

// MessageSender is an interface to define the message-send sink. SendMessage
// returns once the message has been handed to the send layer, with the
// resulting event ID.
type MessageSender interface {
	SendMessage(ctx context.Context, roomID, threadID string, content *domain.MessageContent) (string, error)
}

// SendService is an interface to define the attachment send pipeline
type SendService interface {
	// SendFilesToRoom processes an ordered batch of files for one room.
	// Message-send order matches slice order for all accepted files.
	SendFilesToRoom(ctx context.Context, files []domain.File, roomID string, relation *domain.Relation, replyTo string) error
	// SendFileToRoom processes exactly one file, delaying its message send
	// until prev (the previous file's send barrier) is closed. It returns
	// after the message has been handed to the send layer.
	SendFileToRoom(ctx context.Context, file domain.File, roomID string, relation *domain.Relation, replyTo string, prev <-chan struct{}) error
	// CurrentUploads returns non-canceled in-flight records. With a nil
	// relation only records carrying no relation are returned.
	CurrentUploads(relation *domain.Relation) []*domain.Upload
	// CancelUpload aborts the record with the given ID. Canceling an
	// already-canceled record is a no-op; a settled record reports
	// domain.ErrUploadNotFound.
	CancelUpload(id uuid.UUID) error
}
