package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// UploadEventType is a type that represents the type of an upload lifecycle event
type UploadEventType string

const (
	UploadEventStarted  UploadEventType = "upload.started"
	UploadEventProgress UploadEventType = "upload.progress"
	UploadEventFinished UploadEventType = "upload.finished"
	UploadEventFailed   UploadEventType = "upload.failed"
	UploadEventCanceled UploadEventType = "upload.canceled"
)

// UploadEvent is the wire form of a lifecycle notification
type UploadEvent struct {
	Type     UploadEventType `json:"type"`
	UploadID uuid.UUID       `json:"upload_id"`
	RoomID   string          `json:"room_id"`
	FileName string          `json:"file_name"`
	Loaded   int64           `json:"loaded"`
	Total    int64           `json:"total"`
	Error    string          `json:"error,omitempty"`
}

// NewUploadEvent snapshots an upload record into an event
func NewUploadEvent(eventType UploadEventType, u *Upload) UploadEvent {
	loaded, total := u.Progress()
	return UploadEvent{
		Type:     eventType,
		UploadID: u.ID,
		RoomID:   u.RoomID,
		FileName: u.FileName,
		Loaded:   loaded,
		Total:    total,
	}
}

// FailureMessage builds the user-visible description for a failed upload,
// distinguishing the store's size rejection from generic transport failures.
func FailureMessage(fileName string, err error) string {
	if errors.Is(err, ErrPayloadTooLarge) {
		return fmt.Sprintf("The file '%s' exceeds the size limit for uploads", fileName)
	}
	return fmt.Sprintf("The file '%s' failed to upload", fileName)
}
