package domain

// MessageType represents the message subtype derived from a file's MIME type
type MessageType string

const (
	MessageTypeImage MessageType = "m.image"
	MessageTypeAudio MessageType = "m.audio"
	MessageTypeVideo MessageType = "m.video"
	MessageTypeFile  MessageType = "m.file"
)

// File is a user-selected file queued for sending into a room
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// DisplayName returns the file name, falling back to a generic label
func (f File) DisplayName() string {
	if f.Name == "" {
		return "Attachment"
	}
	return f.Name
}
