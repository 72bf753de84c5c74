package domain

// RelationTypeThread is the relation type scoping an upload to a thread
const RelationTypeThread = "m.thread"

// Relation is a structured reference from the outgoing message to another event
type Relation struct {
	Type    string `json:"rel_type"`
	EventID string `json:"event_id"`
}

// ThreadID returns the thread root event ID, or "" if the relation is not a thread
func (r *Relation) ThreadID() string {
	if r != nil && r.Type == RelationTypeThread {
		return r.EventID
	}
	return ""
}

// Matches reports whether both relation type and target event match exactly
func (r *Relation) Matches(other *Relation) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	return r.Type == other.Type && r.EventID == other.EventID
}

// JSONWebKey carries the attachment key in JWK form
type JSONWebKey struct {
	KeyType     string   `json:"kty"`
	KeyOps      []string `json:"key_ops"`
	Algorithm   string   `json:"alg"`
	Key         string   `json:"k"`
	Extractable bool     `json:"ext"`
}

// EncryptedFile bundles a ciphertext locator with everything an authorized
// recipient needs to decrypt it.
type EncryptedFile struct {
	URL     string            `json:"url"`
	Key     JSONWebKey        `json:"key"`
	IV      string            `json:"iv"`
	Hashes  map[string]string `json:"hashes"`
	Version string            `json:"v"`
}

// Attachment is the result of pushing a payload through the encryption layer:
// exactly one of URL (plaintext room) or File (confidential room) is set.
type Attachment struct {
	URL  string
	File *EncryptedFile
}

// ThumbnailInfo describes the raster metadata of an uploaded thumbnail
type ThumbnailInfo struct {
	MimeType string `json:"mimetype"`
	Size     int64  `json:"size"`
	Width    int    `json:"w"`
	Height   int    `json:"h"`
}

// MediaInfo is the media metadata attached to an outgoing message
type MediaInfo struct {
	MimeType      string         `json:"mimetype,omitempty"`
	Size          int64          `json:"size"`
	Width         int            `json:"w,omitempty"`
	Height        int            `json:"h,omitempty"`
	Duration      int64          `json:"duration,omitempty"`
	Blurhash      string         `json:"xyz.amorgan.blurhash,omitempty"`
	ThumbnailURL  string         `json:"thumbnail_url,omitempty"`
	ThumbnailFile *EncryptedFile `json:"thumbnail_file,omitempty"`
	ThumbnailInfo *ThumbnailInfo `json:"thumbnail_info,omitempty"`
}

// MessageContent is the outgoing room message for one uploaded file
type MessageContent struct {
	Body     string         `json:"body"`
	MsgType  MessageType    `json:"msgtype"`
	Info     MediaInfo      `json:"info"`
	URL      string         `json:"url,omitempty"`
	File     *EncryptedFile `json:"file,omitempty"`
	Relation *Relation      `json:"m.relates_to,omitempty"`
	ReplyTo  string         `json:"reply_to,omitempty"`
}

// Thumbnail is a generated downscaled rendition of an image or video frame
type Thumbnail struct {
	Data         []byte
	ContentType  string
	Width        int
	Height       int
	SourceWidth  int
	SourceHeight int
	Blurhash     string
}

// MediaConfig is the store-declared upload policy. A nil MaxUploadSize means
// the store declares no limit.
type MediaConfig struct {
	MaxUploadSize *int64
}
