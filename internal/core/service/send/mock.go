package send

import (
	"context"
	"sync"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSendService is a mock implementation of SendService
type MockSendService struct {
	mock.Mock
}

// NewMockSendService creates a new MockSendService
func NewMockSendService() *MockSendService {
	return &MockSendService{}
}

func (m *MockSendService) SendFilesToRoom(ctx context.Context, files []domain.File, roomID string, relation *domain.Relation, replyTo string) error {
	args := m.Called(ctx, files, roomID, relation, replyTo)
	return args.Error(0)
}

func (m *MockSendService) SendFileToRoom(ctx context.Context, file domain.File, roomID string, relation *domain.Relation, replyTo string, prev <-chan struct{}) error {
	args := m.Called(ctx, file, roomID, relation, replyTo, prev)
	return args.Error(0)
}

func (m *MockSendService) CurrentUploads(relation *domain.Relation) []*domain.Upload {
	args := m.Called(relation)
	return args.Get(0).([]*domain.Upload)
}

func (m *MockSendService) CancelUpload(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAttachmentUploader is a mock implementation of AttachmentUploader
type MockAttachmentUploader struct {
	mock.Mock
}

func NewMockAttachmentUploader() *MockAttachmentUploader {
	return &MockAttachmentUploader{}
}

func (m *MockAttachmentUploader) Upload(ctx context.Context, roomID string, payload []byte, contentType, filename string, progress port.ProgressFunc) (*domain.Attachment, error) {
	args := m.Called(ctx, roomID, payload, contentType, filename, progress)
	if att := args.Get(0); att != nil {
		return att.(*domain.Attachment), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockMessageSender is a mock implementation of MessageSender
type MockMessageSender struct {
	mock.Mock
}

func NewMockMessageSender() *MockMessageSender {
	return &MockMessageSender{}
}

func (m *MockMessageSender) SendMessage(ctx context.Context, roomID, threadID string, content *domain.MessageContent) (string, error) {
	args := m.Called(ctx, roomID, threadID, content)
	return args.String(0), args.Error(1)
}

// MockConfirmer is a mock implementation of UploadConfirmer
type MockConfirmer struct {
	mock.Mock
}

func NewMockConfirmer() *MockConfirmer {
	return &MockConfirmer{}
}

func (m *MockConfirmer) ConfirmOversized(ctx context.Context, tooBig []domain.File, totalFiles int) (bool, error) {
	args := m.Called(ctx, tooBig, totalFiles)
	return args.Bool(0), args.Error(1)
}

func (m *MockConfirmer) ConfirmUpload(ctx context.Context, file domain.File, index, totalFiles int) (bool, bool, error) {
	args := m.Called(ctx, file, index, totalFiles)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

// MockRasterDecoder is a mock implementation of RasterDecoder
type MockRasterDecoder struct {
	mock.Mock
}

func NewMockRasterDecoder() *MockRasterDecoder {
	return &MockRasterDecoder{}
}

func (m *MockRasterDecoder) Decode(ctx context.Context, file domain.File) (port.RasterSource, error) {
	args := m.Called(ctx, file)
	if src := args.Get(0); src != nil {
		return src.(port.RasterSource), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockThumbnailer is a mock implementation of Thumbnailer
type MockThumbnailer struct {
	mock.Mock
}

func NewMockThumbnailer() *MockThumbnailer {
	return &MockThumbnailer{}
}

func (m *MockThumbnailer) Generate(ctx context.Context, src port.RasterSource, mimeType string) (*domain.Thumbnail, error) {
	args := m.Called(ctx, src, mimeType)
	if thumb := args.Get(0); thumb != nil {
		return thumb.(*domain.Thumbnail), args.Error(1)
	}
	return nil, args.Error(1)
}

// StubMediaConfig is a MediaConfigProvider with a fixed limit
type StubMediaConfig struct {
	mu          sync.Mutex
	limit       int64
	known       bool
	invalidated int
}

func NewStubMediaConfig(limit int64, known bool) *StubMediaConfig {
	return &StubMediaConfig{limit: limit, known: known}
}

func (s *StubMediaConfig) UploadLimit() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limit, s.known
}

func (s *StubMediaConfig) EnsureFetched(ctx context.Context) {}

func (s *StubMediaConfig) Invalidate() {
	s.mu.Lock()
	s.known = false
	s.invalidated++
	s.mu.Unlock()
}

// Invalidations returns how many times Invalidate was called
func (s *StubMediaConfig) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// RecordingNotifier collects lifecycle notifications for assertions. It is a
// plain recorder rather than a testify mock because progress events arrive
// at unpredictable counts.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []domain.UploadEvent
	errs   map[uuid.UUID]error
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{errs: make(map[uuid.UUID]error)}
}

func (n *RecordingNotifier) record(eventType domain.UploadEventType, u *domain.Upload) {
	n.mu.Lock()
	n.events = append(n.events, domain.NewUploadEvent(eventType, u))
	n.mu.Unlock()
}

func (n *RecordingNotifier) UploadStarted(u *domain.Upload)  { n.record(domain.UploadEventStarted, u) }
func (n *RecordingNotifier) UploadProgress(u *domain.Upload) { n.record(domain.UploadEventProgress, u) }
func (n *RecordingNotifier) UploadFinished(u *domain.Upload) { n.record(domain.UploadEventFinished, u) }
func (n *RecordingNotifier) UploadCanceled(u *domain.Upload) { n.record(domain.UploadEventCanceled, u) }

func (n *RecordingNotifier) UploadFailed(u *domain.Upload, err error) {
	n.mu.Lock()
	n.errs[u.ID] = err
	n.mu.Unlock()
	n.record(domain.UploadEventFailed, u)
}

// Events returns a snapshot of the notifications seen so far
func (n *RecordingNotifier) Events() []domain.UploadEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.UploadEvent(nil), n.events...)
}

// EventsOfType filters the snapshot by event type
func (n *RecordingNotifier) EventsOfType(eventType domain.UploadEventType) []domain.UploadEvent {
	var filtered []domain.UploadEvent
	for _, ev := range n.Events() {
		if ev.Type == eventType {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// FailureError returns the error reported for an upload, if any
func (n *RecordingNotifier) FailureError(id uuid.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.errs[id]
}
