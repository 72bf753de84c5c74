package storage

import (
	"context"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"github.com/stretchr/testify/mock"
)

// MockContentStore is a mock implementation of ContentStore
type MockContentStore struct {
	mock.Mock
}

// NewMockContentStore creates a new MockContentStore
func NewMockContentStore() *MockContentStore {
	return &MockContentStore{}
}

func (m *MockContentStore) UploadBytes(ctx context.Context, payload []byte, opts port.UploadOptions) (string, error) {
	args := m.Called(ctx, payload, opts)
	return args.String(0), args.Error(1)
}

func (m *MockContentStore) GetMediaConfig(ctx context.Context) (*domain.MediaConfig, error) {
	args := m.Called(ctx)
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*domain.MediaConfig), args.Error(1)
	}
	return nil, args.Error(1)
}
