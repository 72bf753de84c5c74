package mediaconfig_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"mediasend/internal/adapters/storage"
	"mediasend/internal/core/domain"
	"mediasend/internal/core/service/mediaconfig"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func limit(v int64) *int64 { return &v }

func TestCache_EnsureFetched(t *testing.T) {
	t.Run("populates limit from store", func(t *testing.T) {
		// Arrange
		mockStore := storage.NewMockContentStore()
		mockStore.On("GetMediaConfig", mock.Anything).
			Return(&domain.MediaConfig{MaxUploadSize: limit(1024)}, nil).Once()

		cache := mediaconfig.NewCache(mockStore, discardLogger)

		_, known := cache.UploadLimit()
		assert.False(t, known)

		// Act
		cache.EnsureFetched(context.Background())

		// Assert
		got, known := cache.UploadLimit()
		assert.True(t, known)
		assert.Equal(t, int64(1024), got)
		mockStore.AssertExpectations(t)
	})

	t.Run("second call does not hit the store", func(t *testing.T) {
		mockStore := storage.NewMockContentStore()
		mockStore.On("GetMediaConfig", mock.Anything).
			Return(&domain.MediaConfig{MaxUploadSize: limit(1024)}, nil).Once()

		cache := mediaconfig.NewCache(mockStore, discardLogger)

		cache.EnsureFetched(context.Background())
		cache.EnsureFetched(context.Background())

		mockStore.AssertNumberOfCalls(t, "GetMediaConfig", 1)
	})

	t.Run("fetch failure degrades to no limit", func(t *testing.T) {
		mockStore := storage.NewMockContentStore()
		mockStore.On("GetMediaConfig", mock.Anything).
			Return(nil, errors.New("store unreachable")).Once()

		cache := mediaconfig.NewCache(mockStore, discardLogger)

		cache.EnsureFetched(context.Background())

		_, known := cache.UploadLimit()
		assert.False(t, known)
		// Failure is cached as "no limit", not retried on every call
		cache.EnsureFetched(context.Background())
		mockStore.AssertNumberOfCalls(t, "GetMediaConfig", 1)
	})

	t.Run("concurrent callers share one fetch", func(t *testing.T) {
		mockStore := storage.NewMockContentStore()
		mockStore.On("GetMediaConfig", mock.Anything).
			Run(func(args mock.Arguments) { time.Sleep(50 * time.Millisecond) }).
			Return(&domain.MediaConfig{MaxUploadSize: limit(1024)}, nil)

		cache := mediaconfig.NewCache(mockStore, discardLogger)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				cache.EnsureFetched(context.Background())
			}()
		}
		wg.Wait()

		mockStore.AssertNumberOfCalls(t, "GetMediaConfig", 1)
	})
}

func TestCache_Invalidate(t *testing.T) {
	// Arrange
	mockStore := storage.NewMockContentStore()
	mockStore.On("GetMediaConfig", mock.Anything).
		Return(&domain.MediaConfig{MaxUploadSize: limit(1024)}, nil).Twice()

	cache := mediaconfig.NewCache(mockStore, discardLogger)
	cache.EnsureFetched(context.Background())

	// Act
	cache.Invalidate()

	// Assert
	_, known := cache.UploadLimit()
	assert.False(t, known)

	cache.EnsureFetched(context.Background())
	_, known = cache.UploadLimit()
	assert.True(t, known)
	mockStore.AssertNumberOfCalls(t, "GetMediaConfig", 2)
}
