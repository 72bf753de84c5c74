package minio_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	adapter2 "mediasend/internal/adapters/storage/minio"
	"mediasend/internal/config"
	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAccessKey = "minioadmin"
	testSecretKey = "minioadmin"
	testBucket    = "test-bucket"
)

func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     testAccessKey,
			"MINIO_ROOT_PASSWORD": testSecretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
	}
	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := minioContainer.Host(ctx)
	require.NoError(t, err)

	port, err := minioContainer.MappedPort(ctx, "9000")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("%s:%s", host, port.Port())

	cleanup := func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	time.Sleep(500 * time.Millisecond) // wait for container to be up
	return endpoint, cleanup
}

func createAdapter(t *testing.T, endpoint string, ctx context.Context, maxUploadSize int64) *adapter2.Adapter {
	t.Helper()
	cfg := config.MinioConfig{
		Endpoint:      endpoint,
		AccessKey:     testAccessKey,
		SecretKey:     testSecretKey,
		BucketName:    testBucket,
		UseSSL:        false,
		MaxUploadSize: maxUploadSize,
		ProbeTimeout:  5 * time.Second,
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapter, err := adapter2.NewAdapter(ctx, cfg, discardLogger)

	require.NoError(t, err)
	require.NotNil(t, adapter)

	return adapter
}

func rawClient(t *testing.T, endpoint string) *miniogo.Client {
	t.Helper()
	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(testAccessKey, testSecretKey, ""),
		Secure: false,
	})
	require.NoError(t, err)
	return client
}

func TestUploadBytes(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx, 0)

	payload := bytes.Repeat([]byte("mediasend"), 1024)
	digest := sha256.Sum256(payload)
	expectedKey := hex.EncodeToString(digest[:])

	// Act
	locator, err := adapter.UploadBytes(ctx, payload, port.UploadOptions{
		ContentType: "text/plain",
		Filename:    "notes.txt",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("store://%s/%s", testBucket, expectedKey), locator)

	client := rawClient(t, endpoint)
	object, err := client.GetObject(ctx, testBucket, expectedKey, miniogo.GetObjectOptions{})
	require.NoError(t, err)
	defer object.Close()

	stored, err := io.ReadAll(object)
	require.NoError(t, err)
	assert.Equal(t, payload, stored)

	info, err := client.StatObject(ctx, testBucket, expectedKey, miniogo.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, "text/plain", info.ContentType)
	assert.Equal(t, "notes.txt", info.UserMetadata["Filename"])
}

func TestUploadBytes_SamePayloadSameLocator(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx, 0)

	payload := []byte("identical bytes land on the same object key")

	// Act
	first, err1 := adapter.UploadBytes(ctx, payload, port.UploadOptions{ContentType: "text/plain"})
	second, err2 := adapter.UploadBytes(ctx, payload, port.UploadOptions{ContentType: "text/plain"})

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestUploadBytes_DefaultsToOctetStream(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx, 0)

	payload := []byte{0x01, 0x02, 0x03, 0x04}
	digest := sha256.Sum256(payload)

	// Act
	_, err := adapter.UploadBytes(ctx, payload, port.UploadOptions{})

	// Assert
	require.NoError(t, err)

	client := rawClient(t, endpoint)
	info, err := client.StatObject(ctx, testBucket, hex.EncodeToString(digest[:]), miniogo.StatObjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", info.ContentType)
	assert.Empty(t, info.UserMetadata["Filename"])
}

func TestUploadBytes_ReportsProgress(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx, 0)

	payload := bytes.Repeat([]byte("x"), 256*1024)

	var mu sync.Mutex
	var reports [][2]int64
	progress := func(loaded, total int64) {
		mu.Lock()
		reports = append(reports, [2]int64{loaded, total})
		mu.Unlock()
	}

	// Act
	_, err := adapter.UploadBytes(ctx, payload, port.UploadOptions{
		ContentType: "application/octet-stream",
		Progress:    progress,
	})

	// Assert
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, reports)

	var prev int64
	for _, r := range reports {
		assert.Equal(t, int64(len(payload)), r[1])
		assert.GreaterOrEqual(t, r[0], prev, "loaded must not decrease")
		assert.LessOrEqual(t, r[0], r[1])
		prev = r[0]
	}
	assert.Equal(t, int64(len(payload)), reports[len(reports)-1][0])
}

func TestUploadBytes_CanceledContext(t *testing.T) {
	// Arrange
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	adapter := createAdapter(t, endpoint, context.Background(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	_, err := adapter.UploadBytes(ctx, []byte("never stored"), port.UploadOptions{})

	// Assert
	assert.ErrorIs(t, err, domain.ErrUploadCanceled)
}

func TestGetMediaConfig(t *testing.T) {
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("no declared limit", func(t *testing.T) {
		// Arrange
		adapter := createAdapter(t, endpoint, ctx, 0)

		// Act
		cfg, err := adapter.GetMediaConfig(ctx)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Nil(t, cfg.MaxUploadSize)
	})

	t.Run("declared limit", func(t *testing.T) {
		// Arrange
		adapter := createAdapter(t, endpoint, ctx, 1<<20)

		// Act
		cfg, err := adapter.GetMediaConfig(ctx)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, cfg.MaxUploadSize)
		assert.Equal(t, int64(1<<20), *cfg.MaxUploadSize)
	})
}
