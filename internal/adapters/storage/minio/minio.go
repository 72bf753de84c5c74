package minio

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"mediasend/internal/config"
	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is a content-store adapter for minio. Objects are addressed by the
// SHA-256 of their payload, so re-uploading identical bytes is idempotent.
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// UploadBytes streams the payload to the bucket and returns its locator.
// Progress is reported as bytes are transmitted. A store-side size rejection
// maps to domain.ErrPayloadTooLarge and an aborted context to
// domain.ErrUploadCanceled; success is never reported after an abort.
func (a *Adapter) UploadBytes(ctx context.Context, payload []byte, opts port.UploadOptions) (string, error) {
	digest := sha256.Sum256(payload)
	objectKey := hex.EncodeToString(digest[:])

	contentType := opts.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	putOpts := minio.PutObjectOptions{
		ContentType: contentType,
	}
	if opts.Filename != "" {
		putOpts.UserMetadata = map[string]string{"Filename": opts.Filename}
	}
	if opts.Progress != nil {
		putOpts.Progress = &progressReader{total: int64(len(payload)), report: opts.Progress}
	}

	_, err := a.client.PutObject(ctx, a.config.BucketName, objectKey, bytes.NewReader(payload), int64(len(payload)), putOpts)
	if err != nil {
		return "", a.mapError(err)
	}
	if ctx.Err() != nil {
		// The transfer may have raced the abort; the abort wins.
		return "", domain.ErrUploadCanceled
	}

	return fmt.Sprintf("store://%s/%s", a.config.BucketName, objectKey), nil
}

// GetMediaConfig probes the store and reports its declared upload limit.
// A zero configured limit reads as "no declared limit".
func (a *Adapter) GetMediaConfig(ctx context.Context) (*domain.MediaConfig, error) {
	probeCtx, cancel := context.WithTimeout(ctx, a.config.ProbeTimeout)
	defer cancel()

	if _, err := a.client.BucketExists(probeCtx, a.config.BucketName); err != nil {
		return nil, fmt.Errorf("failed to probe store: %w", err)
	}

	if a.config.MaxUploadSize <= 0 {
		return &domain.MediaConfig{}, nil
	}
	limit := a.config.MaxUploadSize
	return &domain.MediaConfig{MaxUploadSize: &limit}, nil
}

func (a *Adapter) mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return domain.ErrUploadCanceled
	}

	resp := minio.ToErrorResponse(err)
	if resp.Code == "EntityTooLarge" || resp.StatusCode == http.StatusRequestEntityTooLarge {
		return fmt.Errorf("%w: %s", domain.ErrPayloadTooLarge, resp.Code)
	}
	return fmt.Errorf("failed to upload object: %w", err)
}

// progressReader is handed to minio as the Progress option; minio reads from
// it exactly as many bytes as it has transmitted.
type progressReader struct {
	mu     sync.Mutex
	loaded int64
	total  int64
	report port.ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n := len(b)
	p.mu.Lock()
	p.loaded += int64(n)
	if p.loaded > p.total {
		p.loaded = p.total
	}
	loaded := p.loaded
	p.mu.Unlock()

	p.report(loaded, p.total)
	return n, nil
}
