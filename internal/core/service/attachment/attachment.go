package attachment

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"log/slog"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"
)

const (
	keySize = 32
	ivSize  = 16
	// Only the first 8 IV bytes are random; the rest is the CTR counter.
	ivRandomSize = 8

	encryptedVersion     = "v2"
	encryptedContentType = "application/octet-stream"
)

type uploader struct {
	store  port.ContentStore
	crypto port.EncryptionOracle
	logger *slog.Logger
}

// NewUploader creates the attachment upload layer sitting between the
// pipeline and the content store.
func NewUploader(store port.ContentStore, crypto port.EncryptionOracle, logger *slog.Logger) port.AttachmentUploader {
	return &uploader{store: store, crypto: crypto, logger: logger}
}

// Upload pushes a payload to the content store. For confidential rooms the
// payload is encrypted first and neither the plaintext MIME type nor the
// filename is declared to the store.
func (u *uploader) Upload(ctx context.Context, roomID string, payload []byte, contentType, filename string, progress port.ProgressFunc) (*domain.Attachment, error) {
	if !u.crypto.IsRoomEncrypted(roomID) {
		locator, err := u.store.UploadBytes(ctx, payload, port.UploadOptions{
			ContentType: contentType,
			Filename:    filename,
			Progress:    progress,
		})
		if err != nil {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, domain.ErrUploadCanceled
		}
		return &domain.Attachment{URL: locator}, nil
	}

	if ctx.Err() != nil {
		return nil, domain.ErrUploadCanceled
	}

	encrypted, err := encrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt attachment: %w", err)
	}

	// A cancel that landed during encryption must still stop the upload.
	if ctx.Err() != nil {
		return nil, domain.ErrUploadCanceled
	}

	locator, err := u.store.UploadBytes(ctx, encrypted.ciphertext, port.UploadOptions{
		ContentType: encryptedContentType,
		Progress:    progress,
	})
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, domain.ErrUploadCanceled
	}

	return &domain.Attachment{File: encrypted.bundle(locator)}, nil
}

type encryptedPayload struct {
	ciphertext []byte
	key        []byte
	iv         []byte
}

// encrypt seals the payload with a fresh AES-256-CTR key. The IV is 8 random
// bytes followed by a zero counter block.
func encrypt(plaintext []byte) (*encryptedPayload, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv[:ivRandomSize]); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	ciphertext := make([]byte, len(plaintext))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, plaintext)

	return &encryptedPayload{ciphertext: ciphertext, key: key, iv: iv}, nil
}

// bundle assembles the decryption material an authorized recipient needs
func (e *encryptedPayload) bundle(locator string) *domain.EncryptedFile {
	digest := sha256.Sum256(e.ciphertext)

	return &domain.EncryptedFile{
		URL: locator,
		Key: domain.JSONWebKey{
			KeyType:     "oct",
			KeyOps:      []string{"encrypt", "decrypt"},
			Algorithm:   "A256CTR",
			Key:         base64.RawURLEncoding.EncodeToString(e.key),
			Extractable: true,
		},
		IV: base64.RawStdEncoding.EncodeToString(e.iv),
		Hashes: map[string]string{
			"sha256": base64.RawStdEncoding.EncodeToString(digest[:]),
		},
		Version: encryptedVersion,
	}
}

// Decrypt reverses Upload's encryption given the recipient bundle. It
// verifies the ciphertext hash before decrypting.
func Decrypt(ciphertext []byte, file *domain.EncryptedFile) ([]byte, error) {
	expected, ok := file.Hashes["sha256"]
	if !ok {
		return nil, fmt.Errorf("missing sha256 hash")
	}
	digest := sha256.Sum256(ciphertext)
	if base64.RawStdEncoding.EncodeToString(digest[:]) != expected {
		return nil, fmt.Errorf("ciphertext hash mismatch")
	}

	key, err := base64.RawURLEncoding.DecodeString(file.Key.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	iv, err := base64.RawStdEncoding.DecodeString(file.IV)
	if err != nil {
		return nil, fmt.Errorf("invalid iv: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}
