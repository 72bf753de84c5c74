package send

import (
	"context"
	"errors"
	"strings"

	"mediasend/internal/core/domain"
)

// SendFileToRoom runs the full per-file pipeline: classification, optional
// thumbnail, encrypted upload, the ordering barrier, and the message send.
// It returns once the message has been handed to the send layer or the
// record has settled as failed or canceled.
func (s *sendService) SendFileToRoom(ctx context.Context, file domain.File, roomID string, relation *domain.Relation, replyTo string, prev <-chan struct{}) error {
	content := &domain.MessageContent{
		Body:    file.DisplayName(),
		MsgType: domain.MessageTypeFile, // set more specifically during processing
		Info: domain.MediaInfo{
			Size:     file.Size,
			MimeType: file.ContentType,
		},
		Relation: relation,
		ReplyTo:  replyTo,
	}

	recCtx, abort := context.WithCancel(ctx)
	defer abort()

	rec := domain.NewUpload(roomID, relation, file.DisplayName(), file.Size, abort)
	s.register(rec)
	defer s.unregister(rec)

	s.notifier.UploadStarted(rec)

	err := s.process(recCtx, rec, file, content, prev)
	switch {
	case err == nil:
		s.notifier.UploadFinished(rec)
		return nil
	case errors.Is(err, domain.ErrUploadCanceled) || rec.Canceled():
		// User-initiated outcome, not a fault. A cancel that lands while a
		// network call is in flight surfaces as that call's transport error,
		// so the record state decides, not the error. Notify at most once.
		if rec.Cancel() {
			s.notifier.UploadCanceled(rec)
		}
		return domain.ErrUploadCanceled
	default:
		if errors.Is(err, domain.ErrPayloadTooLarge) {
			// The store rejected a file the advertised limit let through;
			// drop the cached limit so the next attempt re-queries.
			s.policy.Invalidate()
		}
		s.logger.Error("upload failed", "file", rec.FileName, "error", err)
		s.notifier.UploadFailed(rec, err)
		return err
	}
}

func (s *sendService) process(ctx context.Context, rec *domain.Upload, file domain.File, content *domain.MessageContent, prev <-chan struct{}) error {
	switch {
	case strings.HasPrefix(file.ContentType, "image/"):
		content.MsgType = domain.MessageTypeImage
		if err := s.attachImageInfo(ctx, rec, file, content); err != nil {
			if errors.Is(err, domain.ErrUploadCanceled) {
				return err
			}
			// Failed to thumbnail, fall back to sending a plain file
			s.logger.Warn("image processing failed", "file", rec.FileName, "error", err)
			content.MsgType = domain.MessageTypeFile
		}
	case strings.HasPrefix(file.ContentType, "audio/"):
		content.MsgType = domain.MessageTypeAudio
	case strings.HasPrefix(file.ContentType, "video/"):
		content.MsgType = domain.MessageTypeVideo
		if err := s.attachVideoInfo(ctx, rec, file, content); err != nil {
			if errors.Is(err, domain.ErrUploadCanceled) {
				return err
			}
			s.logger.Warn("video processing failed", "file", rec.FileName, "error", err)
			content.MsgType = domain.MessageTypeFile
		}
	}

	if canceled(ctx, rec) {
		return domain.ErrUploadCanceled
	}

	att, err := s.attach.Upload(ctx, rec.RoomID, file.Data, file.ContentType, file.Name, func(loaded, total int64) {
		rec.SetProgress(loaded, total)
		s.notifier.UploadProgress(rec)
	})
	if err != nil {
		return err
	}
	content.URL = att.URL
	content.File = att.File

	if canceled(ctx, rec) {
		return domain.ErrUploadCanceled
	}

	// Ordering barrier: upload work above runs concurrently across files,
	// only the message send waits for the previous file's send to settle.
	if prev != nil {
		select {
		case <-prev:
		case <-ctx.Done():
			return domain.ErrUploadCanceled
		}
	}

	if canceled(ctx, rec) {
		return domain.ErrUploadCanceled
	}

	_, err = s.sender.SendMessage(ctx, rec.RoomID, content.Relation.ThreadID(), content)
	return err
}

// attachImageInfo decodes the image, generates a thumbnail plus blurhash and
// uploads the thumbnail when the size heuristic approves it. Dimensions and
// blurhash are attached regardless of whether the thumbnail is kept.
func (s *sendService) attachImageInfo(ctx context.Context, rec *domain.Upload, file domain.File, content *domain.MessageContent) error {
	src, err := s.decoder.Decode(ctx, file)
	if err != nil {
		return err
	}

	thumbnailType := "image/png"
	if file.ContentType == "image/jpeg" {
		thumbnailType = "image/jpeg"
	}

	thumb, err := s.thumbs.Generate(ctx, src, thumbnailType)
	if err != nil {
		return err
	}

	content.Info.Width = thumb.SourceWidth
	content.Info.Height = thumb.SourceHeight
	content.Info.Blurhash = thumb.Blurhash

	if !s.thumbnailWorthUploading(file, thumb) {
		return nil
	}

	return s.uploadThumbnail(ctx, rec, thumb, content)
}

// attachVideoInfo extracts a poster frame and always uploads it
func (s *sendService) attachVideoInfo(ctx context.Context, rec *domain.Upload, file domain.File, content *domain.MessageContent) error {
	src, err := s.decoder.Decode(ctx, file)
	if err != nil {
		return err
	}

	thumb, err := s.thumbs.Generate(ctx, src, "image/jpeg")
	if err != nil {
		return err
	}

	content.Info.Width = thumb.SourceWidth
	content.Info.Height = thumb.SourceHeight
	content.Info.Blurhash = thumb.Blurhash

	return s.uploadThumbnail(ctx, rec, thumb, content)
}

func (s *sendService) uploadThumbnail(ctx context.Context, rec *domain.Upload, thumb *domain.Thumbnail, content *domain.MessageContent) error {
	att, err := s.attach.Upload(ctx, rec.RoomID, thumb.Data, thumb.ContentType, "", nil)
	if err != nil {
		return err
	}

	content.Info.ThumbnailURL = att.URL
	content.Info.ThumbnailFile = att.File
	content.Info.ThumbnailInfo = &domain.ThumbnailInfo{
		MimeType: thumb.ContentType,
		Size:     int64(len(thumb.Data)),
		Width:    thumb.Width,
		Height:   thumb.Height,
	}
	return nil
}

// thumbnailWorthUploading decides whether a generated image thumbnail earns
// its upload: the source must not be tiny and the thumbnail must beat it by
// both the absolute and the relative floor. Types in the always-include set
// keep their thumbnail unconditionally.
func (s *sendService) thumbnailWorthUploading(file domain.File, thumb *domain.Thumbnail) bool {
	for _, contentType := range alwaysIncludeThumbnail {
		if file.ContentType == contentType {
			return true
		}
	}

	if file.Size <= imageSizeThresholdThumbnail {
		return false
	}
	reduction := file.Size - int64(len(thumb.Data))
	return reduction > imageThumbnailMinReductionSize &&
		float64(reduction) > float64(file.Size)*imageThumbnailMinReductionPercent
}
