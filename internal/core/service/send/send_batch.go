package send

import (
	"context"
	"errors"
	"sync"

	"mediasend/internal/core/domain"
)

// SendFilesToRoom partitions the batch against the size policy, runs the
// caller's confirmation checkpoints and pipelines the accepted files
// concurrently. Each file's message send is chained behind the previous
// file's, so messages arrive in submission order no matter how the upload
// work interleaves. The call returns once every accepted file has settled.
func (s *sendService) SendFilesToRoom(ctx context.Context, files []domain.File, roomID string, relation *domain.Relation, replyTo string) error {
	s.policy.EnsureFetched(ctx)

	var okFiles, tooBigFiles []domain.File
	for _, file := range files {
		if s.isFileSizeAcceptable(file) {
			okFiles = append(okFiles, file)
		} else {
			tooBigFiles = append(tooBigFiles, file)
		}
	}

	if len(tooBigFiles) > 0 {
		proceed, err := s.confirm.ConfirmOversized(ctx, tooBigFiles, len(files))
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}

	var (
		wg        sync.WaitGroup
		uploadAll bool
		prev      <-chan struct{}

		errMu sync.Mutex
		errs  []error
	)

	for i, file := range okFiles {
		if !uploadAll {
			proceed, all, err := s.confirm.ConfirmUpload(ctx, file, i, len(okFiles))
			if err != nil || !proceed {
				// Declining one file stops asking for the rest, but files
				// already chained still send in order.
				break
			}
			uploadAll = all
		}

		done := make(chan struct{})
		wg.Add(1)
		go func(file domain.File, prev <-chan struct{}, done chan<- struct{}) {
			defer wg.Done()
			defer close(done)
			err := s.SendFileToRoom(ctx, file, roomID, relation, replyTo, prev)
			if err != nil && !errors.Is(err, domain.ErrUploadCanceled) {
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
			}
		}(file, prev, done)
		prev = done
	}

	wg.Wait()
	return errors.Join(errs...)
}
