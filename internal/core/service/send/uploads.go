package send

import (
	"mediasend/internal/core/domain"

	"github.com/google/uuid"
)

func (s *sendService) register(u *domain.Upload) {
	s.mu.Lock()
	s.inflight = append(s.inflight, u)
	s.mu.Unlock()
}

func (s *sendService) unregister(u *domain.Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.inflight {
		if candidate.ID == u.ID {
			s.inflight = append(s.inflight[:i], s.inflight[i+1:]...)
			return
		}
	}
}

// CurrentUploads returns the non-canceled in-flight records. A nil relation
// selects records with no relation; otherwise both relation type and target
// must match exactly.
func (s *sendService) CurrentUploads(relation *domain.Relation) []*domain.Upload {
	s.mu.Lock()
	defer s.mu.Unlock()

	var uploads []*domain.Upload
	for _, u := range s.inflight {
		if u.Canceled() {
			continue
		}
		if relation == nil {
			if u.Relation == nil {
				uploads = append(uploads, u)
			}
			continue
		}
		if u.Relation.Matches(relation) {
			uploads = append(uploads, u)
		}
	}
	return uploads
}

// CancelUpload fires the record's abort handle and marks it canceled. A
// second cancel of the same record is a no-op; a record that already settled
// is reported as not found.
func (s *sendService) CancelUpload(id uuid.UUID) error {
	s.mu.Lock()
	var target *domain.Upload
	for _, u := range s.inflight {
		if u.ID == id {
			target = u
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return domain.ErrUploadNotFound
	}
	if target.Cancel() {
		s.notifier.UploadCanceled(target)
	}
	return nil
}
