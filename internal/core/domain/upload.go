package domain

import (
	"sync"

	"github.com/google/uuid"
)

// Upload is the per-file bookkeeping entity for an in-flight attachment send.
// Identity fields are immutable after creation; progress and cancellation
// state are mutated concurrently by the pipeline and by cancel requests, so
// they are guarded by a mutex. Observers receive read access only.
type Upload struct {
	ID       uuid.UUID
	RoomID   string
	Relation *Relation
	FileName string

	mu       sync.Mutex
	loaded   int64
	total    int64
	canceled bool
	abort    func()
}

// NewUpload creates a record for a file accepted into the send queue.
// The abort func interrupts in-flight network operations for this record.
func NewUpload(roomID string, relation *Relation, fileName string, size int64, abort func()) *Upload {
	return &Upload{
		ID:       uuid.New(),
		RoomID:   roomID,
		Relation: relation,
		FileName: fileName,
		total:    size,
		abort:    abort,
	}
}

// Progress returns bytes transferred so far and bytes expected
func (u *Upload) Progress() (loaded, total int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.loaded, u.total
}

// SetProgress records a progress callback. Total never decreases and loaded
// never exceeds the known total.
func (u *Upload) SetProgress(loaded, total int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if total > u.total {
		u.total = total
	}
	if loaded > u.total {
		loaded = u.total
	}
	u.loaded = loaded
}

// Canceled reports whether cancellation has been requested
func (u *Upload) Canceled() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.canceled
}

// Cancel marks the record canceled and fires its abort handle. It is
// idempotent: only the first call returns true.
func (u *Upload) Cancel() bool {
	u.mu.Lock()
	if u.canceled {
		u.mu.Unlock()
		return false
	}
	u.canceled = true
	abort := u.abort
	u.mu.Unlock()

	if abort != nil {
		abort()
	}
	return true
}
