package port

import "context"

// MediaConfigProvider is an interface to define the cached store upload policy
type MediaConfigProvider interface {
	// UploadLimit returns the cached limit without a network call. ok is
	// false while the limit is unknown or the store declares none.
	UploadLimit() (limit int64, ok bool)
	// EnsureFetched populates the cache if needed. Concurrent callers share
	// one outstanding fetch. Fetch failures degrade to "no limit".
	EnsureFetched(ctx context.Context)
	// Invalidate resets the cache after a store-side size rejection so the
	// next EnsureFetched re-queries.
	Invalidate()
}
