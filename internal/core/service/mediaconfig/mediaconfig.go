package mediaconfig

import (
	"context"
	"log/slog"
	"sync"

	"mediasend/internal/core/domain"
	"mediasend/internal/core/port"

	"golang.org/x/sync/singleflight"
)

type cache struct {
	store  port.ContentStore
	logger *slog.Logger

	mu    sync.RWMutex
	cfg   *domain.MediaConfig // nil = unknown, not yet fetched
	group singleflight.Group
}

// NewCache creates a media config cache scoped to one store connection.
// Construct a fresh cache when the session changes.
func NewCache(store port.ContentStore, logger *slog.Logger) port.MediaConfigProvider {
	return &cache{store: store, logger: logger}
}

// UploadLimit returns the cached limit without a network call
func (c *cache) UploadLimit() (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cfg == nil || c.cfg.MaxUploadSize == nil {
		return 0, false
	}
	return *c.cfg.MaxUploadSize, true
}

// EnsureFetched populates the cache if it is unknown. Concurrent callers are
// coalesced into a single outstanding store query. A fetch failure degrades
// to "no limit" so callers are never blocked; the store still enforces its
// limit authoritatively on upload.
func (c *cache) EnsureFetched(ctx context.Context) {
	c.mu.RLock()
	fetched := c.cfg != nil
	c.mu.RUnlock()
	if fetched {
		return
	}

	c.group.Do("media-config", func() (any, error) {
		// Re-check: a caller that lost the singleflight race may land here
		// after the winning fetch already populated the cache.
		c.mu.RLock()
		fetched := c.cfg != nil
		c.mu.RUnlock()
		if fetched {
			return nil, nil
		}

		c.logger.Info("fetching media config")
		cfg, err := c.store.GetMediaConfig(ctx)
		if err != nil {
			c.logger.Warn("could not fetch media config, not limiting uploads", "error", err)
			cfg = &domain.MediaConfig{}
		}

		c.mu.Lock()
		c.cfg = cfg
		c.mu.Unlock()
		return nil, nil
	})
}

// Invalidate resets the cache to unknown
func (c *cache) Invalidate() {
	c.mu.Lock()
	c.cfg = nil
	c.mu.Unlock()
}
