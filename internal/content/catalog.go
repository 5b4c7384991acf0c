package content

import (
	"context"
	"errors"
	"sync"

	"github.com/insightexus/site/internal/metrics"
	"go.uber.org/zap"
)

// ReloadFunc is called with every snapshot before the catalog installs it.
// A returned error keeps the previous snapshot in place.
type ReloadFunc func(ctx context.Context, snap *Snapshot) error

// Catalog holds the current content snapshot and reloads it from disk on demand.
type Catalog struct {
	loader *Loader
	logger *zap.Logger

	// reloadMu serializes Reload and Subscribe so an older load never lands after a newer one.
	reloadMu sync.Mutex

	mu          sync.RWMutex
	snap        *Snapshot
	subscribers []ReloadFunc
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCatalog returns a catalog reading from dir. Call Reload before serving.
func NewCatalog(dir string, opts ...Option) *Catalog {
	c := &Catalog{
		loader: NewLoader(dir),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the content directory.
func (c *Catalog) Dir() string { return c.loader.Dir() }

// Subscribe registers fn to receive each newly loaded snapshot.
// If a snapshot is already loaded, fn is called with it immediately and its error returned.
func (c *Catalog) Subscribe(ctx context.Context, fn ReloadFunc) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	c.mu.Lock()
	c.subscribers = append(c.subscribers, fn)
	snap := c.snap
	c.mu.Unlock()
	if snap != nil {
		return fn(ctx, snap)
	}
	return nil
}

// Reload reads every content file, hands the result to the subscribers, and installs
// it. If loading or any subscriber fails the previous snapshot stays in place and the
// error is returned. Concurrent reloads run one at a time.
func (c *Catalog) Reload(ctx context.Context) error {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	snap, err := c.loader.Load()
	if err != nil {
		metrics.RecordReload("error")
		c.logger.Error("content reload failed", zap.String("dir", c.loader.Dir()), zap.Error(err))
		return err
	}
	if snap.Skipped > 0 {
		c.logger.Warn("malformed content entries skipped", zap.Int("count", snap.Skipped))
	}

	c.mu.RLock()
	subs := append([]ReloadFunc(nil), c.subscribers...)
	c.mu.RUnlock()

	var errs []error
	for _, fn := range subs {
		if err := fn(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		metrics.RecordReload("error")
		c.logger.Error("content reload rejected by subscriber", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	metrics.RecordReload("ok")
	c.logger.Info("content loaded",
		zap.Int("articles", len(snap.Articles)),
		zap.Int("case_studies", len(snap.CaseStudies)),
		zap.Int("offerings", len(snap.Offerings)))
	return nil
}

// Snapshot returns the current snapshot, or an empty one if nothing has loaded yet.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return &Snapshot{}
	}
	return c.snap
}

// Loaded reports whether a snapshot has been installed.
func (c *Catalog) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap != nil
}
