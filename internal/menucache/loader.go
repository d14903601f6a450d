package menucache

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/leonardcser/uipath-mcp/internal/logger"
	"github.com/leonardcser/uipath-mcp/internal/menu"
)

// Producer builds a fresh hierarchy for an application. *menu.Scanner
// implements it.
type Producer interface {
	Scan(ctx context.Context, appID string) (*menu.Hierarchy, error)
}

// Loader serves hierarchies from a Cache, scanning on a miss. Concurrent
// misses for the same application share one scan.
type Loader struct {
	cache    *Cache
	producer Producer
	flight   singleflight.Group
}

// NewLoader creates a Loader filling cache from producer.
func NewLoader(cache *Cache, producer Producer) *Loader {
	return &Loader{cache: cache, producer: producer}
}

// Load returns the hierarchy of appID, from the cache when fresh.
func (l *Loader) Load(ctx context.Context, appID string) (*menu.Hierarchy, error) {
	if h, ok := l.cache.Get(appID); ok {
		return h, nil
	}
	return l.scan(ctx, appID)
}

// Refresh scans appID unconditionally and replaces the cached hierarchy.
func (l *Loader) Refresh(ctx context.Context, appID string) (*menu.Hierarchy, error) {
	l.cache.Invalidate(appID)
	return l.scan(ctx, appID)
}

func (l *Loader) scan(ctx context.Context, appID string) (*menu.Hierarchy, error) {
	v, err, shared := l.flight.Do(appID, func() (any, error) {
		logger.Infof("Scanning menus of %s", appID)
		h, err := l.producer.Scan(ctx, appID)
		if err != nil {
			return nil, err
		}
		l.cache.Set(h, appID)
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debugf("Shared in-flight menu scan of %s", appID)
	}
	return v.(*menu.Hierarchy).Clone(), nil
}

// Cache returns the underlying cache.
func (l *Loader) Cache() *Cache { return l.cache }
