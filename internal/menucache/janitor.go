package menucache

import (
	"context"
	"time"

	"github.com/leonardcser/uipath-mcp/internal/logger"
)

// RunJanitor calls Cleanup every interval until ctx is done.
func (c *Cache) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := c.Cleanup(); n > 0 {
				logger.Infof("Menu cache janitor removed %d expired entries", n)
			}
		}
	}
}
