package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// sweepSlack keeps the sweep from firing right before a batch of entries expires.
const sweepSlack = 5 * time.Second

// SweepInterval returns how often expired entries are reclaimed: TTL plus a
// few seconds, but never more often than floor.
func SweepInterval(ttl, floor time.Duration) time.Duration {
	return max(floor, ttl+sweepSlack)
}

// Run purges expired entries every interval until ctx is done.
// Reads enforce expiry on their own; the sweep only bounds memory.
func (c *TTLCache[K, V]) Run(ctx context.Context, interval time.Duration, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastEvictions int64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.PurgeExpired(); n > 0 {
				logger.Info("cleared expired audio from cache", zap.Int("count", n))
			}
			if ev := c.Evictions(); ev != lastEvictions {
				logger.Warn("audio cache evicted live entries to stay within capacity",
					zap.Int64("evicted", ev-lastEvictions))
				lastEvictions = ev
			}
		}
	}
}
