package mssql

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/olusolaa/sqlschema-compare/internal/core/ports"
)

const maxQueriesPerSecond = 1000

// newThrottle returns nil when throttling is disabled.
func newThrottle(qps int, label string, logger ports.Logger) *rate.Limiter {
	if qps <= 0 {
		return nil
	}
	if qps > maxQueriesPerSecond {
		logger.Warnf(context.Background(), "Query rate %d for %s exceeds the maximum, using %d per second", qps, label, maxQueriesPerSecond)
		qps = maxQueriesPerSecond
	}
	logger.Debugf(context.Background(), "Throttling catalog queries on %s to %d per second", label, qps)
	return rate.NewLimiter(rate.Limit(qps), qps)
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() == nil {
			c.logger.Warnf(ctx, "Error waiting for query throttle on %s: %v", c.label, err)
		}
		return err
	}
	return nil
}
