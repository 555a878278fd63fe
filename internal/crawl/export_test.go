package crawl

import (
	"context"
	"time"
)

// SetSleep replaces the pause function in tests.
func (c *Crawler) SetSleep(f func(ctx context.Context, d time.Duration) bool) { c.sleep = f }
