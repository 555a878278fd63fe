package shared_test

import (
	"context"
	"testing"
	"time"

	"travel_atlas/internal/shared"
)

func TestBackoff_Bounds(t *testing.T) {
	for i := 0; i < 4; i++ {
		base := time.Duration(1<<i) * 200 * time.Millisecond
		for n := 0; n < 20; n++ {
			d := shared.Backoff(i)
			if d < base || d > base+base/2 {
				t.Fatalf("attempt %d: %s outside [%s, %s]", i, d, base, base+base/2)
			}
		}
	}
}

func TestSleepCtx_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	if shared.SleepCtx(ctx, time.Minute) {
		t.Fatalf("expected early return on canceled context")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("sleep did not return promptly")
	}
	if !shared.SleepCtx(context.Background(), time.Millisecond) {
		t.Fatalf("expected completed sleep")
	}
}
