package docsql

import (
	"context"
	"time"

	"github.com/fatih/color"
)

type beginKey struct{}

// Hooks prints statements slower than Threshold. Wrap a driver with
// sqlhooks.Wrap(drv, &Hooks{...}) to install it.
type Hooks struct {
	Threshold time.Duration
}

func (h *Hooks) Before(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	return context.WithValue(ctx, beginKey{}, time.Now()), nil
}

func (h *Hooks) After(ctx context.Context, query string, args ...interface{}) (context.Context, error) {
	begin, ok := ctx.Value(beginKey{}).(time.Time)
	if !ok {
		return ctx, nil
	}
	if d := time.Since(begin); h.Threshold > 0 && d > h.Threshold {
		color.Red("%v slow sql: %s %q took: %s\n", time.Now().Format(time.RFC3339), query, args, d)
	}
	return ctx, nil
}
