// Package crawl walks a parent collection and its children with a fixed
// pause every few parents, for read-only reports that must stay under the
// store's request quotas.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"travel_atlas/internal/adapters/observability"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
)

const (
	DefaultEvery = 10
	DefaultDelay = 2 * time.Second
)

type Config struct {
	ParentCollection string
	ChildCollection  string
	// Every is the number of successfully processed parents between pauses.
	Every int
	Delay time.Duration
	// RPS caps child queries per second when positive.
	RPS float64
	// Limit caps the children read per parent when positive.
	Limit int
}

// Visit is called once per parent with its children.
type Visit func(ctx context.Context, parent domain.Document, children []domain.Document) error

// Failure is a parent whose children could not be read or visited.
type Failure struct {
	Parent domain.DocRef
	Err    error
}

type Result struct {
	Parents   int
	Processed int
	Pauses    int
	Failures  []Failure
}

type Crawler struct {
	store   domain.DocumentStore
	cfg     Config
	limiter *rate.Limiter
	log     zerolog.Logger
	sleep   func(ctx context.Context, d time.Duration) bool
}

func New(store domain.DocumentStore, cfg Config, logger zerolog.Logger) *Crawler {
	if cfg.ParentCollection == "" {
		cfg.ParentCollection = domain.CitiesCollection
	}
	if cfg.ChildCollection == "" {
		cfg.ChildCollection = domain.AttractionsCollection
	}
	if cfg.Every <= 0 {
		cfg.Every = DefaultEvery
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	c := &Crawler{
		store: store,
		cfg:   cfg,
		log:   logger.With().Str("component", "crawl").Logger(),
		sleep: shared.SleepCtx,
	}
	if cfg.RPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return c
}

// Crawl lists the parents, then reads and visits each parent's children in
// order. A parent that fails is logged and recorded, and the crawl moves on.
// Only a failed parent listing or a canceled context ends the crawl early.
func (c *Crawler) Crawl(ctx context.Context, visit Visit) (Result, error) {
	parents, err := c.store.ListParents(ctx, c.cfg.ParentCollection)
	if err != nil {
		return Result{}, fmt.Errorf("list %s: %w", c.cfg.ParentCollection, err)
	}
	res := Result{Parents: len(parents)}
	c.log.Info().Int("parents", len(parents)).Msg("crawl started")

	for i, p := range parents {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := c.visit(ctx, p, visit); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			c.log.Error().Str("parent", p.Ref.Path()).Err(err).Msg("parent failed, continuing")
			res.Failures = append(res.Failures, Failure{Parent: p.Ref, Err: err})
			observability.ObserveCrawlParent(err)
			continue
		}
		observability.ObserveCrawlParent(nil)
		res.Processed++

		if res.Processed%c.cfg.Every == 0 && i < len(parents)-1 && c.cfg.Delay > 0 {
			c.log.Info().
				Int("processed", res.Processed).
				Int("parents", len(parents)).
				Dur("delay", c.cfg.Delay).
				Msg("pausing")
			res.Pauses++
			observability.ObserveCrawlPause()
			if !c.sleep(ctx, c.cfg.Delay) {
				return res, ctx.Err()
			}
		}
	}
	c.log.Info().
		Int("processed", res.Processed).
		Int("failed", len(res.Failures)).
		Msg("crawl finished")
	return res, nil
}

func (c *Crawler) visit(ctx context.Context, p domain.Document, visit Visit) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	children, err := c.store.ListChildren(ctx, p.Ref, c.cfg.ChildCollection)
	if err != nil {
		return fmt.Errorf("list %s: %w", c.cfg.ChildCollection, err)
	}
	if c.cfg.Limit > 0 && len(children) > c.cfg.Limit {
		children = children[:c.cfg.Limit]
	}
	return visit(ctx, p, children)
}
