// Package backfill walks cities and their attractions and writes the derived
// Arabic fields (typeAr or descriptionAr) in bounded batches.
package backfill

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"travel_atlas/internal/classify"
	"travel_atlas/internal/describe"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
)

type Mode string

const (
	ModeTypes        Mode = "types"
	ModeDescriptions Mode = "descriptions"
)

// MaxBatchSize is the store's ceiling on writes per atomic commit.
const MaxBatchSize = 500

// ErrCommit wraps a batch commit that failed on every attempt.
var ErrCommit = errors.New("batch commit failed")

type Config struct {
	Mode             Mode
	ParentCollection string
	ChildCollection  string
	BatchSize        int
	CommitAttempts   int
	DryRun           bool
}

func (c *Config) applyDefaults() {
	if c.ParentCollection == "" {
		c.ParentCollection = domain.CitiesCollection
	}
	if c.ChildCollection == "" {
		c.ChildCollection = domain.AttractionsCollection
	}
	if c.BatchSize <= 0 || c.BatchSize > MaxBatchSize {
		c.BatchSize = MaxBatchSize
	}
	if c.CommitAttempts <= 0 {
		c.CommitAttempts = 3
	}
}

type Driver struct {
	store      domain.DocumentStore
	cfg        Config
	rep        Reporter
	log        zerolog.Logger
	classifier *classify.Classifier
	misses     *classify.Misses
	backoff    func(attempt int) time.Duration
}

// Option customises a Driver.
type Option func(*Driver)

// WithBackoff replaces the delay between commit attempts.
func WithBackoff(f func(attempt int) time.Duration) Option { return func(d *Driver) { d.backoff = f } }

func NewDriver(store domain.DocumentStore, cfg Config, rep Reporter, logger zerolog.Logger, opts ...Option) (*Driver, error) {
	if cfg.Mode != ModeTypes && cfg.Mode != ModeDescriptions {
		return nil, fmt.Errorf("unknown backfill mode %q", cfg.Mode)
	}
	cfg.applyDefaults()
	if rep == nil {
		rep = NopReporter{}
	}
	misses := classify.NewMisses()
	d := &Driver{
		store:      store,
		cfg:        cfg,
		rep:        rep,
		log:        logger.With().Str("component", "backfill").Str("mode", string(cfg.Mode)).Logger(),
		classifier: classify.New(misses),
		misses:     misses,
		backoff:    shared.Backoff,
	}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// Misses returns the types that fell through the classifier so far.
func (d *Driver) Misses() map[string]int { return d.misses.Snapshot() }

// run holds the state of one Run call.
type run struct {
	stats       Stats
	batch       domain.Batch
	batches     int
	total       int
	parents     int
	parentsDone int
}

// Run processes every child of every parent. It returns a non-nil error only
// for fatal conditions: enumeration failures and commits that failed on every
// attempt. Per-document problems are counted and the run continues.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	r := &run{stats: Stats{RunID: uuid.NewString(), Mode: d.cfg.Mode, DryRun: d.cfg.DryRun}}
	switch d.cfg.Mode {
	case ModeTypes:
		r.stats.Translated = map[string]int{}
		r.stats.Untranslated = map[string]int{}
	case ModeDescriptions:
		r.stats.TypeCounts = map[string]int{}
	}

	err := d.run(ctx, r)
	r.stats.Duration = time.Since(start)
	d.rep.RunFinished(r.stats, err)
	return r.stats, err
}

func (d *Driver) run(ctx context.Context, r *run) error {
	parents, err := d.store.ListParents(ctx, d.cfg.ParentCollection)
	if err != nil {
		return fmt.Errorf("list %s: %w", d.cfg.ParentCollection, err)
	}
	r.parents = len(parents)
	r.stats.Parents = len(parents)
	r.total = -1
	if c, ok := d.store.(domain.ChildCounter); ok {
		if n, err := c.CountAcrossParents(ctx, d.cfg.ChildCollection); err == nil {
			r.total = n
		} else {
			d.log.Warn().Err(err).Msg("count children failed; progress falls back to parents")
		}
	}
	d.rep.RunStarted(RunInfo{
		RunID:     r.stats.RunID,
		Mode:      d.cfg.Mode,
		DryRun:    d.cfg.DryRun,
		BatchSize: d.cfg.BatchSize,
		Parents:   r.parents,
		Total:     r.total,
	})

	r.batch = d.store.BeginBatch()
	for _, p := range parents {
		children, err := d.store.ListChildren(ctx, p.Ref, d.cfg.ChildCollection)
		if err != nil {
			return fmt.Errorf("list %s of %s: %w", d.cfg.ChildCollection, p.Ref.Path(), err)
		}
		d.rep.ParentStarted(p.Ref, len(children))
		for _, c := range children {
			d.process(r, c)
			if r.batch.Len() >= d.cfg.BatchSize {
				if err := d.flush(ctx, r); err != nil {
					return err
				}
			}
		}
		r.parentsDone++
		if r.batch.Len() > 0 {
			if err := d.flush(ctx, r); err != nil {
				return err
			}
		}
	}
	if r.batch.Len() > 0 {
		return d.flush(ctx, r)
	}
	return nil
}

func (d *Driver) process(r *run, doc domain.Document) {
	r.stats.Processed++
	a, err := domain.DecodeAttraction(doc)
	if err != nil {
		r.stats.Errors++
		d.rep.DocumentFailed(doc.Ref, err)
		return
	}

	var field, before, after string
	switch d.cfg.Mode {
	case ModeTypes:
		if strings.TrimSpace(a.Type) == "" {
			r.stats.Skipped++
			d.rep.DocumentSkipped(doc.Ref, "no type field")
			return
		}
		m := d.classifier.Resolve(a.Type)
		if m.Translated() {
			r.stats.Translated[a.Type]++
		} else {
			r.stats.Untranslated[a.Type]++
		}
		field, before, after = domain.FieldTypeAr, a.TypeAr, m.Label
	case ModeDescriptions:
		r.stats.TypeCounts[a.Type]++
		if describe.Template(a.Type) != "" {
			r.stats.TemplatesUsed++
		}
		field, before, after = domain.FieldDescriptionAr, a.DescriptionAr, describe.Synthesize(a.Description, a.Type, a.Name)
	}

	if before == after {
		r.stats.Unchanged++
		return
	}
	r.batch.Update(doc.Ref, domain.Fields{field: after, domain.FieldUpdatedAt: domain.ServerTimestamp})
	r.stats.Updated++
	d.rep.DocumentUpdated(Change{
		Seq:    r.stats.Updated,
		Ref:    doc.Ref,
		Name:   a.Name,
		Type:   a.Type,
		Field:  field,
		Before: before,
		After:  after,
	})
}

// flush commits the current batch (unless dry-running), reports progress
// and starts a new batch.
func (d *Driver) flush(ctx context.Context, r *run) error {
	size := r.batch.Len()
	r.batches++
	committed := false
	if !d.cfg.DryRun {
		if err := d.commit(ctx, r.batch, r.batches); err != nil {
			return err
		}
		committed = true
		r.stats.Commits++
	}
	r.batch = d.store.BeginBatch()

	p := Progress{
		Counters:    r.stats.Counters,
		Batch:       r.batches,
		Size:        size,
		Committed:   committed,
		Total:       r.total,
		ParentsDone: r.parentsDone,
		Parents:     r.parents,
	}
	if r.total > 0 {
		p.Percent = percent(r.stats.Processed, r.total)
	} else {
		p.Percent = percent(r.parentsDone, r.parents)
	}
	d.rep.BatchCommitted(p)
	return nil
}

// commit retries a failed commit with backoff. A batch is atomic and its
// updates are idempotent, so a retried commit cannot double-apply.
func (d *Driver) commit(ctx context.Context, b domain.Batch, n int) error {
	var err error
	for attempt := 0; attempt < d.cfg.CommitAttempts; attempt++ {
		if err = b.Commit(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%w: batch %d: %w", ErrCommit, n, ctx.Err())
		}
		if attempt == d.cfg.CommitAttempts-1 {
			break
		}
		d.rep.CommitRetry(n, attempt+1, err)
		if !shared.SleepCtx(ctx, d.backoff(attempt)) {
			return fmt.Errorf("%w: batch %d: %w", ErrCommit, n, ctx.Err())
		}
	}
	return fmt.Errorf("%w: batch %d after %d attempts: %w", ErrCommit, n, d.cfg.CommitAttempts, err)
}
