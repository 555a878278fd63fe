package backfill

import (
	"github.com/rs/zerolog"

	"travel_atlas/internal/domain"
)

// LogReporter writes structured progress records.
type LogReporter struct {
	log zerolog.Logger
	// SampleUpdates caps how many individual updates are logged at info.
	SampleUpdates int
}

func NewLogReporter(l zerolog.Logger) *LogReporter {
	return &LogReporter{log: l, SampleUpdates: 5}
}

func (r *LogReporter) RunStarted(i RunInfo) {
	r.log.Info().
		Str("run_id", i.RunID).
		Str("mode", string(i.Mode)).
		Bool("dry_run", i.DryRun).
		Int("batch_size", i.BatchSize).
		Int("parents", i.Parents).
		Int("total", i.Total).
		Msg("backfill started")
}

func (r *LogReporter) ParentStarted(p domain.DocRef, n int) {
	r.log.Debug().Str("parent", p.Path()).Int("children", n).Msg("parent")
}

func (r *LogReporter) DocumentUpdated(c Change) {
	ev := r.log.Debug()
	if c.Seq <= r.SampleUpdates {
		ev = r.log.Info()
	}
	ev.Str("path", c.Ref.Path()).
		Str("name", c.Name).
		Str("type", c.Type).
		Str("field", c.Field).
		Str("value", truncate(c.After, 100)).
		Msg("staged update")
}

func (r *LogReporter) DocumentSkipped(ref domain.DocRef, reason string) {
	r.log.Warn().Str("path", ref.Path()).Str("reason", reason).Msg("document skipped")
}

func (r *LogReporter) DocumentFailed(ref domain.DocRef, err error) {
	r.log.Warn().Str("path", ref.Path()).Err(err).Msg("document failed")
}

func (r *LogReporter) BatchCommitted(p Progress) {
	r.log.Info().
		Int("batch", p.Batch).
		Int("size", p.Size).
		Bool("committed", p.Committed).
		Int("processed", p.Processed).
		Int("updated", p.Updated).
		Int("unchanged", p.Unchanged).
		Int("errors", p.Errors).
		Str("progress", formatPercent(p.Percent)).
		Msg("batch flushed")
}

func (r *LogReporter) CommitRetry(batch, attempt int, err error) {
	r.log.Warn().Int("batch", batch).Int("attempt", attempt).Err(err).Msg("batch commit failed, retrying")
}

func (r *LogReporter) RunFinished(s Stats, err error) {
	ev := r.log.Info()
	if err != nil {
		ev = r.log.Error().Err(err)
	}
	ev.Str("run_id", s.RunID).
		Int("processed", s.Processed).
		Int("updated", s.Updated).
		Int("unchanged", s.Unchanged).
		Int("skipped", s.Skipped).
		Int("errors", s.Errors).
		Int("commits", s.Commits).
		Str("success_rate", formatPercent(s.SuccessRate())).
		Dur("duration", s.Duration).
		Msg("backfill finished")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
