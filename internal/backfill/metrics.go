package backfill

import (
	"travel_atlas/internal/adapters/observability"
	"travel_atlas/internal/domain"
)

// MetricsReporter feeds the Prometheus backfill counters.
type MetricsReporter struct {
	NopReporter
	mode string
}

func NewMetricsReporter(mode Mode) *MetricsReporter { return &MetricsReporter{mode: string(mode)} }

func (m *MetricsReporter) DocumentUpdated(Change) {
	observability.ObserveBackfillDocument(m.mode, "updated")
}

func (m *MetricsReporter) DocumentSkipped(domain.DocRef, string) {
	observability.ObserveBackfillDocument(m.mode, "skipped")
}

func (m *MetricsReporter) DocumentFailed(domain.DocRef, error) {
	observability.ObserveBackfillDocument(m.mode, "error")
}

func (m *MetricsReporter) BatchCommitted(p Progress) {
	status := "committed"
	if !p.Committed {
		status = "dry_run"
	}
	observability.ObserveBackfillBatch(m.mode, status, p.Size)
}

func (m *MetricsReporter) CommitRetry(int, int, error) {
	observability.ObserveBackfillBatch(m.mode, "retry", 0)
}

func (m *MetricsReporter) RunFinished(s Stats, _ error) {
	observability.BackfillDocuments.WithLabelValues(m.mode, "unchanged").Add(float64(s.Unchanged))
}
