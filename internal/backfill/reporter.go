package backfill

import "travel_atlas/internal/domain"

// RunInfo describes a run that is about to start.
type RunInfo struct {
	RunID     string
	Mode      Mode
	DryRun    bool
	BatchSize int
	Parents   int
	// Total is the number of child documents, or -1 when the store cannot
	// count them up front.
	Total int
}

// Change is one staged field update.
type Change struct {
	Seq    int // 1-based position among the run's updates
	Ref    domain.DocRef
	Name   string
	Type   string
	Field  string
	Before string
	After  string
}

// Progress is emitted after every flushed batch.
type Progress struct {
	Counters
	Batch       int
	Size        int
	Committed   bool
	Total       int
	ParentsDone int
	Parents     int
	Percent     float64
}

// Reporter receives the driver's progress events. Implementations must not
// block for long; the driver calls them synchronously.
type Reporter interface {
	RunStarted(RunInfo)
	ParentStarted(parent domain.DocRef, children int)
	DocumentUpdated(Change)
	DocumentSkipped(ref domain.DocRef, reason string)
	DocumentFailed(ref domain.DocRef, err error)
	BatchCommitted(Progress)
	CommitRetry(batch, attempt int, err error)
	RunFinished(Stats, error)
}

// NopReporter ignores every event. Embed it to implement a subset.
type NopReporter struct{}

func (NopReporter) RunStarted(RunInfo)                    {}
func (NopReporter) ParentStarted(domain.DocRef, int)      {}
func (NopReporter) DocumentUpdated(Change)                {}
func (NopReporter) DocumentSkipped(domain.DocRef, string) {}
func (NopReporter) DocumentFailed(domain.DocRef, error)   {}
func (NopReporter) BatchCommitted(Progress)               {}
func (NopReporter) CommitRetry(int, int, error)           {}
func (NopReporter) RunFinished(Stats, error)              {}

// Multi fans events out to several reporters in order.
type Multi []Reporter

func (m Multi) RunStarted(i RunInfo) {
	for _, r := range m {
		r.RunStarted(i)
	}
}

func (m Multi) ParentStarted(p domain.DocRef, n int) {
	for _, r := range m {
		r.ParentStarted(p, n)
	}
}

func (m Multi) DocumentUpdated(c Change) {
	for _, r := range m {
		r.DocumentUpdated(c)
	}
}

func (m Multi) DocumentSkipped(ref domain.DocRef, reason string) {
	for _, r := range m {
		r.DocumentSkipped(ref, reason)
	}
}

func (m Multi) DocumentFailed(ref domain.DocRef, err error) {
	for _, r := range m {
		r.DocumentFailed(ref, err)
	}
}

func (m Multi) BatchCommitted(p Progress) {
	for _, r := range m {
		r.BatchCommitted(p)
	}
}

func (m Multi) CommitRetry(batch, attempt int, err error) {
	for _, r := range m {
		r.CommitRetry(batch, attempt, err)
	}
}

func (m Multi) RunFinished(s Stats, err error) {
	for _, r := range m {
		r.RunFinished(s, err)
	}
}
