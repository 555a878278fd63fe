package backfill

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"travel_atlas/internal/describe"
	"travel_atlas/internal/domain"
)

// ConsoleReporter prints the operator-facing progress and summary text.
type ConsoleReporter struct {
	NopReporter
	w             io.Writer
	sampleUpdates int
	topN          int

	ok, warn, bad, head *color.Color
}

func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		w:             w,
		sampleUpdates: 5,
		topN:          10,
		ok:            color.New(color.FgGreen),
		warn:          color.New(color.FgYellow),
		bad:           color.New(color.FgRed),
		head:          color.New(color.Bold),
	}
}

func (r *ConsoleReporter) RunStarted(i RunInfo) {
	r.head.Fprintf(r.w, "Starting %s backfill (run %s)\n", i.Mode, i.RunID)
	if i.Total >= 0 {
		fmt.Fprintf(r.w, "Found %d documents under %d parents, batches of up to %d\n", i.Total, i.Parents, i.BatchSize)
	} else {
		fmt.Fprintf(r.w, "Found %d parents, batches of up to %d\n", i.Parents, i.BatchSize)
	}
	if i.DryRun {
		r.warn.Fprintln(r.w, "Dry run: nothing will be written")
	}
}

func (r *ConsoleReporter) DocumentUpdated(c Change) {
	if c.Seq > r.sampleUpdates {
		return
	}
	name := c.Name
	if name == "" {
		name = "Unknown"
	}
	r.ok.Fprintf(r.w, "  + %q | %q -> %q\n", name, c.Type, truncate(c.After, 100))
}

func (r *ConsoleReporter) DocumentSkipped(ref domain.DocRef, reason string) {
	r.warn.Fprintf(r.w, "  ! %s: %s\n", ref.Path(), reason)
}

func (r *ConsoleReporter) DocumentFailed(ref domain.DocRef, err error) {
	r.bad.Fprintf(r.w, "  x %s: %v\n", ref.Path(), err)
}

func (r *ConsoleReporter) BatchCommitted(p Progress) {
	verb := "Committed"
	if !p.Committed {
		verb = "Staged (dry run)"
	}
	fmt.Fprintf(r.w, "  %s %d updates in batch %d\n", verb, p.Size, p.Batch)
	if p.Total >= 0 {
		fmt.Fprintf(r.w, "  Progress: %s (%d/%d processed)\n", formatPercent(p.Percent), p.Processed, p.Total)
	} else {
		fmt.Fprintf(r.w, "  Progress: %s (%d/%d parents, %d processed)\n", formatPercent(p.Percent), p.ParentsDone, p.Parents, p.Processed)
	}
}

func (r *ConsoleReporter) CommitRetry(batch, attempt int, err error) {
	r.warn.Fprintf(r.w, "  Batch %d commit attempt %d failed: %v\n", batch, attempt, err)
}

func (r *ConsoleReporter) RunFinished(s Stats, err error) {
	fmt.Fprintln(r.w)
	r.head.Fprintln(r.w, "=== UPDATE COMPLETE ===")
	fmt.Fprintf(r.w, "Total processed: %d\n", s.Processed)
	fmt.Fprintf(r.w, "Updated:         %d\n", s.Updated)
	fmt.Fprintf(r.w, "Unchanged:       %d\n", s.Unchanged)
	fmt.Fprintf(r.w, "Skipped:         %d\n", s.Skipped)
	fmt.Fprintf(r.w, "Errors:          %d\n", s.Errors)
	fmt.Fprintf(r.w, "Success rate:    %s\n", formatPercent(s.SuccessRate()))

	switch s.Mode {
	case ModeTypes:
		fmt.Fprintln(r.w)
		r.head.Fprintln(r.w, "=== TRANSLATION STATISTICS ===")
		fmt.Fprintf(r.w, "Translated types:   %d\n", len(s.Translated))
		fmt.Fprintf(r.w, "Untranslated types: %d\n", len(s.Untranslated))
		if top := s.TopTranslated(r.topN); len(top) > 0 {
			fmt.Fprintf(r.w, "Top %d translated types:\n", r.topN)
			for i, tc := range top {
				fmt.Fprintf(r.w, "  %d. %s (%d attractions)\n", i+1, tc.Type, tc.Count)
			}
		}
		if un := s.UntranslatedTypes(); len(un) > 0 {
			r.warn.Fprintln(r.w, "Types that need manual translation:")
			for i, t := range un {
				fmt.Fprintf(r.w, "  %d. %q\n", i+1, t)
			}
		}
	case ModeDescriptions:
		fmt.Fprintln(r.w)
		r.head.Fprintln(r.w, "=== DESCRIPTION GENERATION STATISTICS ===")
		fmt.Fprintf(r.w, "Templates used:    %d\n", s.TemplatesUsed)
		fmt.Fprintf(r.w, "Template coverage: %s\n", formatPercent(s.TemplateCoverage()))
		if top := s.TopTypes(r.topN); len(top) > 0 {
			fmt.Fprintf(r.w, "Top %d attraction types:\n", r.topN)
			for i, tc := range top {
				mark := r.bad.Sprint("no template")
				if describe.Template(tc.Type) != "" {
					mark = r.ok.Sprint("template")
				}
				fmt.Fprintf(r.w, "  %d. %s (%d) %s\n", i+1, tc.Type, tc.Count, mark)
			}
		}
	}

	fmt.Fprintln(r.w)
	if err != nil {
		r.bad.Fprintf(r.w, "Backfill failed: %v\n", err)
		return
	}
	r.ok.Fprintln(r.w, "Backfill completed successfully")
}

func formatPercent(p float64) string { return fmt.Sprintf("%.1f%%", p) }
