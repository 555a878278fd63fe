package backfill

import (
	"sort"
	"time"
)

// Counters are the running totals of a run.
type Counters struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Stats is the end-of-run report.
type Stats struct {
	Counters
	RunID    string        `json:"runId"`
	Mode     Mode          `json:"mode"`
	DryRun   bool          `json:"dryRun"`
	Parents  int           `json:"parents"`
	Commits  int           `json:"commits"`
	Duration time.Duration `json:"duration"`

	// types mode
	Translated   map[string]int `json:"translated,omitempty"`
	Untranslated map[string]int `json:"untranslated,omitempty"`

	// descriptions mode
	TemplatesUsed int            `json:"templatesUsed,omitempty"`
	TypeCounts    map[string]int `json:"typeCounts,omitempty"`
}

// TypeCount is one row of a frequency table.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// SuccessRate is the share of processed documents that were updated, in percent.
func (s Stats) SuccessRate() float64 { return percent(s.Updated, s.Processed) }

// TemplateCoverage is the share of processed documents whose type has a
// description template, in percent.
func (s Stats) TemplateCoverage() float64 { return percent(s.TemplatesUsed, s.Processed) }

// TopTranslated returns the n most frequent translated types.
func (s Stats) TopTranslated(n int) []TypeCount { return top(s.Translated, n) }

// TopTypes returns the n most frequent source types (descriptions mode).
func (s Stats) TopTypes(n int) []TypeCount { return top(s.TypeCounts, n) }

// UntranslatedTypes lists the types that need a manual translation, sorted.
func (s Stats) UntranslatedTypes() []string {
	out := make([]string, 0, len(s.Untranslated))
	for k := range s.Untranslated {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func top(m map[string]int, n int) []TypeCount {
	out := make([]TypeCount, 0, len(m))
	for k, v := range m {
		out = append(out, TypeCount{Type: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func percent(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b) * 100
}
