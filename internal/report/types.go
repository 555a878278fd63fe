// Package report holds the read-only coverage reports operators run
// before and after a backfill.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"travel_atlas/internal/crawl"
	"travel_atlas/internal/domain"
)

// SafeLimit caps the attractions read per city in the crawl variant.
const SafeLimit = 1000

// TypeCoverage tallies English and Arabic attraction types.
type TypeCoverage struct {
	Group           bool
	Cities          int
	CitiesProcessed int
	Total           int
	WithTypeAr      int
	MissingTypeAr   int
	Malformed       int
	English         map[string]int
	Arabic          map[string]int
	// Pairs maps an English type to the last Arabic label seen with it.
	Pairs map[string]string
}

type Count struct {
	Key   string
	Count int
}

type Pair struct {
	En    string
	Ar    string
	Count int
}

func newTypeCoverage() TypeCoverage {
	return TypeCoverage{English: map[string]int{}, Arabic: map[string]int{}, Pairs: map[string]string{}}
}

func (c *TypeCoverage) add(a domain.Attraction) {
	if a.Type != "" {
		c.English[a.Type]++
	}
	if a.TypeAr == "" {
		c.MissingTypeAr++
		return
	}
	c.Arabic[a.TypeAr]++
	c.WithTypeAr++
	if a.Type != "" {
		c.Pairs[a.Type] = a.TypeAr
	}
}

func (c *TypeCoverage) addAll(log zerolog.Logger, docs []domain.Document) {
	c.Total += len(docs)
	for _, d := range docs {
		a, err := domain.DecodeAttraction(d)
		if err != nil {
			c.Malformed++
			log.Warn().Str("path", d.Ref.Path()).Err(err).Msg("malformed attraction")
			continue
		}
		c.add(a)
	}
}

// Coverage is the share of attractions with an Arabic type, in percent.
func (c TypeCoverage) Coverage() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.WithTypeAr) / float64(c.Total) * 100
}

// TopArabic returns the n most frequent Arabic labels.
func (c TypeCoverage) TopArabic(n int) []Count {
	out := byCount(c.Arabic)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ArabicTypes returns every Arabic label in code point order.
func (c TypeCoverage) ArabicTypes() []Count {
	out := make([]Count, 0, len(c.Arabic))
	for k, v := range c.Arabic {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SortedPairs returns the EN->AR pairs in locale order of the English type.
func (c TypeCoverage) SortedPairs() []Pair {
	out := make([]Pair, 0, len(c.Pairs))
	for en, ar := range c.Pairs {
		out = append(out, Pair{En: en, Ar: ar, Count: c.English[en]})
	}
	col := collate.New(language.English)
	sort.Slice(out, func(i, j int) bool { return col.CompareString(out[i].En, out[j].En) < 0 })
	return out
}

// MissingTranslations lists English types never seen with an Arabic label.
func (c TypeCoverage) MissingTranslations() []Count {
	missing := map[string]int{}
	for en, n := range c.English {
		if _, ok := c.Pairs[en]; !ok {
			missing[en] = n
		}
	}
	return byCount(missing)
}

func byCount(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// TypesByCrawl builds the report one city at a time through c. Cities that
// fail are left out and show up as the gap between Cities and
// CitiesProcessed.
func TypesByCrawl(ctx context.Context, c *crawl.Crawler, logger zerolog.Logger) (TypeCoverage, error) {
	cov := newTypeCoverage()
	res, err := c.Crawl(ctx, func(_ context.Context, p domain.Document, children []domain.Document) error {
		logger.Debug().Str("city", p.Ref.ID).Int("attractions", len(children)).Msg("processing city")
		cov.addAll(logger, children)
		return nil
	})
	cov.Cities = res.Parents
	cov.CitiesProcessed = res.Processed
	return cov, err
}

// TypesByGroup builds the report from one cross-parent query.
func TypesByGroup(ctx context.Context, store domain.DocumentStore, child string, logger zerolog.Logger) (TypeCoverage, error) {
	docs, err := store.ListAllAcrossParents(ctx, child)
	if err != nil {
		return TypeCoverage{}, fmt.Errorf("group query %s: %w", child, err)
	}
	cov := newTypeCoverage()
	cov.Group = true
	cov.addAll(logger, docs)
	return cov, nil
}

func PrintTypes(w io.Writer, c TypeCoverage) {
	fmt.Fprintln(w, "=== SUMMARY ===")
	if !c.Group {
		fmt.Fprintf(w, "Cities processed: %d/%d\n", c.CitiesProcessed, c.Cities)
	}
	fmt.Fprintf(w, "Total attractions found: %d\n", c.Total)
	fmt.Fprintf(w, "Attractions with Arabic types (typeAr): %d\n", c.WithTypeAr)
	fmt.Fprintf(w, "Attractions missing Arabic types: %d\n", c.MissingTypeAr)
	if c.Malformed > 0 {
		fmt.Fprintf(w, "Malformed attractions: %d\n", c.Malformed)
	}
	fmt.Fprintf(w, "Coverage: %.1f%%\n", c.Coverage())

	if len(c.Arabic) > 0 {
		fmt.Fprintln(w, "\n=== TOP 20 ARABIC ATTRACTION TYPES ===")
		for i, tc := range c.TopArabic(20) {
			fmt.Fprintf(w, "%2d. %s (%d attractions)\n", i+1, pad(tc.Key, 20), tc.Count)
		}
		all := c.ArabicTypes()
		fmt.Fprintln(w, "\n=== ALL UNIQUE ARABIC TYPES ===")
		fmt.Fprintf(w, "Total unique Arabic types: %d\n\n", len(all))
		for i, tc := range all {
			fmt.Fprintf(w, "%3d. %s (%d)\n", i+1, tc.Key, tc.Count)
		}
	}

	if len(c.Pairs) > 0 {
		pairs := c.SortedPairs()
		fmt.Fprintln(w, "\n=== ENGLISH -> ARABIC TRANSLATIONS ===")
		fmt.Fprintf(w, "Total translation pairs: %d\n\n", len(pairs))
		for i, p := range pairs {
			fmt.Fprintf(w, "%3d. %s -> %s (%d)\n", i+1, pad(p.En, 25), pad(p.Ar, 20), p.Count)
		}
	}

	fmt.Fprintln(w, "\n=== MISSING ARABIC TRANSLATIONS ===")
	missing := c.MissingTranslations()
	if len(missing) == 0 {
		fmt.Fprintln(w, "All English types have Arabic translations!")
		return
	}
	fmt.Fprintf(w, "Found %d English types without Arabic translations:\n\n", len(missing))
	for i, m := range missing {
		fmt.Fprintf(w, "%3d. %s (%d attractions)\n", i+1, pad(m.Key, 30), m.Count)
	}
}

// pad right-pads s to n runes.
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
