package export

import (
	"fmt"
	"io"
	"sort"
)

// TypeCoverage is one row of the top types table.
type TypeCoverage struct {
	Type           string
	Count          int
	ArabicCoverage float64
}

// TopTypes returns the n most common types with their Arabic description
// coverage in percent.
func (s Snapshot) TopTypes(n int) []TypeCoverage {
	out := make([]TypeCoverage, 0, len(s.Summary.TypeBreakdown))
	for t, st := range s.Summary.TypeBreakdown {
		tc := TypeCoverage{Type: t, Count: st.Count}
		if st.Count > 0 {
			tc.ArabicCoverage = float64(st.WithArabicDescription) / float64(st.Count) * 100
		}
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// PrintReport writes the human-readable export summary.
func PrintReport(w io.Writer, s Snapshot, path string, size int64) {
	st := s.Summary.Statistics
	fmt.Fprintln(w, "=== EXPORT COMPLETE ===")
	fmt.Fprintf(w, "Cities processed: %d\n", s.Summary.TotalCities)
	fmt.Fprintf(w, "Total attractions exported: %d\n", s.Summary.TotalAttractions)
	if path != "" {
		fmt.Fprintf(w, "File saved: %s\n", path)
		fmt.Fprintf(w, "File size: %.2f MB\n", float64(size)/1024/1024)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== DATASET STATISTICS ===")
	fmt.Fprintf(w, "English descriptions: %d\n", st.WithEnglishDescription)
	fmt.Fprintf(w, "Arabic descriptions: %d\n", st.WithArabicDescription)
	fmt.Fprintf(w, "Missing descriptions: %d\n", st.EmptyDescriptions)
	fmt.Fprintf(w, "Need Arabic translation: %d\n", st.MissingArabicDescriptions)
	cov := 0.0
	if s.Summary.TotalAttractions > 0 {
		cov = float64(st.WithArabicDescription) / float64(s.Summary.TotalAttractions) * 100
	}
	fmt.Fprintf(w, "Description coverage: %.1f%%\n\n", cov)

	fmt.Fprintln(w, "=== TOP 10 ATTRACTION TYPES ===")
	for i, tc := range s.TopTypes(10) {
		fmt.Fprintf(w, "%d. %s (%d) - %.1f%% Arabic descriptions\n", i+1, tc.Type, tc.Count, tc.ArabicCoverage)
	}

	fmt.Fprintln(w, "\n=== SAMPLE ATTRACTIONS ===")
	for i, r := range s.Attractions {
		if i == 5 {
			break
		}
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, r.Name, r.CityName)
		if r.TypeAr != "" {
			fmt.Fprintf(w, "   Type: %s -> %s\n", r.Type, r.TypeAr)
		} else {
			fmt.Fprintf(w, "   Type: %s\n", r.Type)
		}
		fmt.Fprintf(w, "   Description: %s\n", clip(r.Description, 50))
		if r.DescriptionAr != "" {
			fmt.Fprintf(w, "   Arabic: %s\n", clip(r.DescriptionAr, 50))
		}
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
