// Package export flattens the city/attraction tree into one JSON dataset
// with summary statistics for offline analysis.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
	"unicode/utf16"

	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"travel_atlas/internal/crawl"
	"travel_atlas/internal/domain"
)

// DefaultPath is the file written when no output path is given.
const DefaultPath = "attractions-dataset.json"

type Record struct {
	ID                    string `json:"id"`
	CityID                string `json:"cityId"`
	CityName              string `json:"cityName"`
	Name                  string `json:"name"`
	Type                  string `json:"type"`
	TypeAr                string `json:"typeAr"`
	Description           string `json:"description"`
	DescriptionAr         string `json:"descriptionAr"`
	HasEnglishDescription bool   `json:"hasEnglishDescription"`
	HasArabicDescription  bool   `json:"hasArabicDescription"`
	HasEnglishType        bool   `json:"hasEnglishType"`
	HasArabicType         bool   `json:"hasArabicType"`
	DescriptionLength     int    `json:"descriptionLength"`
	DescriptionArLength   int    `json:"descriptionArLength"`
	Continent             string `json:"continent"`
	Country               string `json:"country"`
}

type Statistics struct {
	WithEnglishDescription    int `json:"withEnglishDescription"`
	WithArabicDescription     int `json:"withArabicDescription"`
	WithEnglishType           int `json:"withEnglishType"`
	WithArabicType            int `json:"withArabicType"`
	EmptyDescriptions         int `json:"emptyDescriptions"`
	MissingArabicDescriptions int `json:"missingArabicDescriptions"`
}

type TypeStats struct {
	Count                  int `json:"count"`
	WithArabicType         int `json:"withArabicType"`
	WithEnglishDescription int `json:"withEnglishDescription"`
	WithArabicDescription  int `json:"withArabicDescription"`
}

type CityStats struct {
	Count                  int    `json:"count"`
	WithArabicDescriptions int    `json:"withArabicDescriptions"`
	Continent              string `json:"continent"`
	Country                string `json:"country"`
}

type Summary struct {
	ExportDate       string                `json:"exportDate"`
	TotalCities      int                   `json:"totalCities"`
	TotalAttractions int                   `json:"totalAttractions"`
	Statistics       Statistics            `json:"statistics"`
	TypeBreakdown    map[string]*TypeStats `json:"typeBreakdown"`
	CityBreakdown    map[string]*CityStats `json:"cityBreakdown"`
}

type Snapshot struct {
	Summary     Summary  `json:"summary"`
	Attractions []Record `json:"attractions"`
}

// Result describes how the crawl behind a snapshot went.
type Result struct {
	Cities        int
	FailedCities  int
	SkippedRecord int
}

type Exporter struct {
	crawler *crawl.Crawler
	log     zerolog.Logger
	now     func() time.Time
}

func New(c *crawl.Crawler, logger zerolog.Logger) *Exporter {
	return &Exporter{crawler: c, log: logger.With().Str("component", "export").Logger(), now: time.Now}
}

// WithClock overrides the export timestamp source.
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// Build crawls every city and assembles the snapshot. Cities that fail are
// left out; the snapshot covers the cities that were read.
func (e *Exporter) Build(ctx context.Context) (Snapshot, Result, error) {
	var (
		records []Record
		total   int
		res     Result
	)
	cr, err := e.crawler.Crawl(ctx, func(_ context.Context, p domain.Document, children []domain.Document) error {
		c, err := domain.DecodeCity(p)
		if err != nil {
			return err
		}
		cityName := c.Name
		if cityName == "" {
			cityName = c.ID
		}
		e.log.Debug().Str("city", cityName).Int("attractions", len(children)).Msg("processing city")
		total += len(children)
		for _, d := range children {
			a, err := domain.DecodeAttraction(d)
			if err != nil {
				res.SkippedRecord++
				e.log.Warn().Str("path", d.Ref.Path()).Err(err).Msg("attraction skipped")
				continue
			}
			records = append(records, newRecord(a, c, cityName))
		}
		return nil
	})
	res.Cities = cr.Processed
	res.FailedCities = len(cr.Failures)
	if err != nil {
		return Snapshot{}, res, err
	}

	if records == nil {
		records = []Record{}
	}
	sortRecords(records)
	return Snapshot{Summary: summarize(records, cr.Processed, total, e.now()), Attractions: records}, res, nil
}

func newRecord(a domain.Attraction, c domain.City, cityName string) Record {
	return Record{
		ID:                    a.ID,
		CityID:                c.ID,
		CityName:              cityName,
		Name:                  a.Name,
		Type:                  a.Type,
		TypeAr:                a.TypeAr,
		Description:           a.Description,
		DescriptionAr:         a.DescriptionAr,
		HasEnglishDescription: a.Description != "",
		HasArabicDescription:  a.DescriptionAr != "",
		HasEnglishType:        a.Type != "",
		HasArabicType:         a.TypeAr != "",
		DescriptionLength:     utf16Len(a.Description),
		DescriptionArLength:   utf16Len(a.DescriptionAr),
		Continent:             c.Continent,
		Country:               c.Country,
	}
}

func utf16Len(s string) int { return len(utf16.Encode([]rune(s))) }

// sortRecords orders by city name, then attraction name, using the root
// locale collation.
func sortRecords(rs []Record) {
	col := collate.New(language.Und)
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].CityName != rs[j].CityName {
			return col.CompareString(rs[i].CityName, rs[j].CityName) < 0
		}
		return col.CompareString(rs[i].Name, rs[j].Name) < 0
	})
}

func summarize(rs []Record, cities, total int, now time.Time) Summary {
	s := Summary{
		ExportDate:       now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		TotalCities:      cities,
		TotalAttractions: total,
		TypeBreakdown:    map[string]*TypeStats{},
		CityBreakdown:    map[string]*CityStats{},
	}
	for _, r := range rs {
		st := &s.Statistics
		if r.HasEnglishDescription {
			st.WithEnglishDescription++
		} else {
			st.EmptyDescriptions++
		}
		if r.HasArabicDescription {
			st.WithArabicDescription++
		}
		if r.HasEnglishType {
			st.WithEnglishType++
		}
		if r.HasArabicType {
			st.WithArabicType++
		}
		if r.HasEnglishDescription && !r.HasArabicDescription {
			st.MissingArabicDescriptions++
		}

		if r.Type != "" {
			ts := s.TypeBreakdown[r.Type]
			if ts == nil {
				ts = &TypeStats{}
				s.TypeBreakdown[r.Type] = ts
			}
			ts.Count++
			if r.HasArabicType {
				ts.WithArabicType++
			}
			if r.HasEnglishDescription {
				ts.WithEnglishDescription++
			}
			if r.HasArabicDescription {
				ts.WithArabicDescription++
			}
		}

		cs := s.CityBreakdown[r.CityName]
		if cs == nil {
			cs = &CityStats{Continent: r.Continent, Country: r.Country}
			s.CityBreakdown[r.CityName] = cs
		}
		cs.Count++
		if r.HasArabicDescription {
			cs.WithArabicDescriptions++
		}
	}
	return s
}

// Write encodes the snapshot as two-space indented JSON.
func Write(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(s)
}

// WriteFile writes the snapshot to path and returns the file size.
func WriteFile(path string, s Snapshot) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := Write(f, s); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	st, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return st.Size(), nil
}
