package report_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/crawl"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/report"
	"travel_atlas/internal/storage/memory"
)

func fixture() *memory.Store {
	s := memory.New()
	put := func(city, id string, f domain.Fields) {
		c := domain.Root(domain.CitiesCollection, city)
		s.Put(c, domain.Fields{"name": city + " city"})
		s.Put(c.Child(domain.AttractionsCollection, id), f)
	}
	put("rome", "1", domain.Fields{"name": "Pantheon", "type": "Temple", "typeAr": "معبد", "description": "x"})
	put("rome", "2", domain.Fields{"name": "Trevi", "type": "Fountain", "typeAr": "نافورة", "descriptionAr": "نافورة"})
	put("rome", "3", domain.Fields{"name": "Forum", "type": "Ruins"})
	put("paris", "1", domain.Fields{"name": "Louvre", "type": "Museum", "typeAr": "متحف"})
	put("paris", "2", domain.Fields{"name": "Orsay", "type": "Museum", "typeAr": "متحف"})
	put("paris", "3", domain.Fields{"name": "Odd", "type": 42})
	return s
}

func TestTypesByGroup(t *testing.T) {
	cov, err := report.TypesByGroup(context.Background(), fixture(), domain.AttractionsCollection, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 6, cov.Total)
	assert.Equal(t, 4, cov.WithTypeAr)
	assert.Equal(t, 1, cov.MissingTypeAr)
	assert.Equal(t, 1, cov.Malformed)
	assert.InDelta(t, 66.7, cov.Coverage(), 0.05)
	assert.Equal(t, []report.Count{{Key: "متحف", Count: 2}}, cov.TopArabic(1))
	assert.Equal(t, []report.Count{{Key: "Ruins", Count: 1}}, cov.MissingTranslations())

	pairs := cov.SortedPairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, report.Pair{En: "Fountain", Ar: "نافورة", Count: 1}, pairs[0])
	assert.Equal(t, "Museum", pairs[1].En)
	assert.Equal(t, 2, pairs[1].Count)
}

func TestTypesByCrawl_MatchesGroup(t *testing.T) {
	s := fixture()
	c := crawl.New(s, crawl.Config{Limit: report.SafeLimit}, zerolog.Nop())
	cov, err := report.TypesByCrawl(context.Background(), c, zerolog.Nop())
	require.NoError(t, err)

	group, err := report.TypesByGroup(context.Background(), s, domain.AttractionsCollection, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, cov.Cities)
	assert.Equal(t, 2, cov.CitiesProcessed)
	assert.Equal(t, group.English, cov.English)
	assert.Equal(t, group.Pairs, cov.Pairs)
}

func TestPrintTypes(t *testing.T) {
	cov, err := report.TypesByGroup(context.Background(), fixture(), domain.AttractionsCollection, zerolog.Nop())
	require.NoError(t, err)
	var buf bytes.Buffer
	report.PrintTypes(&buf, cov)

	out := buf.String()
	assert.Contains(t, out, "Coverage: 66.7%")
	assert.Contains(t, out, "Total unique Arabic types: 3")
	assert.Contains(t, out, "Found 1 English types without Arabic translations")
	assert.NotContains(t, out, "Cities processed")
}

func TestPrintTypes_AllTranslated(t *testing.T) {
	s := memory.New()
	c := domain.Root(domain.CitiesCollection, "x")
	s.Put(c.Child(domain.AttractionsCollection, "1"), domain.Fields{"type": "Park", "typeAr": "حديقة"})
	cov, err := report.TypesByGroup(context.Background(), s, domain.AttractionsCollection, zerolog.Nop())
	require.NoError(t, err)

	var buf bytes.Buffer
	report.PrintTypes(&buf, cov)
	assert.Contains(t, buf.String(), "All English types have Arabic translations!")
}

func TestStoreSampler(t *testing.T) {
	samples, err := report.StoreSampler{Store: fixture()}.Sample(context.Background(), 1, 2)
	require.NoError(t, err)

	// cities are listed by id, so paris comes first
	require.Len(t, samples, 2)
	assert.Equal(t, report.SampleEntry{City: "paris city", Name: "Louvre", Type: "Museum", TypeAr: "متحف"}, samples[0])

	var buf bytes.Buffer
	report.PrintSample(&buf, samples)
	assert.Contains(t, buf.String(), "Arabic types: 2/2 (100.0%)")
	assert.Contains(t, buf.String(), "Arabic descriptions: 0/2 (0.0%)")
}

func TestPrintSample_Empty(t *testing.T) {
	var buf bytes.Buffer
	report.PrintSample(&buf, nil)
	assert.Contains(t, buf.String(), "Arabic types: 0/0 (0.0%)")
}
