package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/classify"
)

func TestClassify_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		assert.Equal(t, classify.Fallback, classify.Classify(in), "input %q", in)
	}
	assert.Equal(t, classify.LayerEmpty, classify.Resolve("").Layer)
}

func TestClassify_TableEntriesAnyCase(t *testing.T) {
	cases := map[string]string{
		"Museum":              "متحف",
		"Basilica":            "بازيليكا",
		"Stadium":             "استاد - ملعب",
		"Opera House":         "دار الأوبرا",
		"Memorial":            "معلم",
		"Scenic Building":     "منظر خلاب",
		"historical landmark": "معلم تاريخي",
		"Waterway":            "طريق مائي",
	}
	for in, want := range cases {
		assert.Equal(t, want, classify.Classify(in), in)
		assert.Equal(t, want, classify.Classify(strings.ToUpper(in)), strings.ToUpper(in))
		assert.Equal(t, want, classify.Classify(strings.ToLower(in)), strings.ToLower(in))
		assert.Equal(t, want, classify.Classify("  "+in+" "), "padded "+in)
	}
	assert.Equal(t, classify.LayerExact, classify.Resolve("Museum").Layer)
	assert.Equal(t, classify.LayerCaseInsensitive, classify.Resolve("MUSEUM").Layer)
}

func TestClassify_EveryLabelIsNonEmpty(t *testing.T) {
	labels := classify.Labels()
	require.NotEmpty(t, labels)
	for _, l := range labels {
		assert.NotEmpty(t, strings.TrimSpace(l))
	}
}

func TestClassify_Singularization(t *testing.T) {
	assert.Equal(t, classify.Classify("Museum"), classify.Classify("Museums"))
	assert.Equal(t, "كنيسة", classify.Classify("Churches"))
	assert.Equal(t, "معرض", classify.Classify("Galleries"))
	assert.Equal(t, "مكتبة", classify.Classify("LIBRARIES"))
	assert.Equal(t, classify.LayerSingular, classify.Resolve("Churches").Layer)
}

func TestClassify_TokenLayer(t *testing.T) {
	cases := map[string]string{
		"Natural Wonders":      "موقع طبيعي",
		"Historic District":    "موقع تاريخي",
		"art-deco_district":    "فن",
		"Scenic Cable Car":     "منظر خلاب",
		"Old Harbor Boardwalk": "ميناء",
	}
	for in, want := range cases {
		m := classify.Resolve(in)
		assert.Equal(t, want, m.Label, in)
		assert.Equal(t, classify.LayerToken, m.Layer, in)
	}
}

func TestClassify_KeywordLayer(t *testing.T) {
	cases := map[string]string{
		"Musée":                  "متحف",
		"museo":                  "متحف",
		"Castillo de San Marcos": "قلعة",
		"Piazza Navona":          "ميدان",
		"Théâtre":                "مسرح",
		"Jardín Botánico":        "حديقة",
		"Mezquita-mosquée":       "مسجد",
	}
	for in, want := range cases {
		m := classify.Resolve(in)
		assert.Equal(t, want, m.Label, in)
		assert.Equal(t, classify.LayerKeyword, m.Layer, in)
	}
}

func TestClassify_Passthrough(t *testing.T) {
	for _, in := range []string{"Zorbing", "Hot Air Ballooning"} {
		m := classify.Resolve(in)
		assert.Equal(t, in, m.Label)
		assert.False(t, m.Translated())
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for _, in := range []string{"Museums", "Musée", "Zorbing", "", "Scenic Cable Car"} {
		assert.Equal(t, classify.Classify(in), classify.Classify(in))
	}
}

func TestClassifier_RecordsMissesOnly(t *testing.T) {
	misses := classify.NewMisses()
	c := classify.New(misses)

	assert.Equal(t, "متحف", c.Classify("Museum"))
	assert.Equal(t, "Zorbing", c.Classify("Zorbing"))
	assert.Equal(t, "Zorbing", c.Classify(" Zorbing "))
	assert.Equal(t, classify.Fallback, c.Classify(""))

	assert.Equal(t, map[string]int{"Zorbing": 2}, misses.Snapshot())
}

func TestClassify_TokenLayerSplitsUnicodeSpaces(t *testing.T) {
	plain := classify.Resolve("Modern Square")
	for _, in := range []string{"Modern\u00a0Square", "Modern\u3000Square", "Modern\u2009Square"} {
		assert.Equal(t, plain, classify.Resolve(in), "input %q", in)
	}
	assert.Equal(t, classify.LayerToken, plain.Layer)
}
