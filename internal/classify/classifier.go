// Package classify maps free-text attraction types onto the controlled
// Arabic vocabulary used by the catalog.
package classify

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fallback is returned for empty input ("tourist attraction").
const Fallback = "معلم سياحي"

type entry struct {
	key   string
	label string
}

// Layer names the matching step that produced a label.
type Layer int

const (
	LayerEmpty Layer = iota
	LayerExact
	LayerCaseInsensitive
	LayerSingular
	LayerToken
	LayerKeyword
	LayerPassthrough
)

var layerNames = [...]string{"empty", "exact", "case_insensitive", "singular", "token", "keyword", "passthrough"}

func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// Match is the outcome of Resolve.
type Match struct {
	Label string
	Layer Layer
}

// Translated reports whether the label came from the vocabulary.
func (m Match) Translated() bool { return m.Layer != LayerPassthrough }

var (
	wordSplit = regexp.MustCompile(`[\p{Z}\s\-_]+`)

	exact     map[string]string
	lowered   map[string]string // first entry wins
	keyTokens [][]string
	initOnce  sync.Once
)

func buildIndex() {
	exact = make(map[string]string, len(typeTable))
	lowered = make(map[string]string, len(typeTable))
	keyTokens = make([][]string, len(typeTable))
	for i, e := range typeTable {
		exact[e.key] = e.label
		lk := strings.ToLower(e.key)
		if _, ok := lowered[lk]; !ok {
			lowered[lk] = e.label
		}
		keyTokens[i] = wordSplit.Split(lk, -1)
	}
}

// Resolve runs the layered match and reports which layer answered.
// Layers in precedence order: exact, case-insensitive, singular forms
// ("ies"->"y", "es"->"", "s"->""), whole-token match against table keys,
// cross-lingual keyword groups. Anything else passes through trimmed.
func Resolve(raw string) Match {
	initOnce.Do(buildIndex)

	s := strings.TrimSpace(raw)
	if s == "" {
		return Match{Label: Fallback, Layer: LayerEmpty}
	}
	if l, ok := exact[s]; ok {
		return Match{Label: l, Layer: LayerExact}
	}
	lower := strings.ToLower(s)
	if l, ok := lowered[lower]; ok {
		return Match{Label: l, Layer: LayerCaseInsensitive}
	}
	for _, sing := range Singulars(lower) {
		if l, ok := lowered[sing]; ok {
			return Match{Label: l, Layer: LayerSingular}
		}
	}
	for _, w := range wordSplit.Split(lower, -1) {
		if len([]rune(w)) < 3 {
			continue
		}
		for i, toks := range keyTokens {
			for _, kt := range toks {
				if kt == w {
					return Match{Label: typeTable[i].label, Layer: LayerToken}
				}
			}
		}
	}
	folded := fold(lower)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) || strings.Contains(folded, fold(kw)) {
				return Match{Label: g.label, Layer: LayerKeyword}
			}
		}
	}
	return Match{Label: s, Layer: LayerPassthrough}
}

// Classify returns the Arabic label for raw. It never fails.
func Classify(raw string) string { return Resolve(raw).Label }

// Singulars returns the candidate singular forms of a lower-cased word:
// "ies"->"y", "es"->"", "s"->"", each only when its suffix is present.
func Singulars(lower string) []string {
	var out []string
	if strings.HasSuffix(lower, "ies") {
		out = append(out, strings.TrimSuffix(lower, "ies")+"y")
	}
	if strings.HasSuffix(lower, "es") {
		out = append(out, strings.TrimSuffix(lower, "es"))
	}
	if strings.HasSuffix(lower, "s") {
		out = append(out, strings.TrimSuffix(lower, "s"))
	}
	return out
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// fold drops combining accents so "musée" also matches "musee".
func fold(s string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// MissRecorder receives inputs that fell through every layer.
type MissRecorder interface {
	RecordMiss(raw string)
}

// Classifier is Classify with a miss side channel.
type Classifier struct {
	misses MissRecorder
}

func New(misses MissRecorder) *Classifier { return &Classifier{misses: misses} }

func (c *Classifier) Resolve(raw string) Match {
	m := Resolve(raw)
	if !m.Translated() && c.misses != nil {
		c.misses.RecordMiss(m.Label)
	}
	return m
}

func (c *Classifier) Classify(raw string) string { return c.Resolve(raw).Label }

// Misses counts passthrough inputs. Safe for concurrent use.
type Misses struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMisses() *Misses { return &Misses{counts: map[string]int{}} }

func (m *Misses) RecordMiss(raw string) {
	m.mu.Lock()
	m.counts[raw]++
	m.mu.Unlock()
}

// Snapshot returns a copy of the counts.
func (m *Misses) Snapshot() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out
}

// Labels lists every distinct label in the vocabulary, in table order.
func Labels() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range typeTable {
		if !seen[e.label] {
			seen[e.label] = true
			out = append(out, e.label)
		}
	}
	return out
}
