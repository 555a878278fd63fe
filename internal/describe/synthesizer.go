// Package describe builds templated Arabic descriptions for attractions.
package describe

import (
	"strings"
	"unicode/utf16"

	"travel_atlas/internal/classify"
)

// DefaultName stands in for a missing attraction name ("this landmark").
const DefaultName = "هذا المعلم"

// MinSourceLength is the shortest English description treated as usable.
const MinSourceLength = 20

const (
	genericNoSource  = " هو معلم سياحي مميز يستحق الزيارة لجماله وأهميته التاريخية والثقافية. يوفر تجربة فريدة للزوار ويعتبر من أهم المعالم في المنطقة."
	genericHasSource = " هو معلم سياحي رائع يتميز بطابعه الفريد وأهميته الثقافية. يقدم للزوار تجربة لا تُنسى ويعتبر من أبرز نقاط الجذب في المدينة."
)

type template struct {
	key   string
	label string
	body  string
}

// Template returns the template key used for typ, or "" when the generic
// paragraph applies. Keys match exactly, then case-insensitively, then by
// singular form, so "Churches" uses the "Church" template.
func Template(typ string) string {
	if t := lookup(typ); t != nil {
		return t.key
	}
	return ""
}

func lookup(typ string) *template {
	for i := range templates {
		if templates[i].key == typ {
			return &templates[i]
		}
	}
	lower := strings.ToLower(strings.TrimSpace(typ))
	if lower == "" {
		return nil
	}
	for _, c := range append([]string{lower}, classify.Singulars(lower)...) {
		for i := range templates {
			if strings.ToLower(templates[i].key) == c {
				return &templates[i]
			}
		}
	}
	return nil
}

// HasSource reports whether an English description is usable source text.
// The length is counted in UTF-16 units and includes surrounding spaces.
func HasSource(description string) bool {
	return description != "" && description != "null" &&
		len(utf16.Encode([]rune(description))) >= MinSourceLength
}

// Synthesize returns the Arabic description for an attraction. The English
// description only selects between the two generic paragraphs.
func Synthesize(description, typ, name string) string {
	n := strings.TrimSpace(name)
	if n == "" {
		n = DefaultName
	}
	if t := lookup(typ); t != nil {
		return n + t.body
	}
	if HasSource(description) {
		return n + genericHasSource
	}
	return n + genericNoSource
}

// Templates lists the template keys in lookup order.
func Templates() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.key
	}
	return out
}

// Label is the Arabic category a template describes.
func Label(key string) string {
	for _, t := range templates {
		if t.key == key {
			return t.label
		}
	}
	return ""
}
