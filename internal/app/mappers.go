package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"travel_atlas/internal/domain"
)

// Fixture is the seed file layout: countries, cities with their nested
// attractions, and metadata documents keyed by id.
type Fixture struct {
	Countries []map[string]any          `json:"countries"`
	Cities    []map[string]any          `json:"cities"`
	Metadata  map[string]map[string]any `json:"metadata"`
}

func ReadFixture(r io.Reader) (Fixture, error) {
	var fx Fixture
	if err := json.NewDecoder(r).Decode(&fx); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture: %w", err)
	}
	return fx, nil
}

/********** alias registries **********/

var cityAliases = map[string][]string{
	"name":            {"name", "city", "cityName"},
	"countryId":       {"countryId", "country_id", "countryCode"},
	"bestTimeToVisit": {"bestTimeToVisit", "bestTime", "best_time"},
	"airportCode":     {"airportCode", "airport_code", "airport.code"},
	"topAttraction":   {"topAttraction", "top_attraction"},
}

var attractionAliases = map[string][]string{
	"name":          {"name", "title"},
	"type":          {"type", "category", "kind"},
	"typeAr":        {"typeAr", "type_ar"},
	"description":   {"description", "desc", "summary"},
	"descriptionAr": {"descriptionAr", "description_ar"},
}

/********** helpers **********/

// lookupAny: nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// firstAlias returns the first present, non-empty value of an alias set.
func firstAlias(m map[string]any, aliases []string) (any, bool) {
	for _, p := range aliases {
		switch v := lookupAny(m, p).(type) {
		case nil:
		case string:
			if strings.TrimSpace(v) != "" {
				return v, true
			}
		default:
			return v, true
		}
	}
	return nil, false
}

var slugger = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slug derives a stable document id from a display name.
func slug(s string) string {
	folded, _, err := transform.String(slugger, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func docID(m map[string]any, nameKey string) (string, error) {
	switch v := m["id"].(type) {
	case string:
		if v != "" {
			return v, nil
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	if name, ok := m[nameKey].(string); ok {
		if id := slug(name); id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("record without id or %s: %w", nameKey, domain.ErrMalformed)
}

// mapRecord copies the record without its id and nested collections and
// fills canonical field names from their aliases.
func mapRecord(m map[string]any, aliases map[string][]string, drop ...string) domain.Fields {
	f := domain.Fields{}
	for k, v := range m {
		f[k] = v
	}
	delete(f, "id")
	for _, k := range drop {
		delete(f, k)
	}
	for canon, al := range aliases {
		if f.Has(canon) {
			continue
		}
		if v, ok := firstAlias(m, al); ok {
			f[canon] = v
		}
	}
	return f
}

type seedCity struct {
	id          string
	fields      domain.Fields
	attractions []seedDoc
}

type seedDoc struct {
	id     string
	fields domain.Fields
}

func mapCountry(m map[string]any) (seedDoc, error) {
	id, err := docID(m, "name")
	if err != nil {
		return seedDoc{}, err
	}
	return seedDoc{id: id, fields: mapRecord(m, nil)}, nil
}

func mapCity(m map[string]any) (seedCity, error) {
	f := mapRecord(m, cityAliases, "attractions")
	id, err := docID(map[string]any{"id": m["id"], "name": f["name"]}, "name")
	if err != nil {
		return seedCity{}, err
	}
	c := seedCity{id: id, fields: f}
	raw, _ := m["attractions"].([]any)
	seen := map[string]int{}
	for _, r := range raw {
		am, ok := r.(map[string]any)
		if !ok {
			continue
		}
		af := mapRecord(am, attractionAliases)
		aid, err := docID(map[string]any{"id": am["id"], "name": af["name"]}, "name")
		if err != nil {
			return seedCity{}, fmt.Errorf("city %s: %w", id, err)
		}
		// repeated names get a numeric suffix so slugs stay unique
		if n := seen[aid]; n > 0 {
			seen[aid] = n + 1
			aid = fmt.Sprintf("%s-%d", aid, n+1)
		} else {
			seen[aid] = 1
		}
		c.attractions = append(c.attractions, seedDoc{id: aid, fields: af})
	}
	f["attractionCount"] = len(c.attractions)
	if _, ok := f["topAttraction"]; !ok && len(c.attractions) > 0 {
		f["topAttraction"] = c.attractions[0].fields.Get("name")
	}
	return c, nil
}
