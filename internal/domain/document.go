package domain

import (
	"strconv"
	"strings"
	"time"
)

// Collection names of the catalog.
const (
	CountriesCollection   = "countries"
	CitiesCollection      = "cities"
	AttractionsCollection = "attractions"
	MetadataCollection    = "metadata"
)

// DocRef addresses a document in a nested collection tree.
// A nil Parent means a top-level document.
type DocRef struct {
	Collection string
	ID         string
	Parent     *DocRef
}

// Root returns a reference to a top-level document.
func Root(collection, id string) DocRef { return DocRef{Collection: collection, ID: id} }

// Child returns a reference to a document nested under r.
func (r DocRef) Child(collection, id string) DocRef {
	p := r
	return DocRef{Collection: collection, ID: id, Parent: &p}
}

// Path renders the slash separated path, e.g. "cities/rome/attractions/colosseum".
func (r DocRef) Path() string {
	if r.Parent == nil {
		return r.Collection + "/" + r.ID
	}
	return r.Parent.Path() + "/" + r.Collection + "/" + r.ID
}

// ParentPath is the parent's path or "" for top-level documents.
func (r DocRef) ParentPath() string {
	if r.Parent == nil {
		return ""
	}
	return r.Parent.Path()
}

// ParentID is the parent's id or "" for top-level documents.
func (r DocRef) ParentID() string {
	if r.Parent == nil {
		return ""
	}
	return r.Parent.ID
}

func (r DocRef) String() string { return r.Path() }

// ParseRef is the inverse of Path.
func ParseRef(path string) (DocRef, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || len(parts)%2 != 0 {
		return DocRef{}, false
	}
	var ref *DocRef
	for i := 0; i < len(parts); i += 2 {
		if parts[i] == "" || parts[i+1] == "" {
			return DocRef{}, false
		}
		next := DocRef{Collection: parts[i], ID: parts[i+1], Parent: ref}
		ref = &next
	}
	return *ref, true
}

// Document is one stored document with loosely typed fields.
type Document struct {
	Ref    DocRef
	Fields Fields
}

// Fields is the raw field map of a document. Accessors treat absent
// fields as empty instead of failing.
type Fields map[string]any

type serverTimestamp struct{}

// ServerTimestamp is a field value sentinel asking the store to write its
// own commit time.
var ServerTimestamp any = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// Has reports whether key is present and not null.
func (f Fields) Has(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Str returns the string value of key. Absent and null fields are "".
// Present fields of another kind are reported with ok=false.
func (f Fields) Str(key string) (s string, ok bool) {
	v, present := f[key]
	if !present || v == nil {
		return "", true
	}
	switch t := v.(type) {
	case string:
		return t, true
	case *string:
		if t == nil {
			return "", true
		}
		return *t, true
	}
	return "", false
}

// Get is Str without the shape check.
func (f Fields) Get(key string) string {
	s, _ := f.Str(key)
	return s
}

// Strings accepts both a single string and a sequence of strings.
func (f Fields) Strings(key string) []string {
	switch t := f[key].(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Int converts numeric and numeric-string values; anything else is 0.
func (f Fields) Int(key string) int {
	switch t := f[key].(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float64:
		return int(t)
	case float32:
		return int(t)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(t))
		return n
	case interface{ Int64() (int64, error) }:
		n, _ := t.Int64()
		return int(n)
	}
	return 0
}

// Float converts numeric and numeric-string values; anything else is 0.
func (f Fields) Float(key string) float64 {
	switch t := f[key].(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		n, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n
	case interface{ Float64() (float64, error) }:
		n, _ := t.Float64()
		return n
	}
	return 0
}

// Text renders scalars as text: strings as-is, numbers without trailing zeros.
func (f Fields) Text(key string) string {
	switch t := f[key].(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case interface{ String() string }:
		return t.String()
	}
	return ""
}

// Map returns a nested record, or nil.
func (f Fields) Map(key string) Fields {
	switch t := f[key].(type) {
	case map[string]any:
		return Fields(t)
	case Fields:
		return t
	}
	return nil
}

// Maps returns a sequence of nested records, skipping other elements.
func (f Fields) Maps(key string) []Fields {
	var out []Fields
	switch t := f[key].(type) {
	case []any:
		for _, v := range t {
			if m, ok := v.(map[string]any); ok {
				out = append(out, Fields(m))
			}
		}
	case []map[string]any:
		for _, m := range t {
			out = append(out, Fields(m))
		}
	}
	return out
}

// Time accepts time.Time values and RFC 3339 strings.
func (f Fields) Time(key string) *time.Time {
	switch t := f[key].(type) {
	case time.Time:
		return &t
	case *time.Time:
		return t
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return &ts
		}
	}
	return nil
}
