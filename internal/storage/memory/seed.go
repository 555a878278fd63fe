package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"travel_atlas/internal/domain"
)

// Load reads a JSON object keyed by document path
// ({"cities/rome": {...}, "cities/rome/attractions/a1": {...}}) into s.
func (s *Store) Load(r io.Reader) error {
	var raw map[string]map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("decode dump: %w", err)
	}
	for path, fields := range raw {
		ref, ok := domain.ParseRef(path)
		if !ok {
			return fmt.Errorf("bad document path %q", path)
		}
		s.Put(ref, fields)
	}
	return nil
}

// Dump writes every document in the Load format.
func (s *Store) Dump(w io.Writer) error {
	s.mu.RLock()
	out := make(map[string]domain.Fields, len(s.docs))
	for p, d := range s.docs {
		out[p] = d.Fields
	}
	s.mu.RUnlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// WithDumpFile backs the store with a Load-format file: Open reads it and
// Close writes every document back.
func WithDumpFile(path string) Option { return func(s *Store) { s.file = path } }

// Open returns a store loaded from path. A missing file yields an empty store
// that Close will create.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(append(opts, WithDumpFile(path))...)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Close writes the store to its dump file, if any. The file is replaced
// atomically so a failed write keeps the previous contents.
func (s *Store) Close() error {
	if s.file == "" {
		return nil
	}
	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := s.Dump(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("dump %s: %w", s.file, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.file)
}
