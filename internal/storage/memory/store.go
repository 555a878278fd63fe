// Package memory is an in-process DocumentStore used for local runs and
// tests. It can be seeded from a JSON dump of the collection tree.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"travel_atlas/internal/domain"
)

type Store struct {
	mu      sync.RWMutex
	docs    map[string]domain.Document
	commits []int
	hook    func(n int) error
	now     func() time.Time
	file    string
}

type Option func(*Store)

// WithCommitHook runs before every commit; a non-nil error fails the commit
// without applying it.
func WithCommitHook(h func(n int) error) Option { return func(s *Store) { s.hook = h } }

// WithClock overrides the commit timestamp source.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func New(opts ...Option) *Store {
	s := &Store{docs: map[string]domain.Document{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Put writes a document directly, outside any batch.
func (s *Store) Put(ref domain.DocRef, fields domain.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[ref.Path()] = domain.Document{Ref: ref, Fields: clone(fields)}
}

func (s *Store) Get(_ context.Context, ref domain.DocRef) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[ref.Path()]
	if !ok {
		return domain.Document{}, fmt.Errorf("%s: %w", ref.Path(), domain.ErrNotFound)
	}
	return domain.Document{Ref: d.Ref, Fields: clone(d.Fields)}, nil
}

func (s *Store) ListParents(ctx context.Context, collection string) ([]domain.Document, error) {
	return s.list(ctx, func(r domain.DocRef) bool { return r.Parent == nil && r.Collection == collection })
}

func (s *Store) ListChildren(ctx context.Context, parent domain.DocRef, child string) ([]domain.Document, error) {
	pp := parent.Path()
	return s.list(ctx, func(r domain.DocRef) bool { return r.Collection == child && r.ParentPath() == pp })
}

func (s *Store) ListAllAcrossParents(ctx context.Context, child string) ([]domain.Document, error) {
	return s.list(ctx, func(r domain.DocRef) bool { return r.Parent != nil && r.Collection == child })
}

func (s *Store) CountAcrossParents(_ context.Context, child string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.docs {
		if d.Ref.Parent != nil && d.Ref.Collection == child {
			n++
		}
	}
	return n, nil
}

func (s *Store) list(ctx context.Context, keep func(domain.DocRef) bool) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Document
	for _, d := range s.docs {
		if keep(d.Ref) {
			out = append(out, domain.Document{Ref: d.Ref, Fields: clone(d.Fields)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if pi, pj := out[i].Ref.ParentPath(), out[j].Ref.ParentPath(); pi != pj {
			return pi < pj
		}
		return out[i].Ref.ID < out[j].Ref.ID
	})
	return out, nil
}

// CommitSizes returns the number of writes of every successful commit.
func (s *Store) CommitSizes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.commits...)
}

type op struct {
	ref    domain.DocRef
	fields domain.Fields
	merge  bool
}

type batch struct {
	s   *Store
	ops []op
}

func (s *Store) BeginBatch() domain.Batch { return &batch{s: s} }

func (b *batch) Set(ref domain.DocRef, f domain.Fields) {
	b.ops = append(b.ops, op{ref: ref, fields: clone(f)})
}

func (b *batch) Update(ref domain.DocRef, f domain.Fields) {
	b.ops = append(b.ops, op{ref: ref, fields: clone(f), merge: true})
}

func (b *batch) Len() int { return len(b.ops) }

func (b *batch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := b.s
	if s.hook != nil {
		if err := s.hook(len(b.ops)); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range b.ops {
		if o.merge {
			if _, ok := s.docs[o.ref.Path()]; !ok {
				return fmt.Errorf("update %s: %w", o.ref.Path(), domain.ErrNotFound)
			}
		}
	}
	now := s.now().UTC()
	for _, o := range b.ops {
		next := domain.Fields{}
		if o.merge {
			next = s.docs[o.ref.Path()].Fields
		}
		for k, v := range o.fields {
			if domain.IsServerTimestamp(v) {
				v = now
			}
			next[k] = v
		}
		s.docs[o.ref.Path()] = domain.Document{Ref: o.ref, Fields: next}
	}
	s.commits = append(s.commits, len(b.ops))
	b.ops = nil
	return nil
}

func clone(f domain.Fields) domain.Fields {
	out := make(domain.Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
