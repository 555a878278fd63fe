// Package firestore is the DocumentStore over Cloud Firestore, where the
// catalog lives in production.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/option"

	"travel_atlas/internal/domain"
)

type Config struct {
	ProjectID string
	// CredentialsFile is a service account key; empty uses the ambient
	// credentials (or FIRESTORE_EMULATOR_HOST).
	CredentialsFile string
}

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firestore: project id is empty")
	}
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	c, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &Store{client: c}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) docRef(r domain.DocRef) *firestore.DocumentRef {
	if r.Parent == nil {
		return s.client.Collection(r.Collection).Doc(r.ID)
	}
	return s.docRef(*r.Parent).Collection(r.Collection).Doc(r.ID)
}

// toRef converts a Firestore document reference to a domain path.
func toRef(d *firestore.DocumentRef) domain.DocRef {
	ref := domain.DocRef{Collection: d.Parent.ID, ID: d.ID}
	if p := d.Parent.Parent; p != nil {
		parent := toRef(p)
		ref.Parent = &parent
	}
	return ref
}

func toDocument(snap *firestore.DocumentSnapshot) domain.Document {
	return domain.Document{Ref: toRef(snap.Ref), Fields: domain.Fields(snap.Data())}
}

func (s *Store) Get(ctx context.Context, ref domain.DocRef) (domain.Document, error) {
	snap, err := s.docRef(ref).Get(ctx)
	if snap != nil && !snap.Exists() {
		return domain.Document{}, fmt.Errorf("%s: %w", ref.Path(), domain.ErrNotFound)
	}
	if err != nil {
		return domain.Document{}, err
	}
	return toDocument(snap), nil
}

func (s *Store) ListParents(ctx context.Context, collection string) ([]domain.Document, error) {
	return collect(s.client.Collection(collection).OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx), false)
}

func (s *Store) ListChildren(ctx context.Context, parent domain.DocRef, child string) ([]domain.Document, error) {
	q := s.docRef(parent).Collection(child).OrderBy(firestore.DocumentID, firestore.Asc)
	return collect(q.Documents(ctx), false)
}

// ListAllAcrossParents runs a collection group query. Top-level
// collections sharing the name are left out.
func (s *Store) ListAllAcrossParents(ctx context.Context, child string) ([]domain.Document, error) {
	return collect(s.client.CollectionGroup(child).Documents(ctx), true)
}

func (s *Store) CountAcrossParents(ctx context.Context, child string) (int, error) {
	res, err := s.client.CollectionGroup(child).NewAggregationQuery().WithCount("n").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["n"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("firestore count: unexpected result %T", res["n"])
	}
	return int(v.GetIntegerValue()), nil
}

func collect(it *firestore.DocumentIterator, nestedOnly bool) ([]domain.Document, error) {
	snaps, err := it.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(snaps))
	for _, snap := range snaps {
		if nestedOnly && snap.Ref.Parent.Parent == nil {
			continue
		}
		out = append(out, toDocument(snap))
	}
	return out, nil
}

type op struct {
	ref    domain.DocRef
	fields domain.Fields
	merge  bool
}

// batch replays its staged writes inside a fresh transaction on every
// Commit, so a failed commit can be retried.
type batch struct {
	s   *Store
	ops []op
}

func (s *Store) BeginBatch() domain.Batch { return &batch{s: s} }

func (b *batch) Set(ref domain.DocRef, f domain.Fields) {
	b.ops = append(b.ops, op{ref: ref, fields: f})
}

func (b *batch) Update(ref domain.DocRef, f domain.Fields) {
	b.ops = append(b.ops, op{ref: ref, fields: f, merge: true})
}

func (b *batch) Len() int { return len(b.ops) }

func (b *batch) Commit(ctx context.Context) error {
	err := b.s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		for _, o := range b.ops {
			ref := b.s.docRef(o.ref)
			if !o.merge {
				if err := tx.Set(ref, values(o.fields)); err != nil {
					return err
				}
				continue
			}
			ups := make([]firestore.Update, 0, len(o.fields))
			for k, v := range o.fields {
				ups = append(ups, firestore.Update{Path: k, Value: value(v)})
			}
			if err := tx.Update(ref, ups); err != nil {
				return err
			}
		}
		return nil
	}, firestore.MaxAttempts(1))
	if err != nil {
		return err
	}
	b.ops = nil
	return nil
}

func values(f domain.Fields) map[string]any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = value(v)
	}
	return out
}

func value(v any) any {
	if domain.IsServerTimestamp(v) {
		return firestore.ServerTimestamp
	}
	return v
}
