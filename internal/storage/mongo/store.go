// Package mongo emulates the nested collection tree on a single MongoDB
// collection keyed by document path. Batches run in a multi-document
// transaction, so the server must be a replica set.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travel_atlas/internal/domain"
)

const collectionName = "documents"

type record struct {
	Path       string    `bson:"_id"`
	Collection string    `bson:"collection"`
	DocID      string    `bson:"docId"`
	ParentPath string    `bson:"parentPath"`
	Fields     bson.M    `bson:"fields"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

func New(ctx context.Context, uri, database string) (*Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("mongo: uri is empty")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	s := &Store{client: client, coll: client.Database(database).Collection(collectionName), now: time.Now}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "collection", Value: 1}, {Key: "parentPath", Value: 1}, {Key: "docId", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Get(ctx context.Context, ref domain.DocRef) (domain.Document, error) {
	var r record
	err := s.coll.FindOne(ctx, bson.M{"_id": ref.Path()}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Document{}, fmt.Errorf("%s: %w", ref.Path(), domain.ErrNotFound)
	}
	if err != nil {
		return domain.Document{}, err
	}
	return r.document()
}

func (s *Store) ListParents(ctx context.Context, collection string) ([]domain.Document, error) {
	return s.find(ctx, bson.M{"collection": collection, "parentPath": ""})
}

func (s *Store) ListChildren(ctx context.Context, parent domain.DocRef, child string) ([]domain.Document, error) {
	return s.find(ctx, bson.M{"collection": child, "parentPath": parent.Path()})
}

func (s *Store) ListAllAcrossParents(ctx context.Context, child string) ([]domain.Document, error) {
	return s.find(ctx, nestedFilter(child))
}

func (s *Store) CountAcrossParents(ctx context.Context, child string) (int, error) {
	n, err := s.coll.CountDocuments(ctx, nestedFilter(child))
	return int(n), err
}

func nestedFilter(child string) bson.M {
	return bson.M{"collection": child, "parentPath": bson.M{"$ne": ""}}
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]domain.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "parentPath", Value: 1}, {Key: "docId", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, err
	}
	out := make([]domain.Document, 0, len(recs))
	for _, r := range recs {
		d, err := r.document()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (r record) document() (domain.Document, error) {
	ref := domain.DocRef{Collection: r.Collection, ID: r.DocID}
	if r.ParentPath != "" {
		p, ok := domain.ParseRef(r.ParentPath)
		if !ok {
			return domain.Document{}, fmt.Errorf("bad parent path %q: %w", r.ParentPath, domain.ErrMalformed)
		}
		ref.Parent = &p
	}
	f := domain.Fields{}
	for k, v := range r.Fields {
		f[k] = normalize(v)
	}
	return domain.Document{Ref: ref, Fields: f}, nil
}

// normalize turns BSON container and date types into the plain Go values
// domain.Fields accessors expect.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case int32:
		return int64(t)
	}
	return v
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
	b.ops = append(b.ops, op{ref: ref, fields: f})
}

func (b *batch) Update(ref domain.DocRef, f domain.Fields) {
	b.ops = append(b.ops, op{ref: ref, fields: f, merge: true})
}

func (b *batch) Len() int { return len(b.ops) }

func (b *batch) Commit(ctx context.Context) error {
	s := b.s
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		now := s.now().UTC()
		for _, o := range b.ops {
			if err := s.apply(sc, o, now); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return err
	}
	b.ops = nil
	return nil
}

func (s *Store) apply(ctx context.Context, o op, now time.Time) error {
	path := o.ref.Path()
	if !o.merge {
		rec := record{
			Path:       path,
			Collection: o.ref.Collection,
			DocID:      o.ref.ID,
			ParentPath: o.ref.ParentPath(),
			Fields:     resolve(o.fields, now),
			UpdatedAt:  now,
		}
		_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": path}, rec, options.Replace().SetUpsert(true))
		return err
	}
	set := bson.M{"updatedAt": now}
	for k, v := range resolve(o.fields, now) {
		set["fields."+k] = v
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": path}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update %s: %w", path, domain.ErrNotFound)
	}
	return nil
}

func resolve(f domain.Fields, now time.Time) bson.M {
	out := make(bson.M, len(f))
	for k, v := range f {
		if domain.IsServerTimestamp(v) {
			v = now
		}
		out[k] = v
	}
	return out
}
