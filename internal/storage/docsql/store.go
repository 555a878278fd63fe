// Package docsql stores the nested document tree in one relational table,
// so the catalog can run on MySQL, Postgres or SQLite.
package docsql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"travel_atlas/internal/domain"
)

const table = "documents"

// Dialect carries what differs between engines.
type Dialect struct {
	Name        string
	Placeholder squirrel.PlaceholderFormat
	// Schema is executed statement by statement by Migrate.
	Schema []string
	// UpsertSuffix turns the insert of a document into an upsert on path.
	UpsertSuffix string
}

type Store struct {
	db  *sql.DB
	d   Dialect
	sb  squirrel.StatementBuilderType
	now func() time.Time
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{
		db:  db,
		d:   d,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder),
		now: time.Now,
	}
}

// DB exposes the pool for health checks.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.d.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s migrate: %w", s.d.Name, err)
		}
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) selectDocs() squirrel.SelectBuilder {
	return s.sb.Select("collection", "doc_id", "parent_path", "fields").From(table)
}

func (s *Store) Get(ctx context.Context, ref domain.DocRef) (domain.Document, error) {
	docs, err := s.query(ctx, s.selectDocs().Where(squirrel.Eq{"path": ref.Path()}))
	if err != nil {
		return domain.Document{}, err
	}
	if len(docs) == 0 {
		return domain.Document{}, fmt.Errorf("%s: %w", ref.Path(), domain.ErrNotFound)
	}
	return docs[0], nil
}

func (s *Store) ListParents(ctx context.Context, collection string) ([]domain.Document, error) {
	return s.query(ctx, s.selectDocs().
		Where(squirrel.Eq{"collection": collection, "parent_path": ""}).
		OrderBy("doc_id"))
}

func (s *Store) ListChildren(ctx context.Context, parent domain.DocRef, child string) ([]domain.Document, error) {
	return s.query(ctx, s.selectDocs().
		Where(squirrel.Eq{"collection": child, "parent_path": parent.Path()}).
		OrderBy("doc_id"))
}

func (s *Store) ListAllAcrossParents(ctx context.Context, child string) ([]domain.Document, error) {
	return s.query(ctx, s.selectDocs().
		Where(squirrel.Eq{"collection": child}).
		Where(squirrel.NotEq{"parent_path": ""}).
		OrderBy("parent_path", "doc_id"))
}

func (s *Store) CountAcrossParents(ctx context.Context, child string) (int, error) {
	q, args, err := s.sb.Select("COUNT(*)").From(table).
		Where(squirrel.Eq{"collection": child}).
		Where(squirrel.NotEq{"parent_path": ""}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) query(ctx context.Context, b squirrel.SelectBuilder) ([]domain.Document, error) {
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		var (
			collection, id, parentPath string
			raw                        []byte
		)
		if err := rows.Scan(&collection, &id, &parentPath, &raw); err != nil {
			return nil, err
		}
		ref := domain.DocRef{Collection: collection, ID: id}
		if parentPath != "" {
			p, ok := domain.ParseRef(parentPath)
			if !ok {
				return nil, fmt.Errorf("bad parent path %q: %w", parentPath, domain.ErrMalformed)
			}
			ref.Parent = &p
		}
		fields := domain.Fields{}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("%s fields: %w", ref.Path(), err)
			}
		}
		out = append(out, domain.Document{Ref: ref, Fields: fields})
	}
	return out, rows.Err()
}

type op struct {
	ref    domain.DocRef
	fields domain.Fields
	merge  bool
}

// batch keeps its staged writes until a commit succeeds, so a failed
// Commit can be called again.
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
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := s.now().UTC()
	for _, o := range b.ops {
		if o.merge {
			err = s.update(ctx, tx, o, now)
		} else {
			err = s.upsert(ctx, tx, o.ref, resolve(domain.Fields{}, o.fields, now), now)
		}
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	b.ops = nil
	return nil
}

func (s *Store) upsert(ctx context.Context, tx *sql.Tx, ref domain.DocRef, f domain.Fields, now time.Time) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%s fields: %w", ref.Path(), err)
	}
	q, args, err := s.sb.Insert(table).
		Columns("path", "collection", "doc_id", "parent_path", "fields", "updated_at").
		Values(ref.Path(), ref.Collection, ref.ID, ref.ParentPath(), string(raw), now).
		Suffix(s.d.UpsertSuffix).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, q, args...)
	return err
}

func (s *Store) update(ctx context.Context, tx *sql.Tx, o op, now time.Time) error {
	q, args, err := s.sb.Select("fields").From(table).Where(squirrel.Eq{"path": o.ref.Path()}).ToSql()
	if err != nil {
		return err
	}
	var raw []byte
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update %s: %w", o.ref.Path(), domain.ErrNotFound)
		}
		return err
	}
	cur := domain.Fields{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &cur); err != nil {
			return fmt.Errorf("%s fields: %w", o.ref.Path(), err)
		}
	}
	next, err := json.Marshal(resolve(cur, o.fields, now))
	if err != nil {
		return err
	}
	q, args, err = s.sb.Update(table).
		Set("fields", string(next)).
		Set("updated_at", now).
		Where(squirrel.Eq{"path": o.ref.Path()}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, q, args...)
	return err
}

// resolve merges f into base, replacing server timestamps with now.
func resolve(base, f domain.Fields, now time.Time) domain.Fields {
	for k, v := range f {
		if domain.IsServerTimestamp(v) {
			v = now
		}
		base[k] = v
	}
	return base
}
