package docsql_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/docsql"
	"travel_atlas/internal/storage/sqlite"
)

func newStore(t *testing.T) *docsql.Store {
	t.Helper()
	s, err := sqlite.NewStore(context.Background(), filepath.Join(t.TempDir(), "atlas.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var (
	rome    = domain.Root(domain.CitiesCollection, "rome")
	paris   = domain.Root(domain.CitiesCollection, "paris")
	romeA1  = rome.Child(domain.AttractionsCollection, "a1")
	romeA2  = rome.Child(domain.AttractionsCollection, "a2")
	parisA1 = paris.Child(domain.AttractionsCollection, "a1")
)

func seed(t *testing.T, s *docsql.Store) {
	t.Helper()
	b := s.BeginBatch()
	b.Set(rome, domain.Fields{"name": "Rome", "country": "Italy"})
	b.Set(paris, domain.Fields{"name": "Paris"})
	b.Set(romeA2, domain.Fields{"name": "Trevi Fountain", "type": "Fountain"})
	b.Set(romeA1, domain.Fields{"name": "Pantheon", "type": "Temple", "rating": 4.5})
	b.Set(parisA1, domain.Fields{"name": "Louvre", "type": "Museum"})
	require.Equal(t, 5, b.Len())
	require.NoError(t, b.Commit(context.Background()))
}

func TestStore_Listings(t *testing.T) {
	s := newStore(t)
	seed(t, s)
	ctx := context.Background()

	parents, err := s.ListParents(ctx, domain.CitiesCollection)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, "paris", parents[0].Ref.ID)
	assert.Nil(t, parents[0].Ref.Parent)

	kids, err := s.ListChildren(ctx, rome, domain.AttractionsCollection)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, romeA1.Path(), kids[0].Ref.Path())
	assert.Equal(t, "rome", kids[0].Ref.ParentID())
	assert.InDelta(t, 4.5, kids[0].Fields.Float("rating"), 0.001)

	all, err := s.ListAllAcrossParents(ctx, domain.AttractionsCollection)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, parisA1.Path(), all[0].Ref.Path())

	n, err := s.CountAcrossParents(ctx, domain.AttractionsCollection)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_UpdateMergesFields(t *testing.T) {
	s := newStore(t)
	seed(t, s)
	ctx := context.Background()

	b := s.BeginBatch()
	b.Update(romeA1, domain.Fields{"typeAr": "معبد", "updatedAt": domain.ServerTimestamp})
	require.NoError(t, b.Commit(ctx))

	d, err := s.Get(ctx, romeA1)
	require.NoError(t, err)
	a, err := domain.DecodeAttraction(d)
	require.NoError(t, err)
	assert.Equal(t, "Pantheon", a.Name)
	assert.Equal(t, "Temple", a.Type)
	assert.Equal(t, "معبد", a.TypeAr)
	require.NotNil(t, a.UpdatedAt)
	assert.WithinDuration(t, time.Now(), *a.UpdatedAt, time.Minute)
}

func TestStore_SetReplacesDocument(t *testing.T) {
	s := newStore(t)
	seed(t, s)
	ctx := context.Background()

	b := s.BeginBatch()
	b.Set(romeA1, domain.Fields{"name": "Pantheon"})
	require.NoError(t, b.Commit(ctx))

	d, err := s.Get(ctx, romeA1)
	require.NoError(t, err)
	assert.False(t, d.Fields.Has("type"))
}

func TestStore_FailedCommitIsAtomicAndRetryable(t *testing.T) {
	s := newStore(t)
	seed(t, s)
	ctx := context.Background()
	missing := rome.Child(domain.AttractionsCollection, "nope")

	b := s.BeginBatch()
	b.Update(romeA1, domain.Fields{"typeAr": "معبد"})
	b.Update(missing, domain.Fields{"typeAr": "x"})
	require.ErrorIs(t, b.Commit(ctx), domain.ErrNotFound)

	d, err := s.Get(ctx, romeA1)
	require.NoError(t, err)
	assert.False(t, d.Fields.Has("typeAr"))

	// the staged writes survive a failed commit
	require.Equal(t, 2, b.Len())
	wb := s.BeginBatch()
	wb.Set(missing, domain.Fields{"name": "Late"})
	require.NoError(t, wb.Commit(ctx))
	require.NoError(t, b.Commit(ctx))

	d, err = s.Get(ctx, romeA1)
	require.NoError(t, err)
	assert.Equal(t, "معبد", d.Fields.Get("typeAr"))
}

func TestStore_GetMissing(t *testing.T) {
	s := newStore(t)
	_, err := s.Get(context.Background(), romeA1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
