package memory_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/memory"
)

func TestBatch_UpdateMergesAndStampsTime(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	s := memory.New(memory.WithClock(func() time.Time { return now }))
	ref := domain.Root(domain.CitiesCollection, "rome").Child(domain.AttractionsCollection, "a1")
	s.Put(ref, domain.Fields{"name": "Pantheon", "type": "Temple"})

	b := s.BeginBatch()
	b.Update(ref, domain.Fields{"typeAr": "معبد", "updatedAt": domain.ServerTimestamp})
	require.Equal(t, 1, b.Len())
	require.NoError(t, b.Commit(context.Background()))

	d, err := s.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "Pantheon", d.Fields.Get("name"))
	assert.Equal(t, "معبد", d.Fields.Get("typeAr"))
	assert.Equal(t, now.UTC(), d.Fields["updatedAt"])
	assert.Equal(t, []int{1}, s.CommitSizes())
}

func TestBatch_UpdateMissingDocFailsWholeCommit(t *testing.T) {
	s := memory.New()
	ok := domain.Root(domain.CitiesCollection, "a")
	b := s.BeginBatch()
	b.Set(ok, domain.Fields{"name": "A"})
	b.Update(domain.Root(domain.CitiesCollection, "missing"), domain.Fields{"x": 1})

	err := b.Commit(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.Get(context.Background(), ok)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.CommitSizes())
}

func TestBatch_HookFailureLeavesStoreUntouched(t *testing.T) {
	s := memory.New(memory.WithCommitHook(func(int) error { return errors.New("deadline") }))
	ref := domain.Root(domain.CitiesCollection, "a")
	b := s.BeginBatch()
	b.Set(ref, domain.Fields{"name": "A"})
	require.Error(t, b.Commit(context.Background()))
	_, err := s.Get(context.Background(), ref)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListings(t *testing.T) {
	s := memory.New()
	for _, id := range []string{"b", "a"} {
		c := domain.Root(domain.CitiesCollection, id)
		s.Put(c, domain.Fields{"name": id})
		s.Put(c.Child(domain.AttractionsCollection, "2"), domain.Fields{})
		s.Put(c.Child(domain.AttractionsCollection, "1"), domain.Fields{})
	}
	s.Put(domain.Root(domain.CountriesCollection, "it"), domain.Fields{})
	ctx := context.Background()

	parents, err := s.ListParents(ctx, domain.CitiesCollection)
	require.NoError(t, err)
	require.Len(t, parents, 2)
	assert.Equal(t, "a", parents[0].Ref.ID)

	kids, err := s.ListChildren(ctx, parents[1].Ref, domain.AttractionsCollection)
	require.NoError(t, err)
	require.Len(t, kids, 2)
	assert.Equal(t, "cities/b/attractions/1", kids[0].Ref.Path())

	all, err := s.ListAllAcrossParents(ctx, domain.AttractionsCollection)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "cities/a/attractions/1", all[0].Ref.Path())

	n, err := s.CountAcrossParents(ctx, domain.AttractionsCollection)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestLoadDump(t *testing.T) {
	src := `{"cities/rome": {"name": "Rome"}, "cities/rome/attractions/a1": {"name": "Pantheon", "type": "Temple"}}`
	s := memory.New()
	require.NoError(t, s.Load(bytes.NewBufferString(src)))

	d, err := s.Get(context.Background(), domain.Root(domain.CitiesCollection, "rome").Child(domain.AttractionsCollection, "a1"))
	require.NoError(t, err)
	assert.Equal(t, "Temple", d.Fields.Get("type"))

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))
	again := memory.New()
	require.NoError(t, again.Load(&buf))
	n, _ := again.CountAcrossParents(context.Background(), domain.AttractionsCollection)
	assert.Equal(t, 1, n)

	assert.Error(t, memory.New().Load(bytes.NewBufferString(`{"cities": {}}`)))
}

func TestOpen_DumpFileSurvivesClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "atlas.json")
	ref := domain.Root(domain.CitiesCollection, "rome")

	s, err := memory.Open(path)
	require.NoError(t, err)
	n, _ := s.CountAcrossParents(context.Background(), domain.AttractionsCollection)
	assert.Zero(t, n)
	s.Put(ref, domain.Fields{"name": "Rome"})
	s.Put(ref.Child(domain.AttractionsCollection, "a1"), domain.Fields{"name": "Pantheon"})
	require.NoError(t, s.Close())

	again, err := memory.Open(path)
	require.NoError(t, err)
	d, err := again.Get(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, "Rome", d.Fields.Get("name"))
	n, _ = again.CountAcrossParents(context.Background(), domain.AttractionsCollection)
	assert.Equal(t, 1, n)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpen_RejectsCorruptDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := memory.Open(path)
	assert.ErrorContains(t, err, path)
}

func TestNew_CloseWritesNothing(t *testing.T) {
	s := memory.New()
	s.Put(domain.Root(domain.CitiesCollection, "rome"), domain.Fields{"name": "Rome"})
	assert.NoError(t, s.Close())
}
