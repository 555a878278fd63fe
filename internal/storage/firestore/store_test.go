package firestore_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/firestore"
)

// Runs against the emulator only: FIRESTORE_EMULATOR_HOST=localhost:8080.
func TestStore_Emulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	s, err := firestore.New(ctx, firestore.Config{ProjectID: "atlas-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	// unique collection names keep reruns independent
	parentColl := "cities-" + uuid.NewString()[:8]
	childColl := "attractions-" + uuid.NewString()[:8]
	city := domain.Root(parentColl, "rome")
	a1 := city.Child(childColl, "a1")

	b := s.BeginBatch()
	b.Set(city, domain.Fields{"name": "Rome"})
	b.Set(a1, domain.Fields{"name": "Pantheon", "type": "Temple"})
	require.NoError(t, b.Commit(ctx))

	u := s.BeginBatch()
	u.Update(a1, domain.Fields{"typeAr": "معبد", "updatedAt": domain.ServerTimestamp})
	require.NoError(t, u.Commit(ctx))

	kids, err := s.ListChildren(ctx, city, childColl)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, a1.Path(), kids[0].Ref.Path())
	assert.Equal(t, "معبد", kids[0].Fields.Get("typeAr"))
	assert.NotNil(t, kids[0].Fields.Time("updatedAt"))

	all, err := s.ListAllAcrossParents(ctx, childColl)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	n, err := s.CountAcrossParents(ctx, childColl)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Get(ctx, city.Child(childColl, "missing"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
