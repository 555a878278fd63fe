package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"travel_atlas/internal/app"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/storage/memory"
)

const fixtureJSON = `{
  "countries": [{"id": "italy", "name": "Italy", "continent": "Europe"}],
  "metadata": {"app_metadata": {"version": "2"}},
  "cities": [
    {"name": "São Paulo", "country": "Brazil", "bestTime": ["May", "June"],
     "attractions": [
       {"title": "Ibirapuera Park", "category": "Park"},
       {"title": "Ibirapuera Park", "category": "Park"},
       {"id": "masp", "name": "MASP", "type": "Museum", "description": "Art museum"}
     ]},
    {"id": "rome", "name": "Rome", "airport": {"code": "FCO"},
     "attractions": [{"id": "pantheon", "name": "Pantheon", "type": "Temple"}]}
  ]
}`

func TestSeed_ImportsFixture(t *testing.T) {
	fx, err := app.ReadFixture(strings.NewReader(fixtureJSON))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	store := memory.New()
	cache := &fakeCache{}
	svc := app.NewSeedService(store, cache, 2, 2, zerolog.Nop())

	res, err := svc.Import(context.Background(), fx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Countries != 1 || res.Cities != 2 || res.Attractions != 4 || res.Metadata != 1 || len(res.Failed) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}

	ctx := context.Background()
	sp, err := store.Get(ctx, domain.Root(domain.CitiesCollection, "sao-paulo"))
	if err != nil {
		t.Fatalf("slugged city missing: %v", err)
	}
	city, _ := domain.DecodeCity(sp)
	if city.AttractionCount != 3 || city.TopAttraction != "Ibirapuera Park" || !city.BestTimeToVisit.List {
		t.Fatalf("unexpected city: %+v", city)
	}

	park2, err := store.Get(ctx, sp.Ref.Child(domain.AttractionsCollection, "ibirapuera-park-2"))
	if err != nil {
		t.Fatalf("duplicate name not suffixed: %v", err)
	}
	if park2.Fields.Get("type") != "Park" || park2.Fields.Get("name") != "Ibirapuera Park" {
		t.Fatalf("aliases not applied: %+v", park2.Fields)
	}

	rome, _ := store.Get(ctx, domain.Root(domain.CitiesCollection, "rome"))
	if rome.Fields.Get("airportCode") != "FCO" {
		t.Fatalf("nested alias not applied: %+v", rome.Fields)
	}
	if _, ok := rome.Fields["attractions"]; ok {
		t.Fatal("nested attractions leaked into the city document")
	}

	// batch size 2: no commit may exceed it
	for _, n := range store.CommitSizes() {
		if n > 2 {
			t.Fatalf("commit of %d documents exceeds batch size", n)
		}
	}

	var gen int64
	if ok, _ := cache.Get(ctx, "catalog:gen", &gen); !ok || gen == 0 {
		t.Fatal("expected cache generation bump")
	}
}

func TestSeed_FailedCityIsReported(t *testing.T) {
	fx, _ := app.ReadFixture(strings.NewReader(fixtureJSON))
	var mu sync.Mutex
	calls := 0
	store := memory.New(memory.WithCommitHook(func(n int) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		// the first commit is the countries batch; rome is the only later batch of two
		if calls > 1 && n == 2 {
			return errors.New("deadline exceeded")
		}
		return nil
	}))
	svc := app.NewSeedService(store, nil, 500, 1, zerolog.Nop())

	res, err := svc.Import(context.Background(), fx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Cities != 1 || len(res.Failed) != 1 || res.Failed[0] != "rome" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSeed_RejectsRecordsWithoutIdentity(t *testing.T) {
	fx := app.Fixture{Cities: []map[string]any{{"country": "Nowhere"}}}
	_, err := app.NewSeedService(memory.New(), nil, 10, 1, zerolog.Nop()).Import(context.Background(), fx)
	if !errors.Is(err, domain.ErrMalformed) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}
