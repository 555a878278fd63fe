package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"travel_atlas/internal/domain"
)

// SeedService imports a fixture into a DocumentStore. Cities are written
// concurrently, each in batches of at most batchSize documents.
type SeedService struct {
	store     domain.DocumentStore
	cache     domain.Cache
	batchSize int
	workers   int
	log       zerolog.Logger
}

type SeedResult struct {
	Countries   int
	Cities      int
	Attractions int
	Metadata    int
	Failed      []string
}

// NewSeedService builds the service; cache may be nil.
func NewSeedService(s domain.DocumentStore, cache domain.Cache, batchSize, workers int, logger zerolog.Logger) *SeedService {
	if batchSize <= 0 || batchSize > 500 {
		batchSize = 500
	}
	if workers <= 0 {
		workers = 1
	}
	return &SeedService{
		store:     s,
		cache:     cache,
		batchSize: batchSize,
		workers:   workers,
		log:       logger.With().Str("component", "seed").Logger(),
	}
}

func (s *SeedService) Import(ctx context.Context, fx Fixture) (SeedResult, error) {
	var res SeedResult

	// 1) Top-level documents first: countries and metadata.
	var top []seedDoc
	var topRefs []domain.DocRef
	for _, m := range fx.Countries {
		d, err := mapCountry(m)
		if err != nil {
			return res, err
		}
		top = append(top, d)
		topRefs = append(topRefs, domain.Root(domain.CountriesCollection, d.id))
	}
	res.Countries = len(top)
	for id, m := range fx.Metadata {
		top = append(top, seedDoc{id: id, fields: domain.Fields(m)})
		topRefs = append(topRefs, domain.Root(domain.MetadataCollection, id))
	}
	res.Metadata = len(fx.Metadata)
	if err := s.write(ctx, topRefs, top); err != nil {
		return res, fmt.Errorf("seed countries: %w", err)
	}

	// 2) Cities, bounded by the worker semaphore.
	cities := make([]seedCity, 0, len(fx.Cities))
	for _, m := range fx.Cities {
		c, err := mapCity(m)
		if err != nil {
			return res, err
		}
		cities = append(cities, c)
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, c := range cities {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(c seedCity) {
			defer wg.Done()
			defer sem.Release(1)

			err := s.seedCity(ctx, c)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Warn().Str("city", c.id).Err(err).Msg("seed city failed")
				res.Failed = append(res.Failed, c.id)
				return
			}
			res.Cities++
			res.Attractions += len(c.attractions)
		}(c)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return res, err
	}

	// 3) Anything cached was read from the old catalog.
	if s.cache != nil {
		if err := Invalidate(ctx, s.cache); err != nil {
			s.log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	s.log.Info().
		Int("countries", res.Countries).
		Int("cities", res.Cities).
		Int("attractions", res.Attractions).
		Int("failed", len(res.Failed)).
		Msg("seed completed")
	return res, nil
}

func (s *SeedService) seedCity(ctx context.Context, c seedCity) error {
	city := domain.Root(domain.CitiesCollection, c.id)
	refs := []domain.DocRef{city}
	docs := []seedDoc{{id: c.id, fields: c.fields}}
	for _, a := range c.attractions {
		refs = append(refs, city.Child(domain.AttractionsCollection, a.id))
		docs = append(docs, a)
	}
	return s.write(ctx, refs, docs)
}

// write sets docs in chunks of batchSize.
func (s *SeedService) write(ctx context.Context, refs []domain.DocRef, docs []seedDoc) error {
	for start := 0; start < len(docs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		b := s.store.BeginBatch()
		for i := start; i < end; i++ {
			b.Set(refs[i], docs[i].fields)
		}
		if err := b.Commit(ctx); err != nil {
			return err
		}
	}
	return nil
}
