package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"travel_atlas/internal/domain"
)

// generationKey holds the cache generation; bumping it orphans every
// cached catalog response at once.
const generationKey = "catalog:gen"

const maxCachedBytes = 1_000_000

type QueryService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

func NewQueryService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// Invalidate drops every cached catalog response.
func Invalidate(ctx context.Context, c domain.Cache) error {
	return c.Set(ctx, generationKey, time.Now().UnixNano(), 0)
}

func (s *QueryService) key(ctx context.Context, k string) string {
	var gen int64
	_, _ = s.cache.Get(ctx, generationKey, &gen)
	return fmt.Sprintf("catalog:%d:%s", gen, k)
}

// cached serves key from the cache, collapsing concurrent misses into one
// repository call.
func cached[T any](ctx context.Context, s *QueryService, key string, load func(context.Context) (T, error)) (T, error) {
	key = s.key(ctx, key)
	var out T
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	v, err, _ := s.group.Do(key, func() (any, error) {
		res, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if b, _ := json.Marshal(res); len(b) < maxCachedBytes {
			_ = s.cache.Set(ctx, key, res, int(s.cacheTTL.Seconds()))
		}
		return res, nil
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}

func (s *QueryService) ListCountries(ctx context.Context, q domain.CountriesQuery) ([]domain.Country, error) {
	return cached(ctx, s, "countries:"+q.Continent, func(ctx context.Context) ([]domain.Country, error) {
		return s.repo.ListCountries(ctx, q)
	})
}

func (s *QueryService) GetCountry(ctx context.Context, id string) (domain.Country, error) {
	return cached(ctx, s, "country:"+id, func(ctx context.Context) (domain.Country, error) {
		return s.repo.GetCountry(ctx, id)
	})
}

func (s *QueryService) ListCities(ctx context.Context, q domain.CitiesQuery) ([]domain.City, error) {
	key := fmt.Sprintf("cities:%s:%s:%s", q.Country, q.Continent, q.Q)
	return cached(ctx, s, key, func(ctx context.Context) ([]domain.City, error) {
		return s.repo.ListCities(ctx, q)
	})
}

func (s *QueryService) GetCity(ctx context.Context, id string) (domain.City, error) {
	return cached(ctx, s, "city:"+id, func(ctx context.Context) (domain.City, error) {
		return s.repo.GetCity(ctx, id)
	})
}

func (s *QueryService) ListAttractions(ctx context.Context, q domain.AttractionsQuery) (domain.AttractionsPage, error) {
	key := fmt.Sprintf("attractions:%s:%s:%s:%s:%s:%s:%s:%d:%d",
		q.Lang, q.CityID, q.Name, q.Type, q.City, q.Country, q.Continent, q.Page, q.PageSize)
	return cached(ctx, s, key, func(ctx context.Context) (domain.AttractionsPage, error) {
		return s.repo.ListAttractions(ctx, q)
	})
}

func (s *QueryService) GetAttraction(ctx context.Context, id, lang string) (domain.AttractionView, error) {
	return cached(ctx, s, "attraction:"+id+":"+lang, func(ctx context.Context) (domain.AttractionView, error) {
		return s.repo.GetAttraction(ctx, id, lang)
	})
}

func (s *QueryService) AttractionTypes(ctx context.Context) ([]domain.TypePair, error) {
	return cached(ctx, s, "attraction-types", s.repo.AttractionTypes)
}

func (s *QueryService) Metadata(ctx context.Context, id string) (map[string]any, error) {
	return cached(ctx, s, "metadata:"+id, func(ctx context.Context) (map[string]any, error) {
		return s.repo.Metadata(ctx, id)
	})
}
