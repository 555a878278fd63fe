// Package catalog answers the website's read queries over any
// DocumentStore: filtering, paging and language selection.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"travel_atlas/internal/domain"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Repo struct {
	store domain.DocumentStore
}

func New(store domain.DocumentStore) *Repo { return &Repo{store: store} }

var _ domain.CatalogRepository = (*Repo)(nil)

func (r *Repo) ListCountries(ctx context.Context, q domain.CountriesQuery) ([]domain.Country, error) {
	docs, err := r.store.ListParents(ctx, domain.CountriesCollection)
	if err != nil {
		return nil, err
	}
	out := []domain.Country{}
	for _, d := range docs {
		c, err := domain.DecodeCountry(d)
		if err != nil {
			continue
		}
		if q.Continent != "" && !strings.EqualFold(c.Continent, q.Continent) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) GetCountry(ctx context.Context, id string) (domain.Country, error) {
	d, err := r.store.Get(ctx, domain.Root(domain.CountriesCollection, id))
	if err != nil {
		return domain.Country{}, err
	}
	return domain.DecodeCountry(d)
}

func (r *Repo) cities(ctx context.Context) ([]domain.City, error) {
	docs, err := r.store.ListParents(ctx, domain.CitiesCollection)
	if err != nil {
		return nil, err
	}
	out := make([]domain.City, 0, len(docs))
	for _, d := range docs {
		c, err := domain.DecodeCity(d)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) ListCities(ctx context.Context, q domain.CitiesQuery) ([]domain.City, error) {
	all, err := r.cities(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.City{}
	needle := strings.ToLower(q.Q)
	for _, c := range all {
		if q.Country != "" && !matchCountry(c, q.Country) {
			continue
		}
		if q.Continent != "" && !strings.EqualFold(c.Continent, q.Continent) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(c.Name), needle) {
			continue
		}
		out = append(out, c)
	}
	if q.Country != "" || q.Continent != "" {
		col := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool { return col.CompareString(out[i].Name, out[j].Name) < 0 })
	}
	return out, nil
}

// matchCountry accepts the country name or its document id.
func matchCountry(c domain.City, country string) bool {
	return strings.EqualFold(c.Country, country) || (c.CountryID != "" && strings.EqualFold(c.CountryID, country))
}

func (r *Repo) GetCity(ctx context.Context, id string) (domain.City, error) {
	d, err := r.store.Get(ctx, domain.Root(domain.CitiesCollection, id))
	if err != nil {
		return domain.City{}, err
	}
	return domain.DecodeCity(d)
}

func (r *Repo) ListAttractions(ctx context.Context, q domain.AttractionsQuery) (domain.AttractionsPage, error) {
	page, size := normalizePage(q.Page, q.PageSize)

	docs, cities, err := r.attractionDocs(ctx, q.CityID)
	if err != nil {
		return domain.AttractionsPage{}, err
	}

	var matched []domain.AttractionView
	for _, d := range docs {
		a, derr := domain.DecodeAttraction(d)
		if derr != nil {
			continue
		}
		c := cities[a.CityID]
		if !matches(q, a, c) {
			continue
		}
		matched = append(matched, domain.Localize(a, c, q.Lang))
	}

	out := domain.AttractionsPage{Items: []domain.AttractionView{}, Page: page, PageSize: size, Total: len(matched)}
	// huge pages must not overflow the offset
	if pages := (len(matched) + size - 1) / size; page <= pages {
		from := (page - 1) * size
		to := from + size
		if to > len(matched) {
			to = len(matched)
		}
		out.Items = matched[from:to]
	}
	return out, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// attractionDocs reads one city's attractions, or all of them when cityID
// is empty, along with the cities they belong to.
func (r *Repo) attractionDocs(ctx context.Context, cityID string) ([]domain.Document, map[string]domain.City, error) {
	cities := map[string]domain.City{}
	if cityID != "" {
		city, err := r.GetCity(ctx, cityID)
		if err != nil {
			return nil, nil, err
		}
		cities[city.ID] = city
		docs, err := r.store.ListChildren(ctx, domain.Root(domain.CitiesCollection, cityID), domain.AttractionsCollection)
		return docs, cities, err
	}
	all, err := r.cities(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range all {
		cities[c.ID] = c
	}
	docs, err := r.store.ListAllAcrossParents(ctx, domain.AttractionsCollection)
	return docs, cities, err
}

func matches(q domain.AttractionsQuery, a domain.Attraction, c domain.City) bool {
	if q.Name != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(q.Name)) {
		return false
	}
	if q.Type != "" && !strings.EqualFold(a.Type, q.Type) && a.TypeAr != q.Type {
		return false
	}
	if q.City != "" && !strings.EqualFold(c.Name, q.City) && !strings.EqualFold(a.CityID, q.City) {
		return false
	}
	if q.Country != "" && !matchCountry(c, q.Country) {
		return false
	}
	if q.Continent != "" && !strings.EqualFold(c.Continent, q.Continent) {
		return false
	}
	return true
}

// GetAttraction finds an attraction by id across all cities.
func (r *Repo) GetAttraction(ctx context.Context, id, lang string) (domain.AttractionView, error) {
	docs, err := r.store.ListAllAcrossParents(ctx, domain.AttractionsCollection)
	if err != nil {
		return domain.AttractionView{}, err
	}
	for _, d := range docs {
		if d.Ref.ID != id {
			continue
		}
		a, err := domain.DecodeAttraction(d)
		if err != nil {
			return domain.AttractionView{}, err
		}
		c, err := r.GetCity(ctx, a.CityID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return domain.AttractionView{}, err
		}
		return domain.Localize(a, c, lang), nil
	}
	return domain.AttractionView{}, fmt.Errorf("attraction %s: %w", id, domain.ErrNotFound)
}

// AttractionTypes lists every English type with its Arabic label, falling
// back to the English type when none is stored.
func (r *Repo) AttractionTypes(ctx context.Context) ([]domain.TypePair, error) {
	docs, err := r.store.ListAllAcrossParents(ctx, domain.AttractionsCollection)
	if err != nil {
		return nil, err
	}
	pairs := map[string]string{}
	for _, d := range docs {
		a, err := domain.DecodeAttraction(d)
		if err != nil || a.Type == "" {
			continue
		}
		ar := a.TypeAr
		if ar == "" {
			ar = a.Type
		}
		pairs[a.Type] = ar
	}
	out := make([]domain.TypePair, 0, len(pairs))
	for en, ar := range pairs {
		out = append(out, domain.TypePair{En: en, Ar: ar})
	}
	col := collate.New(language.English)
	sort.Slice(out, func(i, j int) bool { return col.CompareString(out[i].En, out[j].En) < 0 })
	return out, nil
}

func (r *Repo) Metadata(ctx context.Context, id string) (map[string]any, error) {
	d, err := r.store.Get(ctx, domain.Root(domain.MetadataCollection, id))
	if err != nil {
		return nil, err
	}
	return map[string]any(d.Fields), nil
}
