package domain

import "context"

// DocumentStore is the nested document collection the backfill jobs and the
// catalog read paths run against. Listings are ordered by document id.
type DocumentStore interface {
	Get(ctx context.Context, ref DocRef) (Document, error)
	ListParents(ctx context.Context, collection string) ([]Document, error)
	ListChildren(ctx context.Context, parent DocRef, childCollection string) ([]Document, error)
	// ListAllAcrossParents is the cross-parent group query.
	ListAllAcrossParents(ctx context.Context, childCollection string) ([]Document, error)
	BeginBatch() Batch
	Close() error
}

// Batch stages writes that are committed atomically.
type Batch interface {
	// Set creates or replaces a whole document.
	Set(ref DocRef, fields Fields)
	// Update merges fields into an existing document.
	Update(ref DocRef, fields Fields)
	Len() int
	Commit(ctx context.Context) error
}

// ChildCounter is implemented by stores that can count a child collection
// across all parents without reading it.
type ChildCounter interface {
	CountAcrossParents(ctx context.Context, childCollection string) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type CatalogRepository interface {
	ListCountries(ctx context.Context, q CountriesQuery) ([]Country, error)
	GetCountry(ctx context.Context, id string) (Country, error)
	ListCities(ctx context.Context, q CitiesQuery) ([]City, error)
	GetCity(ctx context.Context, id string) (City, error)
	ListAttractions(ctx context.Context, q AttractionsQuery) (AttractionsPage, error)
	GetAttraction(ctx context.Context, id, lang string) (AttractionView, error)
	AttractionTypes(ctx context.Context) ([]TypePair, error)
	Metadata(ctx context.Context, id string) (map[string]any, error)
}

// Read models & queries

type CountriesQuery struct {
	Continent string
}

type CitiesQuery struct {
	Country   string // name or id
	Continent string
	Q         string // case-insensitive name substring
}

type AttractionsQuery struct {
	Lang      string
	CityID    string
	Name      string
	Type      string
	City      string
	Country   string
	Continent string
	Page      int
	PageSize  int
}

// AttractionView is an attraction joined with its city and rendered for one
// language.
type AttractionView struct {
	ID            string `json:"id"`
	CityID        string `json:"cityId"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Continent     string `json:"continent"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	TypeEn        string `json:"typeEn"`
	Description   string `json:"description"`
	DescriptionEn string `json:"descriptionEn"`
	TypeAr        string `json:"typeAr,omitempty"`
	DescriptionAr string `json:"descriptionAr,omitempty"`
	Language      string `json:"language"`
}

type AttractionsPage struct {
	Items    []AttractionView `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
}

// TypePair is an English attraction type with its Arabic label.
type TypePair struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// Localize renders a for lang ("ar" prefers the Arabic fields and falls
// back to English ones).
func Localize(a Attraction, c City, lang string) AttractionView {
	v := AttractionView{
		ID:            a.ID,
		CityID:        a.CityID,
		City:          c.Name,
		Country:       c.Country,
		Continent:     c.Continent,
		Name:          a.Name,
		Type:          a.Type,
		TypeEn:        a.Type,
		Description:   a.Description,
		DescriptionEn: a.Description,
		TypeAr:        a.TypeAr,
		DescriptionAr: a.DescriptionAr,
		Language:      "en",
	}
	if lang == "ar" {
		v.Language = "ar"
		if a.TypeAr != "" {
			v.Type = a.TypeAr
		}
		if a.DescriptionAr != "" {
			v.Description = a.DescriptionAr
		}
	}
	if v.City == "" {
		v.City = a.CityID
	}
	return v
}
