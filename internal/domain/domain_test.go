package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_atlas/internal/domain"
)

func TestDocRef_PathRoundTrip(t *testing.T) {
	ref := domain.Root(domain.CitiesCollection, "rome").Child(domain.AttractionsCollection, "colosseum")
	assert.Equal(t, "cities/rome/attractions/colosseum", ref.Path())
	assert.Equal(t, "cities/rome", ref.ParentPath())
	assert.Equal(t, "rome", ref.ParentID())

	back, ok := domain.ParseRef(ref.Path())
	require.True(t, ok)
	assert.Equal(t, ref.Path(), back.Path())
	assert.Equal(t, "rome", back.ParentID())

	_, ok = domain.ParseRef("cities/rome/attractions")
	assert.False(t, ok)
}

func TestDecodeAttraction_AbsentFieldsAreEmpty(t *testing.T) {
	doc := domain.Document{
		Ref:    domain.Root("cities", "rome").Child("attractions", "a1"),
		Fields: domain.Fields{"name": "Pantheon", "description": nil},
	}
	a, err := domain.DecodeAttraction(doc)
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "rome", a.CityID)
	assert.Equal(t, "Pantheon", a.Name)
	assert.Empty(t, a.Type)
	assert.Empty(t, a.Description)
	assert.Nil(t, a.UpdatedAt)
}

func TestDecodeAttraction_WrongShapeIsMalformed(t *testing.T) {
	doc := domain.Document{
		Ref:    domain.Root("cities", "rome").Child("attractions", "a2"),
		Fields: domain.Fields{"type": map[string]any{"en": "Museum"}},
	}
	_, err := domain.DecodeAttraction(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformed))

	var de *domain.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "type", de.Field)
}

func TestDecodeCity_BestTimeBothShapes(t *testing.T) {
	single, err := domain.DecodeCity(domain.Document{
		Ref:    domain.Root("cities", "cairo"),
		Fields: domain.Fields{"name": "Cairo", "bestTimeToVisit": "October to April", "avgTemp": 22.5},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"October to April"}, single.BestTimeToVisit.Values)
	assert.False(t, single.BestTimeToVisit.List)
	assert.Equal(t, "22.5", single.AvgTemp)

	list, err := domain.DecodeCity(domain.Document{
		Ref:    domain.Root("cities", "rome"),
		Fields: domain.Fields{"name": "Rome", "bestTimeToVisit": []any{"April", "May"}, "attractionCount": float64(3)},
	})
	require.NoError(t, err)
	assert.True(t, list.BestTimeToVisit.List)
	assert.Equal(t, "April, May", list.BestTimeToVisit.String())
	assert.Equal(t, 3, list.AttractionCount)

	b, err := json.Marshal(list.BestTimeToVisit)
	require.NoError(t, err)
	assert.JSONEq(t, `["April","May"]`, string(b))

	var bt domain.BestTime
	require.NoError(t, json.Unmarshal([]byte(`"Spring"`), &bt))
	assert.Equal(t, []string{"Spring"}, bt.Values)
}

func TestDecodeCountry_NestedInfo(t *testing.T) {
	c, err := domain.DecodeCountry(domain.Document{
		Ref: domain.Root("countries", "egypt"),
		Fields: domain.Fields{
			"name":      "Egypt",
			"continent": "Africa",
			"countryInfo": map[string]any{
				"visaRequirement":   "e-Visa",
				"currency":          map[string]any{"name": "Egyptian Pound", "code": "EGP"},
				"officialLanguages": []any{"Arabic"},
				"exchangeRates":     map[string]any{"sarToLocal": 13.1, "usdToLocal": float64(49)},
				"telecomProviders":  []any{map[string]any{"name": "Vodafone"}, "junk"},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, c.CountryInfo)
	assert.Equal(t, "EGP", c.CountryInfo.Currency.Code)
	assert.Equal(t, []string{"Arabic"}, c.CountryInfo.OfficialLanguages)
	assert.Equal(t, 49.0, c.CountryInfo.ExchangeRates.USDToLocal)
	assert.Equal(t, []domain.TelecomProvider{{Name: "Vodafone"}}, c.CountryInfo.TelecomProviders)
}

func TestLocalize_FallsBackToEnglish(t *testing.T) {
	a := domain.Attraction{ID: "a1", CityID: "rome", Name: "Pantheon", Type: "Temple", TypeAr: "معبد", Description: "Roman temple"}
	c := domain.City{ID: "rome", Name: "Rome", Country: "Italy", Continent: "Europe"}

	ar := domain.Localize(a, c, "ar")
	assert.Equal(t, "معبد", ar.Type)
	assert.Equal(t, "Roman temple", ar.Description)
	assert.Equal(t, "Temple", ar.TypeEn)
	assert.Equal(t, "ar", ar.Language)

	en := domain.Localize(a, c, "en")
	assert.Equal(t, "Temple", en.Type)
	assert.Equal(t, "Rome", en.City)
}
