package domain

import (
	"encoding/json"
	"time"
)

type Currency struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type ExchangeRates struct {
	SARToLocal float64 `json:"sarToLocal"`
	USDToLocal float64 `json:"usdToLocal"`
}

type TelecomProvider struct {
	Name string `json:"name"`
}

type CountryInfo struct {
	VisaRequirement   string            `json:"visaRequirement"`
	Currency          Currency          `json:"currency"`
	OfficialLanguages []string          `json:"officialLanguages"`
	ExchangeRates     ExchangeRates     `json:"exchangeRates"`
	TelecomProviders  []TelecomProvider `json:"telecomProviders"`
}

type Country struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Continent   string       `json:"continent"`
	CountryInfo *CountryInfo `json:"countryInfo,omitempty"`
}

// BestTime holds bestTimeToVisit, stored either as one string or as a
// list of strings. It marshals back to the shape it was read from.
type BestTime struct {
	Values []string
	List   bool
}

func (b BestTime) String() string {
	out := ""
	for i, v := range b.Values {
		if i > 0 {
			out += ", "
		}
		out += v
	}
	return out
}

func (b BestTime) MarshalJSON() ([]byte, error) {
	if b.List {
		if b.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(b.Values)
	}
	return json.Marshal(b.String())
}

func (b *BestTime) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*b = BestTime{Values: list, List: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = BestTime{}
	if s != "" {
		b.Values = []string{s}
	}
	return nil
}

type City struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Continent       string   `json:"continent"`
	Country         string   `json:"country"`
	CountryID       string   `json:"countryId,omitempty"`
	BestTimeToVisit BestTime `json:"bestTimeToVisit"`
	TopAttraction   string   `json:"topAttraction"`
	AvgTemp         string   `json:"avgTemp"`
	AirportCode     string   `json:"airportCode"`
	AttractionCount int      `json:"attractionCount"`
}

type Attraction struct {
	ID            string     `json:"id"`
	CityID        string     `json:"cityId"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	TypeAr        string     `json:"typeAr"`
	Description   string     `json:"description"`
	DescriptionAr string     `json:"descriptionAr"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Field names written by the backfill jobs.
const (
	FieldType          = "type"
	FieldTypeAr        = "typeAr"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldDescriptionAr = "descriptionAr"
	FieldUpdatedAt     = "updatedAt"
)
