package domain

// Decoding is the single place where loosely typed documents become
// entities. Absent or null fields decode to zero values. A present field of
// the wrong kind is a DecodeError.

func DecodeCountry(d Document) (Country, error) {
	f := d.Fields
	c := Country{ID: d.Ref.ID}
	var err error
	if c.Name, err = str(d, "name"); err != nil {
		return Country{}, err
	}
	if c.Continent, err = str(d, "continent"); err != nil {
		return Country{}, err
	}
	if info := f.Map("countryInfo"); info != nil {
		cur := info.Map("currency")
		rates := info.Map("exchangeRates")
		ci := &CountryInfo{
			VisaRequirement:   info.Get("visaRequirement"),
			Currency:          Currency{Name: cur.Get("name"), Code: cur.Get("code")},
			OfficialLanguages: info.Strings("officialLanguages"),
			ExchangeRates: ExchangeRates{
				SARToLocal: rates.Float("sarToLocal"),
				USDToLocal: rates.Float("usdToLocal"),
			},
		}
		for _, p := range info.Maps("telecomProviders") {
			ci.TelecomProviders = append(ci.TelecomProviders, TelecomProvider{Name: p.Get("name")})
		}
		c.CountryInfo = ci
	}
	return c, nil
}

func DecodeCity(d Document) (City, error) {
	f := d.Fields
	c := City{
		ID:              d.Ref.ID,
		CountryID:       f.Get("countryId"),
		TopAttraction:   f.Get("topAttraction"),
		AvgTemp:         f.Text("avgTemp"),
		AirportCode:     f.Get("airportCode"),
		AttractionCount: f.Int("attractionCount"),
	}
	var err error
	if c.Name, err = str(d, "name"); err != nil {
		return City{}, err
	}
	if c.Continent, err = str(d, "continent"); err != nil {
		return City{}, err
	}
	if c.Country, err = str(d, "country"); err != nil {
		return City{}, err
	}
	key := "bestTimeToVisit"
	if !f.Has(key) && f.Has("bestTime") {
		key = "bestTime"
	}
	switch f[key].(type) {
	case string:
		c.BestTimeToVisit = BestTime{Values: f.Strings(key)}
	case []any, []string:
		c.BestTimeToVisit = BestTime{Values: f.Strings(key), List: true}
	}
	return c, nil
}

func DecodeAttraction(d Document) (Attraction, error) {
	a := Attraction{ID: d.Ref.ID, CityID: d.Ref.ParentID(), UpdatedAt: d.Fields.Time(FieldUpdatedAt)}
	if a.CityID == "" {
		a.CityID = d.Fields.Get("cityId")
	}
	for _, p := range []struct {
		key string
		dst *string
	}{
		{FieldName, &a.Name},
		{FieldType, &a.Type},
		{FieldTypeAr, &a.TypeAr},
		{FieldDescription, &a.Description},
		{FieldDescriptionAr, &a.DescriptionAr},
	} {
		s, err := str(d, p.key)
		if err != nil {
			return Attraction{}, err
		}
		*p.dst = s
	}
	return a, nil
}

func str(d Document, key string) (string, error) {
	s, ok := d.Fields.Str(key)
	if !ok {
		return "", &DecodeError{Path: d.Ref.Path(), Field: key, Value: d.Fields[key]}
	}
	return s, nil
}
