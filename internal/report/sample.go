package report

import (
	"context"
	"fmt"
	"io"

	"travel_atlas/internal/adapters/atlasapi"
	"travel_atlas/internal/domain"
)

const (
	SampleCities  = 5
	SamplePerCity = 3
)

type SampleEntry struct {
	City             string
	Name             string
	Type             string
	TypeAr           string
	HasDescription   bool
	HasDescriptionAr bool
}

// Sampler reads the first perCity attractions of the first cities cities.
type Sampler interface {
	Sample(ctx context.Context, cities, perCity int) ([]SampleEntry, error)
}

// StoreSampler samples straight from a DocumentStore.
type StoreSampler struct {
	Store domain.DocumentStore
}

func (s StoreSampler) Sample(ctx context.Context, cities, perCity int) ([]SampleEntry, error) {
	parents, err := s.Store.ListParents(ctx, domain.CitiesCollection)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	if len(parents) > cities {
		parents = parents[:cities]
	}
	var out []SampleEntry
	for _, p := range parents {
		city := p.Fields.Get("name")
		if city == "" {
			city = p.Ref.ID
		}
		children, err := s.Store.ListChildren(ctx, p.Ref, domain.AttractionsCollection)
		if err != nil {
			return nil, fmt.Errorf("list attractions of %s: %w", p.Ref.ID, err)
		}
		if len(children) > perCity {
			children = children[:perCity]
		}
		for _, d := range children {
			a, err := domain.DecodeAttraction(d)
			if err != nil {
				return nil, err
			}
			out = append(out, SampleEntry{
				City:             city,
				Name:             a.Name,
				Type:             a.Type,
				TypeAr:           a.TypeAr,
				HasDescription:   a.Description != "",
				HasDescriptionAr: a.DescriptionAr != "",
			})
		}
	}
	return out, nil
}

// APISampler samples through the catalog HTTP API.
type APISampler struct {
	Client *atlasapi.Client
}

func (s APISampler) Sample(ctx context.Context, cities, perCity int) ([]SampleEntry, error) {
	cs, err := s.Client.ListCities(ctx, atlasapi.CitiesParams{})
	if err != nil {
		return nil, err
	}
	if len(cs) > cities {
		cs = cs[:cities]
	}
	var out []SampleEntry
	for _, c := range cs {
		views, err := s.Client.CityAttractions(ctx, c.ID, "ar")
		if err != nil {
			return nil, err
		}
		if len(views) > perCity {
			views = views[:perCity]
		}
		for _, v := range views {
			out = append(out, SampleEntry{
				City:             v.City,
				Name:             v.Name,
				Type:             v.TypeEn,
				TypeAr:           v.TypeAr,
				HasDescription:   v.DescriptionEn != "",
				HasDescriptionAr: v.DescriptionAr != "",
			})
		}
	}
	return out, nil
}

func PrintSample(w io.Writer, samples []SampleEntry) {
	fmt.Fprintln(w, "=== SAMPLE RESULTS ===")
	fmt.Fprintf(w, "Total sample size: %d attractions\n\n", len(samples))
	var withTypeAr, withDescAr int
	for i, s := range samples {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, s.Name, s.City)
		if s.TypeAr != "" {
			withTypeAr++
			fmt.Fprintf(w, "   Type: %s -> %s\n", s.Type, s.TypeAr)
		} else {
			fmt.Fprintf(w, "   Type: %s (no Arabic)\n", s.Type)
		}
		if s.HasDescriptionAr {
			withDescAr++
		}
		fmt.Fprintf(w, "   Description: EN %s AR %s\n\n", mark(s.HasDescription), mark(s.HasDescriptionAr))
	}
	fmt.Fprintln(w, "=== SAMPLE STATISTICS ===")
	fmt.Fprintf(w, "Arabic types: %d/%d (%.1f%%)\n", withTypeAr, len(samples), share(withTypeAr, len(samples)))
	fmt.Fprintf(w, "Arabic descriptions: %d/%d (%.1f%%)\n", withDescAr, len(samples), share(withDescAr, len(samples)))
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
