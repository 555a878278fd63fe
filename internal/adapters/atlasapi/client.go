// Package atlasapi is a client for the catalog read API served by cmd/api.
// The sample report and the end-to-end tests use it to see the catalog the
// way the web app does.
package atlasapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel_atlas/internal/adapters/observability"
	"travel_atlas/internal/domain"
	"travel_atlas/internal/shared"
)

const maxAttempts = 4

var (
	ErrNotFound   = errors.New("atlasapi: not found")
	ErrBadRequest = errors.New("atlasapi: bad request")
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

type Option func(*Client)

// WithHTTPClient replaces the default client (20s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(base string, rps float64, opts ...Option) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), burst),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type CitiesParams struct {
	Country   string
	Continent string
	Q         string
}

type AttractionsParams struct {
	CityID    string
	Name      string
	Type      string
	City      string
	Country   string
	Continent string
	Page      int
	PageSize  int
	Lang      string
}

func (c *Client) ListCountries(ctx context.Context, continent string) ([]domain.Country, error) {
	q := url.Values{}
	setIf(q, "continent", continent)
	var out []domain.Country
	return out, c.get(ctx, "countries", "/v1/countries", q, &out)
}

func (c *Client) GetCountry(ctx context.Context, id string) (domain.Country, error) {
	var out domain.Country
	return out, c.get(ctx, "country", "/v1/countries/"+url.PathEscape(id), nil, &out)
}

func (c *Client) ListCities(ctx context.Context, p CitiesParams) ([]domain.City, error) {
	q := url.Values{}
	setIf(q, "country", p.Country)
	setIf(q, "continent", p.Continent)
	setIf(q, "q", p.Q)
	var out []domain.City
	return out, c.get(ctx, "cities", "/v1/cities", q, &out)
}

func (c *Client) GetCity(ctx context.Context, id string) (domain.City, error) {
	var out domain.City
	return out, c.get(ctx, "city", "/v1/cities/"+url.PathEscape(id), nil, &out)
}

// CityAttractions lists every attraction of one city rendered for lang.
func (c *Client) CityAttractions(ctx context.Context, cityID, lang string) ([]domain.AttractionView, error) {
	q := url.Values{}
	setIf(q, "locale", lang)
	var out []domain.AttractionView
	return out, c.get(ctx, "city_attractions", "/v1/cities/"+url.PathEscape(cityID)+"/attractions", q, &out)
}

func (c *Client) ListAttractions(ctx context.Context, p AttractionsParams) (domain.AttractionsPage, error) {
	q := url.Values{}
	setIf(q, "cityId", p.CityID)
	setIf(q, "name", p.Name)
	setIf(q, "type", p.Type)
	setIf(q, "city", p.City)
	setIf(q, "country", p.Country)
	setIf(q, "continent", p.Continent)
	setIf(q, "locale", p.Lang)
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	var out domain.AttractionsPage
	return out, c.get(ctx, "attractions", "/v1/attractions", q, &out)
}

func (c *Client) GetAttraction(ctx context.Context, id, lang string) (domain.AttractionView, error) {
	q := url.Values{}
	setIf(q, "locale", lang)
	var out domain.AttractionView
	return out, c.get(ctx, "attraction", "/v1/attractions/"+url.PathEscape(id), q, &out)
}

func (c *Client) AttractionTypes(ctx context.Context) ([]domain.TypePair, error) {
	var out []domain.TypePair
	return out, c.get(ctx, "attraction_types", "/v1/attraction-types", nil, &out)
}

func (c *Client) Metadata(ctx context.Context, id string) (map[string]any, error) {
	var out map[string]any
	return out, c.get(ctx, "metadata", "/v1/metadata/"+url.PathEscape(id), nil, &out)
}

func setIf(q url.Values, k, v string) {
	if v != "" {
		q.Set(k, v)
	}
}

// get performs a rate limited GET and decodes the JSON body into out.
// 429 and transient 5xx are retried, honoring Retry-After when present.
func (c *Client) get(ctx context.Context, endpoint, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "travel-atlas/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("atlas_api", endpoint, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && shared.SleepCtx(ctx, shared.Backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("atlas_api", endpoint, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return ErrNotFound

		case http.StatusBadRequest:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("%w: %s", ErrBadRequest, strings.TrimSpace(string(b)))

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = shared.Backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < maxAttempts-1 && shared.SleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
