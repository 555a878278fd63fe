package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_atlas/internal/app"
	"travel_atlas/internal/catalog"
	"travel_atlas/internal/domain"
)

type Handlers struct{ Q *app.QueryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/countries", h.listCountries)
		r.Get("/countries/{id}", h.getCountry)
		r.Get("/cities", h.listCities)
		r.Get("/cities/{id}", h.getCity)
		r.Get("/cities/{id}/attractions", h.cityAttractions)
		r.Get("/attractions", h.listAttractions)
		r.Get("/attractions/{id}", h.getAttraction)
		r.Get("/attraction-types", h.attractionTypes)
		r.Get("/metadata/{id}", h.metadata)
	})
}

// requestLang reads ?locale=, then Accept-Language. Anything but Arabic is English.
func requestLang(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return selectLang(l)
	}
	return selectLang(r.Header.Get("Accept-Language"))
}

func selectLang(al string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(al)), "ar") {
		return "ar"
	}
	return "en"
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps a query error onto a problem response.
func writeError(w http.ResponseWriter, r *http.Request, what string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
		return
	}
	log.Error().Err(err).Str("path", r.URL.Path).Msg("catalog query failed")
	writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with a weak ETag, answering 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, lang string, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	if lang != "" {
		w.Header().Set("Content-Language", lang)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// project keeps only the comma separated fields named by ?select=.
func project[T any](r *http.Request, items []T) (any, error) {
	sel := r.URL.Query().Get("select")
	if sel == "" {
		return items, nil
	}
	var fields []string
	for _, f := range strings.Split(sel, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		p := make(map[string]any, len(fields))
		for _, f := range fields {
			if v, ok := row[f]; ok {
				p[f] = v
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (h *Handlers) listCountries(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListCountries(r.Context(), domain.CountriesQuery{Continent: r.URL.Query().Get("continent")})
	if err != nil {
		writeError(w, r, "countries", err)
		return
	}
	v, err := project(r, out)
	if err != nil {
		writeError(w, r, "countries", err)
		return
	}
	writeJSON(w, r, "", v)
}

func (h *Handlers) getCountry(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.GetCountry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "country", err)
		return
	}
	writeJSON(w, r, "", out)
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	out, err := h.Q.ListCities(r.Context(), domain.CitiesQuery{
		Country:   q.Get("country"),
		Continent: q.Get("continent"),
		Q:         q.Get("q"),
	})
	if err != nil {
		writeError(w, r, "cities", err)
		return
	}
	v, err := project(r, out)
	if err != nil {
		writeError(w, r, "cities", err)
		return
	}
	writeJSON(w, r, "", v)
}

func (h *Handlers) getCity(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.GetCity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "city", err)
		return
	}
	writeJSON(w, r, "", out)
}

// cityAttractions returns every attraction of one city, walking the pages.
func (h *Handlers) cityAttractions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lang := requestLang(r)
	if _, err := h.Q.GetCity(r.Context(), id); err != nil {
		writeError(w, r, "city", err)
		return
	}
	items := []domain.AttractionView{}
	for page := 1; ; page++ {
		p, err := h.Q.ListAttractions(r.Context(), domain.AttractionsQuery{
			Lang: lang, CityID: id, Page: page, PageSize: catalog.MaxPageSize,
		})
		if err != nil {
			writeError(w, r, "attractions", err)
			return
		}
		items = append(items, p.Items...)
		if len(p.Items) == 0 || len(items) >= p.Total {
			break
		}
	}
	writeJSON(w, r, lang, items)
}

func (h *Handlers) listAttractions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, ok := intParam(w, q.Get("page"), "page")
	if !ok {
		return
	}
	size, ok := intParam(w, q.Get("pageSize"), "pageSize")
	if !ok {
		return
	}
	lang := requestLang(r)
	out, err := h.Q.ListAttractions(r.Context(), domain.AttractionsQuery{
		Lang:      lang,
		CityID:    q.Get("cityId"),
		Name:      q.Get("name"),
		Type:      q.Get("type"),
		City:      q.Get("city"),
		Country:   q.Get("country"),
		Continent: q.Get("continent"),
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		writeError(w, r, "attractions", err)
		return
	}
	writeJSON(w, r, lang, out)
}

func intParam(w http.ResponseWriter, s, name string) (int, bool) {
	if s == "" {
		return 0, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		writeProblem(w, http.StatusBadRequest, "Invalid "+name, name+" must be a positive integer")
		return 0, false
	}
	return n, true
}

func (h *Handlers) getAttraction(w http.ResponseWriter, r *http.Request) {
	lang := requestLang(r)
	out, err := h.Q.GetAttraction(r.Context(), chi.URLParam(r, "id"), lang)
	if err != nil {
		writeError(w, r, "attraction", err)
		return
	}
	writeJSON(w, r, out.Language, out)
}

func (h *Handlers) attractionTypes(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.AttractionTypes(r.Context())
	if err != nil {
		writeError(w, r, "attraction types", err)
		return
	}
	writeJSON(w, r, "", out)
}

func (h *Handlers) metadata(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Metadata(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "metadata", err)
		return
	}
	writeJSON(w, r, "", out)
}
