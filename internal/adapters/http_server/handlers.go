// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"house_explorer/internal/app"
	"house_explorer/internal/domain"
)

const maxReviewBody = 16 << 10

type Handlers struct {
	Catalog *app.Catalog
	Reviews *app.ReviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// MountHandlers registers the API routes. A nil limiter leaves review
// submission unthrottled.
func (s *Server) MountHandlers(h *Handlers, limiter *RateLimiter) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/home", h.home)
		r.Get("/styles", h.styles)
		r.Get("/listings", h.explore)
		r.Get("/listings/suggestions", h.suggestions)
		r.Get("/listings/{id}", h.getListing)
		r.Get("/listings/{id}/reviews", h.listReviews)
		r.Get("/listings/{id}/rating", h.rating)
		if limiter != nil {
			r.With(limiter.Limit).Post("/listings/{id}/reviews", h.submitReview)
		} else {
			r.Post("/listings/{id}/reviews", h.submitReview)
		}
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Invalid Review", err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
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

// writeCached writes v with a weak ETag, answering 304 when the client
// already holds the same representation.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
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
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) home(w http.ResponseWriter, r *http.Request) {
	hp, err := h.Catalog.Home(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, hp)
}

func (h *Handlers) styles(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, domain.Styles)
}

func (h *Handlers) explore(w http.ResponseWriter, r *http.Request) {
	b, err := h.Catalog.PriceBounds(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts, err := parseFilter(r, app.DefaultFilter(b))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	page, err := h.Catalog.Explore(r.Context(), r.URL.Query().Get("q"), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, page)
}

// parseFilter overlays query parameters on the default filter.
func parseFilter(r *http.Request, opts domain.FilterOptions) (domain.FilterOptions, error) {
	q := r.URL.Query()

	if v := q.Get("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("min_price must be a non-negative integer")
		}
		opts.PriceRange[0] = n
	}
	if v := q.Get("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("max_price must be a non-negative integer")
		}
		opts.PriceRange[1] = n
	}

	for _, raw := range q["style"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			st, ok := domain.ParseStyle(part)
			if !ok {
				return opts, fmt.Errorf("unknown style %q", part)
			}
			opts.Styles = append(opts.Styles, st)
		}
	}

	if v := q.Get("bedrooms"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return opts, fmt.Errorf("bedrooms must be a non-negative integer")
		}
		opts.Bedrooms = &n
	}
	if v := q.Get("bathrooms"); v != "" {
		f, err := parseFinite(v)
		if err != nil || f < 0 {
			return opts, fmt.Errorf("bathrooms must be a non-negative number")
		}
		opts.Bathrooms = &f
	}
	if v := q.Get("min_rating"); v != "" {
		f, err := parseFinite(v)
		if err != nil || f < 0 || f > 5 {
			return opts, fmt.Errorf("min_rating must be between 0 and 5")
		}
		opts.MinRating = f
	}

	sortBy, ok := domain.ParseSortOption(q.Get("sort"))
	if !ok {
		return opts, fmt.Errorf("unknown sort %q", q.Get("sort"))
	}
	opts.SortBy = sortBy
	return opts, nil
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", v)
	}
	return f, nil
}

func (h *Handlers) suggestions(w http.ResponseWriter, r *http.Request) {
	out, err := h.Catalog.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getListing(w http.ResponseWriter, r *http.Request) {
	d, err := h.Catalog.Detail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, d)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	by, ok := domain.ParseReviewSort(r.URL.Query().Get("sort"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid sort", "sort must be newest, highest or lowest")
		return
	}
	out, err := h.Reviews.List(r.Context(), chi.URLParam(r, "id"), by)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, out)
}

func (h *Handlers) rating(w http.ResponseWriter, r *http.Request) {
	s, err := h.Reviews.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCached(w, r, s)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	var d domain.ReviewDraft
	dec := json.NewDecoder(io.LimitReader(r.Body, maxReviewBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON review draft")
		return
	}
	rv, err := h.Reviews.Submit(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", r.URL.Path)
	writeJSON(w, http.StatusCreated, rv)
}
