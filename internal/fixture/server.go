// Package fixture serves a company collection over HTTP in the shape the
// http source expects. It backs local development and demos; the data is
// read from a Source on every request, so edits to a fixture file show up
// on the next reload in the TUI.
package fixture

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/vfpar/registro/internal/registry"
)

// Source supplies the collection served by the fixture.
type Source interface {
	Fetch(ctx context.Context) ([]registry.Company, error)
}

// Options tune the router.
type Options struct {
	// RequestsPerMinute caps requests per client IP. Zero uses 120.
	RequestsPerMinute int
	// Delay is added before every collection response, to exercise the
	// loading state.
	Delay time.Duration
}

const defaultRequestsPerMinute = 120

type handler struct {
	source Source
	logger *slog.Logger
	delay  time.Duration
}

type errorBody struct {
	Error string `json:"error"`
}

// NewRouter builds the fixture routes:
//
//	GET /companies        the collection, optionally filtered with ?q=
//	GET /companies/{id}   one record, 404 when missing
//	GET /healthz          liveness
func NewRouter(src Source, logger *slog.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	limit := opts.RequestsPerMinute
	if limit <= 0 {
		limit = defaultRequestsPerMinute
	}
	h := &handler{source: src, logger: logger, delay: opts.Delay}

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'",
		IsDevelopment:         true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(secureMiddleware.Handler)
	r.Use(httprate.Limit(limit, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
		}),
	))
	r.Use(h.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/companies", h.listCompanies)
	r.Get("/companies/{id}", h.getCompany)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	})
	return r
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	companies, ok := h.fetch(w, r)
	if !ok {
		return
	}
	if q := r.URL.Query().Get("q"); q != "" {
		companies = registry.Filter(companies, q)
	}
	if companies == nil {
		companies = []registry.Company{}
	}
	writeJSON(w, http.StatusOK, companies)
}

func (h *handler) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid id"})
		return
	}
	companies, ok := h.fetch(w, r)
	if !ok {
		return
	}
	for _, c := range companies {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errorBody{Error: "company not found"})
}

// fetch waits out the configured delay and reads the collection. It writes
// the error response itself and reports false on failure.
func (h *handler) fetch(w http.ResponseWriter, r *http.Request) ([]registry.Company, bool) {
	ctx := r.Context()
	if h.delay > 0 {
		select {
		case <-time.After(h.delay):
		case <-ctx.Done():
			return nil, false
		}
	}
	companies, err := h.source.Fetch(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, false
		}
		h.logger.Error("fetch fixture data", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "data unavailable"})
		return nil, false
	}
	return companies, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
