// Package chi serves the search API over HTTP with go-chi.
package chi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/domain"
	"github.com/kailas-cloud/facetsearch/internal/metrics"
	healthuc "github.com/kailas-cloud/facetsearch/internal/usecase/health"
	"github.com/kailas-cloud/facetsearch/internal/version"
)

// healthChecker is the consumer interface of the health endpoint (ISP).
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Options configures the HTTP surface.
type Options struct {
	Paging  Paging
	APIKeys []string
}

// Server serves search domains over HTTP.
type Server struct {
	domains []Domain
	health  healthChecker
	paging  Paging
	apiKeys []string
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(domains []Domain, health healthChecker, opts Options, logger *zap.Logger) *Server {
	return &Server{
		domains: domains,
		health:  health,
		paging:  opts.Paging,
		apiKeys: opts.APIKeys,
		logger:  logger,
	}
}

// Handler builds the router with its middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(Recoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(s.logger))
	r.Use(BearerAuthMiddleware(s.apiKeys))
	r.Use(metrics.Middleware())

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		for _, d := range s.domains {
			r.Route("/"+d.Name(), func(r chi.Router) {
				r.Get("/search", s.search(d))
				r.Get("/autocomplete/{parameter}", s.autocomplete(d))
				if p, ok := d.SuggestParameter(); ok {
					r.Get("/suggest", s.suggest(d, p.Name()))
				}
			})
		}
	})
	return r
}

// search handles GET /v1/{domain}/search.
func (s *Server) search(d Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, semantic, err := parseFaceted(r.URL.Query(), d.Parameters(), s.paging)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		page, err := d.Search(r.Context(), req, semantic)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// autocomplete handles GET /v1/{domain}/autocomplete/{parameter}.
func (s *Server) autocomplete(d Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "parameter")
		p, ok := d.Parameters().Lookup(name)
		if !ok {
			handleDomainError(w, r, fmt.Errorf("%w: %s", domain.ErrUnknownParameter, name))
			return
		}

		req, _, err := parseRequest(r.URL.Query(), d.Parameters(), s.paging)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}

		out, err := d.Autocomplete(r.Context(), req, p)
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// suggest handles GET /v1/{domain}/suggest.
func (s *Server) suggest(d Domain, name string) http.HandlerFunc {
	p, _ := d.Parameters().Lookup(name)
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			q     string
			limit *int
		)
		values := r.URL.Query()
		if err := bind(values, paramQ, &q); err != nil {
			handleDomainError(w, r, err)
			return
		}
		if err := bind(values, paramLimit, &limit); err != nil {
			handleDomainError(w, r, err)
			return
		}
		if limit != nil && (*limit < 0 || (s.paging.MaxLimit > 0 && *limit > s.paging.MaxLimit)) {
			handleDomainError(w, r, domain.NewInvalidArgument(paramLimit, fmt.Sprint(*limit),
				fmt.Sprintf("must be between 0 and %d", s.paging.MaxLimit)))
			return
		}

		out, err := d.Suggest(r.Context(), q, p, intValue(limit, 0))
		if err != nil {
			handleDomainError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: string(report.Status), Version: version.Version, Checks: checks})
}
