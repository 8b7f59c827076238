package health

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/facetsearch/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the search backend is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names reported in Report.Checks.
const (
	ComponentSearch    = "search_backend"
	ComponentCache     = "cache"
	ComponentEmbedding = "embedding"
)

const defaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	search    Pinger
	cache     Pinger
	embedding EmbeddingChecker
	timeout   time.Duration
}

// New creates a Service. cache and embedding can be nil.
func New(search Pinger, cache Pinger, embedding EmbeddingChecker) *Service {
	return &Service{search: search, cache: cache, embedding: embedding, timeout: defaultCheckTimeout}
}

// Check runs health checks against all components. A failing search
// backend makes the service unhealthy; any other failure degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 3)

	checks[ComponentSearch] = s.run(ctx, ComponentSearch, s.search.Ping)
	if s.cache != nil {
		checks[ComponentCache] = s.run(ctx, ComponentCache, s.cache.Ping)
	}
	if s.embedding != nil {
		checks[ComponentEmbedding] = s.run(ctx, ComponentEmbedding, s.embedding.HealthCheck)
	}

	status := Healthy
	for name, v := range checks {
		if v != CheckError {
			continue
		}
		if name == ComponentSearch {
			status = Unhealthy
			break
		}
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, name string, check func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := check(ctx); err != nil {
		logger.FromContext(ctx).Warn("Health check failed", zap.String("component", name), zap.Error(err))
		return CheckError
	}
	return CheckOK
}
