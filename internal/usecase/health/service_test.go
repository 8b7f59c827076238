package health

import (
	"context"
	"errors"
	"testing"
	"time"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockEmbeddingChecker struct {
	err error
}

func (m *mockEmbeddingChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, &mockEmbeddingChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, c := range []string{ComponentSearch, ComponentCache, ComponentEmbedding} {
		if r.Checks[c] != CheckOK {
			t.Errorf("expected %s %q, got %q", c, CheckOK, r.Checks[c])
		}
	}
}

func TestCheck_SearchBackendDownIsUnhealthy(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("conn refused")}, &mockPinger{}, &mockEmbeddingChecker{err: errors.New("x")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[ComponentSearch] != CheckError {
		t.Errorf("expected search backend %q, got %q", CheckError, r.Checks[ComponentSearch])
	}
}

func TestCheck_OptionalComponentsDegrade(t *testing.T) {
	tests := []struct {
		name      string
		cache     Pinger
		embedding EmbeddingChecker
		failed    string
	}{
		{"cache", &mockPinger{err: errors.New("down")}, &mockEmbeddingChecker{}, ComponentCache},
		{"embedding", &mockPinger{}, &mockEmbeddingChecker{err: errors.New("timeout")}, ComponentEmbedding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&mockPinger{}, tt.cache, tt.embedding).Check(context.Background())
			if r.Status != Degraded {
				t.Errorf("expected %q, got %q", Degraded, r.Status)
			}
			if r.Checks[tt.failed] != CheckError {
				t.Errorf("expected %s error", tt.failed)
			}
			if r.Checks[ComponentSearch] != CheckOK {
				t.Error("expected search backend ok")
			}
		})
	}
}

func TestCheck_OptionalComponentsAbsent(t *testing.T) {
	r := New(&mockPinger{}, nil, nil).Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[ComponentCache]; ok {
		t.Error("cache check should be absent when cache is nil")
	}
	if _, ok := r.Checks[ComponentEmbedding]; ok {
		t.Error("embedding check should be absent when embedding is nil")
	}
}

type blockingPinger struct{}

func (blockingPinger) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestCheck_TimesOut(t *testing.T) {
	svc := New(blockingPinger{}, nil, nil)
	svc.timeout = 10 * time.Millisecond

	r := svc.Check(context.Background())
	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
}
