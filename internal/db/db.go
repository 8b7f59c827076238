package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadyWaiter blocks until a backend answers or the timeout expires.
type ReadyWaiter interface {
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Searcher runs a JSON search request against an index and returns the raw
// JSON response body.
type Searcher interface {
	Search(ctx context.Context, index string, body []byte) ([]byte, error)
}
