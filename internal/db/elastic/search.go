package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/kailas-cloud/facetsearch/internal/db"
)

// ResponseError is an error reported by the cluster.
type ResponseError struct {
	Status int
	Type   string
	Reason string
}

func (e *ResponseError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s: %s", e.Status, e.Type, e.Reason)
}

// Search runs body against index with typed aggregation keys and exact hit totals.
func (s *Store) Search(ctx context.Context, index string, body []byte) ([]byte, error) {
	typedKeys := true
	req := esapi.SearchRequest{
		Index:          []string{index},
		Body:           bytes.NewReader(body),
		TypedKeys:      &typedKeys,
		TrackTotalHits: true,
	}
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		rerr := decodeError(res)
		if rerr.Type == "index_not_found_exception" {
			return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("%w: %s", db.ErrIndexNotFound, index)}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: rerr}
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("read response: %w", err)}
	}
	return data, nil
}

// decodeError reads the cluster's error envelope. Bodies that are not an
// error envelope keep only the status.
func decodeError(res *esapi.Response) *ResponseError {
	rerr := &ResponseError{Status: res.StatusCode}
	if res.StatusCode == http.StatusNotFound && res.Body == nil {
		return rerr
	}
	var envelope struct {
		Error struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil {
		rerr.Type = envelope.Error.Type
		rerr.Reason = envelope.Error.Reason
	}
	return rerr
}
