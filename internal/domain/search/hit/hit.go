// Package hit wraps one backend document and extracts typed fields from it.
// Extraction never fails: missing, empty or unconvertible values are absent,
// and conversion problems are reported to the anomaly hook.
package hit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// dateLayouts are tried in order when reading date fields.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// AnomalyFunc observes a field that was present but could not be converted.
type AnomalyFunc func(field string, err error)

// Hit is a decoded document with its id, score and highlights.
type Hit struct {
	id         string
	score      float64
	source     map[string]any
	highlights map[string][]string
	logger     *zap.Logger
	onAnomaly  AnomalyFunc
}

// New decodes source into a Hit. A null or empty source yields an empty document.
func New(id string, score float64, source json.RawMessage, highlights map[string][]string,
	logger *zap.Logger, onAnomaly AnomalyFunc,
) (*Hit, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hit{
		id:         id,
		score:      score,
		highlights: highlights,
		logger:     logger,
		onAnomaly:  onAnomaly,
	}
	trimmed := bytes.TrimSpace(source)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		h.source = map[string]any{}
		return h, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&h.source); err != nil {
		return nil, fmt.Errorf("decode hit %s source: %w", id, err)
	}
	if h.source == nil {
		h.source = map[string]any{}
	}
	return h, nil
}

// ID returns the document id.
func (h *Hit) ID() string { return h.id }

// Score returns the relevance score, 0 when the backend sent none.
func (h *Hit) Score() float64 { return h.score }

// Source returns the decoded document.
func (h *Hit) Source() map[string]any { return h.source }

// Lookup walks a dotted path through nested objects.
func (h *Hit) Lookup(path string) (any, bool) {
	var cur any = h.source
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// String returns a non-empty string field.
func (h *Hit) String(path string) (string, bool) {
	v, ok := h.Lookup(path)
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, t != ""
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		h.anomaly(path, fmt.Errorf("expected string, got %T", v))
		return "", false
	}
}

// Int returns an integer field; numeric strings are accepted.
func (h *Hit) Int(path string) (int64, bool) {
	v, ok := h.Lookup(path)
	if !ok {
		return 0, false
	}
	n, err := toInt(v)
	if err != nil {
		h.anomaly(path, err)
		return 0, false
	}
	return n, true
}

// Float returns a floating point field; numeric strings are accepted.
func (h *Hit) Float(path string) (float64, bool) {
	v, ok := h.Lookup(path)
	if !ok {
		return 0, false
	}
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		if t == "" {
			return 0, false
		}
		f, err = strconv.ParseFloat(t, 64)
	default:
		err = fmt.Errorf("expected number, got %T", v)
	}
	if err != nil {
		h.anomaly(path, err)
		return 0, false
	}
	return f, true
}

// Bool returns a boolean field; "true"/"false" strings are accepted.
func (h *Hit) Bool(path string) (bool, bool) {
	v, ok := h.Lookup(path)
	if !ok {
		return false, false
	}
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			h.anomaly(path, err)
			return false, false
		}
		return b, true
	default:
		h.anomaly(path, fmt.Errorf("expected bool, got %T", v))
		return false, false
	}
}

// Time returns a date field. Epoch milliseconds and the layouts in dateLayouts are accepted.
func (h *Hit) Time(path string) (time.Time, bool) {
	v, ok := h.Lookup(path)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case json.Number:
		ms, err := t.Int64()
		if err != nil {
			h.anomaly(path, err)
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	case string:
		if t == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts, true
			}
		}
		h.anomaly(path, fmt.Errorf("unparsable date %q", t))
		return time.Time{}, false
	default:
		h.anomaly(path, fmt.Errorf("expected date, got %T", v))
		return time.Time{}, false
	}
}

// UUID returns a UUID field.
func (h *Hit) UUID(path string) (uuid.UUID, bool) {
	s, ok := h.String(path)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		h.anomaly(path, err)
		return uuid.Nil, false
	}
	return id, true
}

// KeyUUID parses the document id as a UUID.
func (h *Hit) KeyUUID() (uuid.UUID, bool) {
	id, err := uuid.Parse(h.id)
	if err != nil {
		h.anomaly("_id", err)
		return uuid.Nil, false
	}
	return id, true
}

// Lookuper resolves a stored value to its canonical form.
type Lookuper func(raw string) (string, bool)

// Canonical returns a string field resolved through lookup. Unresolvable
// values are absent and reported.
func (h *Hit) Canonical(path string, lookup Lookuper) (string, bool) {
	s, ok := h.String(path)
	if !ok {
		return "", false
	}
	v, ok := lookup(s)
	if !ok {
		h.anomaly(path, fmt.Errorf("unrecognized value %q", s))
		return "", false
	}
	return v, true
}

// Strings returns a list of strings. A scalar string is returned as a one-element list.
// Non-string elements are skipped and reported.
func (h *Hit) Strings(path string) []string {
	v, ok := h.Lookup(path)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			switch s := e.(type) {
			case string:
				if s != "" {
					out = append(out, s)
				}
			case json.Number:
				out = append(out, s.String())
			case nil:
			default:
				h.anomaly(path, fmt.Errorf("expected string element, got %T", e))
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		h.anomaly(path, fmt.Errorf("expected list, got %T", v))
		return nil
	}
}

// Ints returns a list of integers, skipping and reporting unconvertible elements.
func (h *Hit) Ints(path string) []int64 {
	v, ok := h.Lookup(path)
	if !ok {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		items = []any{v}
	}
	out := make([]int64, 0, len(items))
	for _, e := range items {
		n, err := toInt(e)
		if err != nil {
			h.anomaly(path, err)
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Objects returns a list of nested objects.
func (h *Hit) Objects(path string) []map[string]any {
	v, ok := h.Lookup(path)
	if !ok {
		return nil
	}
	items, isList := v.([]any)
	if !isList {
		items = []any{v}
	}
	out := make([]map[string]any, 0, len(items))
	for _, e := range items {
		obj, ok := e.(map[string]any)
		if !ok {
			h.anomaly(path, fmt.Errorf("expected object element, got %T", e))
			continue
		}
		out = append(out, obj)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Highlight returns the first highlighted fragment of field.
func (h *Hit) Highlight(field string) (string, bool) {
	frags := h.highlights[field]
	if len(frags) == 0 || frags[0] == "" {
		return "", false
	}
	return frags[0], true
}

// StringOrHighlight prefers the highlighted fragment over the stored value.
func (h *Hit) StringOrHighlight(path string) (string, bool) {
	if s, ok := h.Highlight(path); ok {
		return s, true
	}
	return h.String(path)
}

func (h *Hit) anomaly(field string, err error) {
	h.logger.Warn("Failed to extract hit field",
		zap.String("id", h.id),
		zap.String("field", field),
		zap.Error(err),
	)
	if h.onAnomaly != nil {
		h.onAnomaly(field, err)
	}
}

func toInt(v any) (int64, error) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		f, err := t.Float64()
		if err != nil {
			return 0, fmt.Errorf("parse number %q: %w", t, err)
		}
		return int64(f), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse int %q: %w", t, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
