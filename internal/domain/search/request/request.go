package request

import "github.com/kailas-cloud/facetsearch/internal/domain/search/param"

// Paging defaults.
const (
	DefaultLimit = 20
	// MatchAllQuery is the q value that matches every document.
	MatchAllQuery = "*"
)

// Request is a parameterized search query. It is assembled once per call
// and read-only afterwards.
type Request struct {
	q               string
	order           []param.Parameter
	params          map[param.Parameter][]string
	offset          int
	limit           int
	highlight       bool
	spellCheck      bool
	spellCheckCount int
}

// New creates a request. Negative offsets become 0, negative limits DefaultLimit.
// A zero limit asks for counts and facets only.
func New(q string, offset, limit int) *Request {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = DefaultLimit
	}
	return &Request{
		q:      q,
		params: make(map[param.Parameter][]string),
		offset: offset,
		limit:  limit,
	}
}

// AddParameter appends values for p. Empty and repeated values are ignored;
// the first occurrence keeps its position.
func (r *Request) AddParameter(p param.Parameter, values ...string) *Request {
	existing, seen := r.params[p]
	for _, v := range values {
		if v == "" || contains(existing, v) {
			continue
		}
		existing = append(existing, v)
	}
	if len(existing) == 0 {
		return r
	}
	if !seen {
		r.order = append(r.order, p)
	}
	r.params[p] = existing
	return r
}

// WithHighlight toggles hit highlighting.
func (r *Request) WithHighlight(on bool) *Request {
	r.highlight = on
	return r
}

// WithSpellCheck toggles spell-check suggestions and their count.
func (r *Request) WithSpellCheck(on bool, count int) *Request {
	r.spellCheck = on
	r.spellCheckCount = count
	return r
}

// Query returns q; empty when absent.
func (r *Request) Query() string { return r.q }

// IsMatchAll reports whether q is the match-all wildcard.
func (r *Request) IsMatchAll() bool { return r.q == MatchAllQuery }

// Parameters returns the filter parameters in insertion order.
func (r *Request) Parameters() []param.Parameter { return append([]param.Parameter(nil), r.order...) }

// Values returns the values of p.
func (r *Request) Values(p param.Parameter) []string { return r.params[p] }

// Params returns a copy of the parameter map.
func (r *Request) Params() map[param.Parameter][]string {
	out := make(map[param.Parameter][]string, len(r.params))
	for k, v := range r.params {
		out[k] = v
	}
	return out
}

// Offset returns the result offset.
func (r *Request) Offset() int { return r.offset }

// Limit returns the page size.
func (r *Request) Limit() int { return r.limit }

// Highlight reports whether highlighting is requested.
func (r *Request) Highlight() bool { return r.highlight }

// SpellCheck reports whether spell-check suggestions are requested.
func (r *Request) SpellCheck() bool { return r.spellCheck }

// SpellCheckCount returns the number of spell-check suggestions requested.
func (r *Request) SpellCheckCount() int { return r.spellCheckCount }

func contains(vals []string, v string) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
