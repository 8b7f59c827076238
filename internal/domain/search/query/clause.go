// Package query holds the backend-neutral compiled query plan and renders it
// into the Elasticsearch query DSL.
package query

// Clause is a node of the query tree.
type Clause interface {
	// Source renders the clause into its DSL representation.
	Source() map[string]any
}

// MatchAll matches every document.
type MatchAll struct{}

// Source implements Clause.
func (MatchAll) Source() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// Term matches one exact value.
type Term struct {
	Field string
	Value any
}

// Source implements Clause.
func (t Term) Source() map[string]any {
	return map[string]any{"term": map[string]any{t.Field: t.Value}}
}

// Terms matches any of several exact values.
type Terms struct {
	Field  string
	Values []any
}

// Source implements Clause.
func (t Terms) Source() map[string]any {
	return map[string]any{"terms": map[string]any{t.Field: t.Values}}
}

// Range bounds a field. A nil bound is open.
type Range struct {
	Field string
	GTE   any
	LTE   any
}

// Source implements Clause.
func (r Range) Source() map[string]any {
	body := map[string]any{}
	if r.GTE != nil {
		body["gte"] = r.GTE
	}
	if r.LTE != nil {
		body["lte"] = r.LTE
	}
	return map[string]any{"range": map[string]any{r.Field: body}}
}

// GeoShape matches documents whose shape relates to a WKT geometry.
type GeoShape struct {
	Field    string
	WKT      string
	Relation string
}

// RelationWithin selects documents inside the shape.
const RelationWithin = "within"

// Source implements Clause.
func (g GeoShape) Source() map[string]any {
	return map[string]any{"geo_shape": map[string]any{
		g.Field: map[string]any{
			"shape":    g.WKT,
			"relation": g.Relation,
		},
	}}
}

// Match is a full-text match on one field.
type Match struct {
	Field    string
	Query    string
	Operator string
}

// Source implements Clause.
func (m Match) Source() map[string]any {
	if m.Operator == "" {
		return map[string]any{"match": map[string]any{m.Field: m.Query}}
	}
	return map[string]any{"match": map[string]any{
		m.Field: map[string]any{"query": m.Query, "operator": m.Operator},
	}}
}

// Prefix matches a term prefix.
type Prefix struct {
	Field string
	Value string
	Boost float64
}

// Source implements Clause.
func (p Prefix) Source() map[string]any {
	body := map[string]any{"value": p.Value}
	if p.Boost != 0 {
		body["boost"] = p.Boost
	}
	return map[string]any{"prefix": map[string]any{p.Field: body}}
}

// MultiMatch runs a full-text query over several boosted fields.
type MultiMatch struct {
	Query              string
	Fields             []string
	Type               string
	TieBreaker         float64
	MinimumShouldMatch string
	Slop               int
}

// Source implements Clause.
func (m MultiMatch) Source() map[string]any {
	body := map[string]any{
		"query":  m.Query,
		"fields": m.Fields,
	}
	if m.Type != "" {
		body["type"] = m.Type
	}
	if m.TieBreaker != 0 {
		body["tie_breaker"] = m.TieBreaker
	}
	if m.MinimumShouldMatch != "" {
		body["minimum_should_match"] = m.MinimumShouldMatch
	}
	if m.Slop != 0 {
		body["slop"] = m.Slop
	}
	return map[string]any{"multi_match": body}
}

// FieldValueFactor scores documents by a numeric field.
type FieldValueFactor struct {
	Field    string
	Modifier string
	Missing  float64
}

// FunctionScore rescales the score of an inner query.
type FunctionScore struct {
	Query     Clause
	Factor    FieldValueFactor
	BoostMode string
}

// Source implements Clause.
func (f FunctionScore) Source() map[string]any {
	body := map[string]any{
		"query": f.Query.Source(),
		"field_value_factor": map[string]any{
			"field":    f.Factor.Field,
			"modifier": f.Factor.Modifier,
			"missing":  f.Factor.Missing,
		},
	}
	if f.BoostMode != "" {
		body["boost_mode"] = f.BoostMode
	}
	return map[string]any{"function_score": body}
}

// Bool combines clauses.
type Bool struct {
	Must               []Clause
	Filter             []Clause
	Should             []Clause
	MustNot            []Clause
	MinimumShouldMatch int
}

// IsEmpty reports whether the bool query has no clauses.
func (b Bool) IsEmpty() bool {
	return len(b.Must) == 0 && len(b.Filter) == 0 && len(b.Should) == 0 && len(b.MustNot) == 0
}

// Source implements Clause.
func (b Bool) Source() map[string]any {
	body := map[string]any{}
	addClauses(body, "must", b.Must)
	addClauses(body, "filter", b.Filter)
	addClauses(body, "should", b.Should)
	addClauses(body, "must_not", b.MustNot)
	if b.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = b.MinimumShouldMatch
	}
	return map[string]any{"bool": body}
}

func addClauses(body map[string]any, key string, cs []Clause) {
	if len(cs) == 0 {
		return
	}
	out := make([]map[string]any, len(cs))
	for i, c := range cs {
		out[i] = c.Source()
	}
	body[key] = out
}
