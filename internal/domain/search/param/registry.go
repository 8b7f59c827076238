package param

import "strings"

// Registry resolves query-string names to the parameters of one search domain.
type Registry struct {
	params []Parameter
	byKey  map[string]Parameter
}

// NewRegistry indexes params by their normalized name.
func NewRegistry(params ...Parameter) *Registry {
	r := &Registry{
		params: append([]Parameter(nil), params...),
		byKey:  make(map[string]Parameter, len(params)),
	}
	for _, p := range params {
		r.byKey[lookupKey(p.Name())] = p
	}
	return r
}

// Lookup finds a parameter ignoring case and underscores, so both
// publishingCountry and PUBLISHING_COUNTRY resolve.
func (r *Registry) Lookup(name string) (Parameter, bool) {
	p, ok := r.byKey[lookupKey(name)]
	return p, ok
}

// All returns the parameters in registration order.
func (r *Registry) All() []Parameter { return append([]Parameter(nil), r.params...) }

func lookupKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
