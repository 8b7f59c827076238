// Package param defines typed search parameters and value normalization.
package param

import (
	"strings"

	"github.com/google/uuid"
)

// Kind is the static value type of a search parameter.
type Kind string

// Parameter kinds.
const (
	String   Kind = "string"
	Enum     Kind = "enum"
	Bool     Kind = "bool"
	Number   Kind = "number"
	Date     Kind = "date"
	UUID     Kind = "uuid"
	Geometry Kind = "geometry"
	// Country values are ISO 3166 alpha-2 codes, also accepted as English enum-style names.
	Country Kind = "country"
)

// Parameter is an immutable, comparable search parameter descriptor.
// It is safe to use as a map key.
type Parameter struct {
	name  string
	kind  Kind
	vocab *Vocabulary
}

// New creates a non-enum parameter.
func New(name string, kind Kind) Parameter {
	return Parameter{name: name, kind: kind}
}

// NewEnum creates an enum parameter backed by a vocabulary.
func NewEnum(name string, vocab *Vocabulary) Parameter {
	return Parameter{name: name, kind: Enum, vocab: vocab}
}

// Name returns the canonical parameter name, e.g. PUBLISHING_COUNTRY.
func (p Parameter) Name() string { return p.name }

// Kind returns the value type.
func (p Parameter) Kind() Kind { return p.kind }

// Vocabulary returns the enum vocabulary, nil for other kinds.
func (p Parameter) Vocabulary() *Vocabulary { return p.vocab }

// IsZero reports whether p is the zero Parameter.
func (p Parameter) IsZero() bool { return p.name == "" }

func (p Parameter) String() string { return p.name }

// SupportsRange reports whether values of this parameter may use the range syntax.
func (p Parameter) SupportsRange() bool {
	return p.kind == Number || p.kind == Date
}

// NormalizeValue converts a raw request value into the form stored in the index.
// Values that cannot be recognized are returned unchanged.
func (p Parameter) NormalizeValue(raw string) string {
	switch p.kind {
	case Enum:
		if p.vocab == nil {
			return raw
		}
		if v, ok := p.vocab.Lookup(raw); ok {
			return v
		}
		return raw
	case Country:
		if code, ok := CountryCode(raw); ok {
			return code
		}
		return raw
	case Bool:
		return strings.ToLower(raw)
	case UUID:
		if id, err := uuid.Parse(raw); err == nil {
			return id.String()
		}
		return raw
	default:
		return raw
	}
}
