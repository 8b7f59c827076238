package param

import "strings"

// Vocabulary is an ordered, immutable set of enum names.
type Vocabulary struct {
	name   string
	values []string
	index  map[string]string
}

// NewVocabulary creates a vocabulary. Values keep their declaration order.
func NewVocabulary(name string, values ...string) *Vocabulary {
	v := &Vocabulary{
		name:   name,
		values: append([]string(nil), values...),
		index:  make(map[string]string, len(values)),
	}
	for _, val := range values {
		v.index[EnumKey(val)] = val
	}
	return v
}

// Name returns the vocabulary name.
func (v *Vocabulary) Name() string { return v.name }

// Values returns a copy of the names in declaration order.
func (v *Vocabulary) Values() []string { return append([]string(nil), v.values...) }

// Size returns the number of names.
func (v *Vocabulary) Size() int { return len(v.values) }

// Lookup resolves a raw value to its canonical name, ignoring case and separators.
func (v *Vocabulary) Lookup(raw string) (string, bool) {
	val, ok := v.index[EnumKey(raw)]
	return val, ok
}

// EnumKey folds a value into enum-constant form: upper case, every run of
// non-alphanumeric characters replaced by a single underscore.
func EnumKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z':
			r -= 'a' - 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		default:
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}
