package param

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var (
	countryNamesOnce sync.Once
	countryNames     map[string]string // enum-style English name -> alpha-2
)

// CountryCode resolves an ISO 3166 alpha-2 or alpha-3 code, or an enum-style
// English country name (DENMARK, UNITED_STATES), to the upper-case alpha-2 code.
func CountryCode(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s) == 2 || len(s) == 3 {
		if r, err := language.ParseRegion(s); err == nil && r.IsCountry() {
			return r.String(), true
		}
	}

	countryNamesOnce.Do(buildCountryNames)
	code, ok := countryNames[EnumKey(s)]
	return code, ok
}

func buildCountryNames() {
	namer := display.English.Regions()
	countryNames = make(map[string]string, 256)
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			r, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !r.IsCountry() {
				continue
			}
			if name := namer.Name(r); name != "" {
				countryNames[EnumKey(name)] = r.String()
			}
		}
	}
}
