package currency

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Registry is the immutable table of known currencies. It is safe for concurrent use
type Registry struct {
	byKey    map[string]Currency
	byISO    map[string]string
	bySymbol map[string]string
	byID     map[int]string
	ordered  []string
	missing  []string
}

func newRegistry(currencies map[string]Currency) *Registry {
	r := &Registry{
		byKey:    currencies,
		byISO:    make(map[string]string, len(currencies)),
		bySymbol: make(map[string]string, len(currencies)),
		byID:     make(map[int]string, len(currencies)),
		ordered:  make([]string, 0, len(currencies)),
	}

	for key, c := range currencies {
		r.ordered = append(r.ordered, key)
		if c.HasID() {
			r.byID[c.ID] = key
		} else {
			r.missing = append(r.missing, key)
		}
	}

	// the most important currency wins a shared code or symbol
	sort.Slice(r.ordered, func(i, j int) bool {
		a, b := currencies[r.ordered[i]], currencies[r.ordered[j]]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}

		return a.Key < b.Key
	})
	sort.Strings(r.missing)

	for _, key := range r.ordered {
		c := currencies[key]
		putIfAbsent(r.byISO, fold(c.ISOCode), key)
		putIfAbsent(r.bySymbol, fold(c.Symbol), key)
	}

	for _, key := range r.ordered {
		for _, sym := range currencies[key].AlternateSymbols {
			putIfAbsent(r.bySymbol, fold(sym), key)
		}
	}

	return r
}

func putIfAbsent(m map[string]string, k, v string) {
	if k == "" {
		return
	}

	if _, ok := m[k]; !ok {
		m[k] = v
	}
}

// Find looks up a currency by key, ISO code or symbol, case-insensitively
func (r *Registry) Find(code string) (Currency, bool) {
	code = fold(code)
	if code == "" {
		return Currency{}, false
	}

	if c, ok := r.byKey[code]; ok {
		return c.clone(), true
	}

	if key, ok := r.byISO[code]; ok {
		return r.byKey[key].clone(), true
	}

	if key, ok := r.bySymbol[code]; ok {
		return r.byKey[key].clone(), true
	}

	return Currency{}, false
}

// Wrap normalizes a Currency, *Currency or a code string into the canonical registry Currency
func (r *Registry) Wrap(v interface{}) (Currency, error) {
	var code string
	switch tv := v.(type) {
	case Currency:
		code = tv.Key
		if code == "" {
			code = tv.ISOCode
		}
	case *Currency:
		if tv == nil {
			return Currency{}, fmt.Errorf("%w: nil", ErrUnknownCurrency)
		}
		return r.Wrap(*tv)
	case string:
		code = tv
	case fmt.Stringer:
		code = tv.String()
	default:
		return Currency{}, fmt.Errorf("%w: unsupported type %T", ErrUnknownCurrency, v)
	}

	c, ok := r.Find(code)
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}

	return c, nil
}

// ByID returns the currency with the numeric short id
func (r *Registry) ByID(id int) (Currency, bool) {
	key, ok := r.byID[id]
	if !ok {
		return Currency{}, false
	}

	return r.byKey[key].clone(), true
}

// All returns every currency ordered by priority and key
func (r *Registry) All() []Currency {
	list := make([]Currency, len(r.ordered))
	for i, key := range r.ordered {
		list[i] = r.byKey[key].clone()
	}

	return list
}

// MissingIDs returns currencies without a short id, the list is empty unless
// the registry was loaded with WithSilenceMissingIDs
func (r *Registry) MissingIDs() []Currency {
	list := make([]Currency, len(r.missing))
	for i, key := range r.missing {
		list[i] = r.byKey[key].clone()
	}

	return list
}

func (r *Registry) Len() int {
	return len(r.byKey)
}

// fold returns the case-insensitive form of a code. Casers are stateful, so a new one is taken per call
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
