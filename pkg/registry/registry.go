// Package registry enumerates U.S. states, the District of Columbia and the
// territories together with their 2-digit FIPS state prefixes.
package registry

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// StateCode identifies a state-level jurisdiction.
type StateCode struct {
	Prefix string `json:"state_fips" yaml:"state_fips"`
	Abbr   string `json:"state_abbr" yaml:"state_abbr"`
	Name   string `json:"state_name" yaml:"state_name"`
}

// Registry answers state lookups for one configuration of secondary areas,
// territories and DC treatment.
type Registry struct {
	secondary   bool
	territories bool
	dcStatehood bool

	index map[string]StateCode
}

// Option configures a Registry.
type Option func(*Registry)

// WithSecondary includes Puerto Rico in States.
func WithSecondary(enabled bool) Option {
	return func(r *Registry) {
		r.secondary = enabled
	}
}

// WithTerritories includes American Samoa, Guam, the Northern Mariana Islands
// and the U.S. Virgin Islands in States.
func WithTerritories(enabled bool) Option {
	return func(r *Registry) {
		r.territories = enabled
	}
}

// WithDCStatehood treats the District of Columbia as a state-equivalent.
// When disabled DC is neither listed nor resolvable.
func WithDCStatehood(enabled bool) Option {
	return func(r *Registry) {
		r.dcStatehood = enabled
	}
}

// New builds a Registry. DC statehood is on unless an option disables it.
func New(opts ...Option) *Registry {
	r := &Registry{
		dcStatehood: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.index = make(map[string]StateCode, len(jurisdictions)*3)
	for _, j := range jurisdictions {
		if j.kind == KindDistrict && !r.dcStatehood {
			continue
		}
		r.index[foldKey(j.Abbr)] = j.StateCode
		r.index[foldKey(j.Name)] = j.StateCode
		r.index[j.Prefix] = j.StateCode
	}
	return r
}

// States returns the selected jurisdictions deduplicated on (Abbr, Prefix)
// and sorted by Prefix.
func (r *Registry) States() []StateCode {
	seen := make(map[[2]string]struct{}, len(jurisdictions))
	out := make([]StateCode, 0, len(jurisdictions))
	for _, j := range jurisdictions {
		if !r.includes(j.kind) {
			continue
		}
		k := [2]string{j.Abbr, j.Prefix}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, j.StateCode)
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Prefix < out[k].Prefix
	})
	return out
}

// Lookup resolves a USPS abbreviation, a full name or a 2-digit FIPS prefix,
// ignoring case and surrounding whitespace.
func (r *Registry) Lookup(key string) (StateCode, bool) {
	sc, ok := r.index[foldKey(key)]
	return sc, ok
}

// ExpectedPrefix returns the 2-digit FIPS prefix for a state, or "" when
// the input is not a known jurisdiction.
func (r *Registry) ExpectedPrefix(abbr string) string {
	if sc, ok := r.Lookup(abbr); ok {
		return sc.Prefix
	}
	return ""
}

func (r *Registry) includes(kind Kind) bool {
	switch kind {
	case KindState:
		return true
	case KindDistrict:
		return r.dcStatehood
	case KindSecondary:
		return r.secondary
	case KindTerritory:
		return r.territories
	default:
		return false
	}
}

// foldKey normalizes lookup keys. A Caser is not safe for concurrent use, so
// one is created per call.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
