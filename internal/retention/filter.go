// Package retention implements the decision engine that partitions a
// repository's workflow run history into retained and deletable runs.
// Everything in this package is pure: it consumes in-memory snapshots
// and a configuration and never performs I/O.
package retention

import (
	"sort"
	"strings"
)

// allSentinel matches everything when used as a state or conclusion
// filter. It resolves to the unrestricted filter, same as an absent
// or empty pattern.
const allSentinel = "all"

// SplitPattern splits a comma and/or pipe delimited pattern string into
// its tokens, trimming whitespace and dropping empty entries.
func SplitPattern(pattern string) []string {
	if pattern == "" {
		return nil
	}

	fields := strings.FieldsFunc(pattern, func(r rune) bool {
		return r == ',' || r == '|'
	})

	var tokens []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Filter is a set-membership filter over enum-like string values.
// The zero value is unrestricted and matches everything. Matching is
// case-insensitive.
type Filter struct {
	values map[string]struct{}
}

// NewFilter builds a Filter from a delimited pattern string. An empty
// pattern or the literal "ALL" (any case) produces the unrestricted
// filter rather than one that matches nothing.
func NewFilter(pattern string) Filter {
	tokens := SplitPattern(pattern)
	if len(tokens) == 0 {
		return Filter{}
	}
	if len(tokens) == 1 && strings.EqualFold(tokens[0], allSentinel) {
		return Filter{}
	}

	values := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		values[strings.ToLower(tok)] = struct{}{}
	}
	return Filter{values: values}
}

// Unrestricted reports whether the filter matches everything
func (f Filter) Unrestricted() bool {
	return f.values == nil
}

// Matches reports whether value passes the filter
func (f Filter) Matches(value string) bool {
	if f.values == nil {
		return true
	}
	_, ok := f.values[strings.ToLower(value)]
	return ok
}

// Values returns the restricted value set in sorted order, or nil for
// the unrestricted filter. Used for logging.
func (f Filter) Values() []string {
	if f.values == nil {
		return nil
	}
	out := make([]string, 0, len(f.values))
	for v := range f.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
