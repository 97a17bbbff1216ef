// Package query implements the selection language used by the pipeline's
// select and delete options: a small id-pattern grammar plus the
// closure that expands a matched element set to its relationships and
// owned imports.
package query

import "strings"

// Kind classifies one parsed pattern.
type Kind int

const (
	// KindExact matches only the node whose id equals Base.
	KindExact Kind = iota
	// KindWildcard matches any node whose id is "Base::X" for a single
	// unqualified segment X; Base itself does not match.
	KindWildcard
	// KindRecursive matches Base and every node whose id begins with
	// "Base::".
	KindRecursive
)

// Pattern is one parsed selection expression.
type Pattern struct {
	Base string
	Kind Kind
}

// Parse classifies a single pattern string by its trailing wildcard form.
func Parse(text string) Pattern {
	if strings.HasSuffix(text, "::**") {
		return Pattern{Base: strings.TrimSuffix(text, "::**"), Kind: KindRecursive}
	}
	if strings.HasSuffix(text, "::*") {
		return Pattern{Base: strings.TrimSuffix(text, "::*"), Kind: KindWildcard}
	}
	return Pattern{Base: text, Kind: KindExact}
}

// ParseMulti chains a list of pattern strings into parsed Patterns,
// preserving order.
func ParseMulti(patterns []string) []Pattern {
	out := make([]Pattern, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, Parse(p))
	}
	return out
}

// Matches reports whether id satisfies this single pattern.
func (p Pattern) Matches(id string) bool {
	switch p.Kind {
	case KindExact:
		return id == p.Base
	case KindWildcard:
		rest := strings.TrimPrefix(id, p.Base+"::")
		if rest == id || rest == "" {
			return false
		}
		return !strings.Contains(rest, "::")
	case KindRecursive:
		if id == p.Base {
			return true
		}
		return strings.HasPrefix(id, p.Base+"::")
	}
	return false
}

// MatchesAny is the disjunction of a pattern list against a single id.
func MatchesAny(patterns []Pattern, id string) bool {
	for _, p := range patterns {
		if p.Matches(id) {
			return true
		}
	}
	return false
}

// ParentPath returns the substring up to the last "::" separator, or ""
// with ok=false when id is unqualified.
func ParentPath(id string) (string, bool) {
	idx := strings.LastIndex(id, "::")
	if idx < 0 {
		return "", false
	}
	return id[:idx], true
}
