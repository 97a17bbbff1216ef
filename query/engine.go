package query

import "github.com/viant/sysml/model"

// Result is the outcome of Execute: the matched elements, the
// relationships whose both endpoints are present in the matched set, and
// the imports owned by a matched scope.
type Result struct {
	Elements      []*model.Node
	Relationships []*model.Relationship
	Imports       []*model.Import

	ids map[string]bool
}

// Contains reports whether id is a matched element, in constant average
// time.
func (r *Result) Contains(id string) bool {
	if r.ids == nil {
		return false
	}
	return r.ids[id]
}

// Execute matches patterns against every element across models, in
// insertion order, each element at most once, then expands the match to
// relationships whose both endpoints are present and imports owned by a
// matched scope.
func Execute(patterns []Pattern, models []*model.SemanticModel) *Result {
	result := &Result{ids: make(map[string]bool)}

	for _, sm := range models {
		for _, n := range sm.Elements {
			if result.ids[n.ID] {
				continue
			}
			if MatchesAny(patterns, n.ID) {
				result.ids[n.ID] = true
				result.Elements = append(result.Elements, n)
			}
		}
	}

	for _, sm := range models {
		for _, rel := range sm.Relationships {
			if result.ids[string(rel.Source)] && result.ids[string(rel.Target)] {
				result.Relationships = append(result.Relationships, rel)
			}
		}
	}

	for _, sm := range models {
		for _, imp := range sm.Imports {
			if imp.HasOwner && result.ids[imp.OwnerScope] {
				result.Imports = append(result.Imports, imp)
			}
		}
	}

	return result
}

// Ancestors traces every matched id upward via its qualified-path parent,
// collecting each enclosing id that is neither already matched nor already
// collected, so the writer can synthesize the stub scopes needed to keep
// the produced source structurally valid.
func Ancestors(result *Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range result.Elements {
		id := n.ID
		for {
			parent, ok := ParentPath(id)
			if !ok {
				break
			}
			if !result.Contains(parent) && !seen[parent] {
				seen[parent] = true
				out = append(out, parent)
			}
			id = parent
		}
	}
	return out
}
