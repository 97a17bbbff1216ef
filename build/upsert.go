package build

import (
	"strings"

	"github.com/viant/sysml/model"
)

// Upsert splices fragment's elements, relationships, imports and aliases
// into target beneath scopePath. Root-owned content in fragment (ParentID
// unset) is reparented to the resolved scope id; everything already scoped
// within fragment keeps its relative nesting, qualified under the new
// prefix. When createScope is set and intermediate packages named by
// scopePath do not exist in target, stub Package nodes are created for
// them, mirroring how CreatePackage/CreateFile in the teacher's coder
// synthesize missing containers on demand rather than failing.
//
// It reports the resolved scope id and whether scopePath had to be created.
func Upsert(target *model.SemanticModel, scopePath model.QualifiedRef, createScope bool, fragment *model.SemanticModel) (scopeID string, created bool, err error) {
	scopeID, created, err = ensureScope(target, scopePath, createScope)
	if err != nil {
		return "", false, err
	}

	oldToNew := make(map[string]string, len(fragment.Elements))
	for _, n := range fragment.Elements {
		oldToNew[n.ID] = qualify(scopeID, n.ID)
	}

	for _, n := range fragment.Elements {
		clone := *n
		clone.ID = oldToNew[n.ID]
		if !n.HasParent {
			clone.ParentID = scopeID
			clone.HasParent = scopeID != ""
		} else if mapped, ok := oldToNew[n.ParentID]; ok {
			clone.ParentID = mapped
		}
		target.AddElement(&clone)
	}
	for _, rel := range fragment.Relationships {
		clone := *rel
		target.AddRelationship(&clone)
	}
	for _, imp := range fragment.Imports {
		clone := *imp
		if !imp.HasOwner {
			clone.OwnerScope = scopeID
			clone.HasOwner = scopeID != ""
		} else if mapped, ok := oldToNew[imp.OwnerScope]; ok {
			clone.OwnerScope = mapped
		}
		target.AddImport(&clone)
	}
	for _, a := range fragment.Aliases {
		clone := *a
		if !a.HasOwner {
			clone.OwnerScope = scopeID
			clone.HasOwner = scopeID != ""
		} else if mapped, ok := oldToNew[a.OwnerScope]; ok {
			clone.OwnerScope = mapped
		}
		target.AddAlias(&clone)
	}

	return scopeID, created, nil
}

// Delete removes every element whose id is in ids together with all of its
// descendants, along with any relationship, import, or alias touching or
// scoped beneath a removed element. Callers resolve ids via the query engine
// beforehand; Delete itself does no pattern matching, keeping this package
// independent of it.
func Delete(target *model.SemanticModel, ids map[string]bool) int {
	if len(ids) == 0 {
		return 0
	}
	gone := make(map[string]bool, len(ids))
	for id := range ids {
		gone[id] = true
	}
	for grew := true; grew; {
		grew = false
		for _, n := range target.Elements {
			if !gone[n.ID] && n.HasParent && gone[n.ParentID] {
				gone[n.ID] = true
				grew = true
			}
		}
	}
	removed := 0
	kept := target.Elements[:0]
	for _, n := range target.Elements {
		if gone[n.ID] {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	target.Elements = kept

	var keptRels []*model.Relationship
	for _, r := range target.Relationships {
		if gone[string(r.Source)] || gone[string(r.Target)] {
			continue
		}
		keptRels = append(keptRels, r)
	}
	target.Relationships = keptRels

	var keptImports []*model.Import
	for _, imp := range target.Imports {
		if imp.HasOwner && gone[imp.OwnerScope] {
			continue
		}
		keptImports = append(keptImports, imp)
	}
	target.Imports = keptImports

	var keptAliases []*model.Alias
	for _, a := range target.Aliases {
		if a.HasOwner && gone[a.OwnerScope] {
			continue
		}
		keptAliases = append(keptAliases, a)
	}
	target.Aliases = keptAliases

	return removed
}

func qualify(scopeID string, name string) string {
	if scopeID == "" {
		return name
	}
	return scopeID + "::" + name
}

// ensureScope resolves scopePath to an existing node id, creating stub
// Package nodes for missing path segments when createScope is set.
func ensureScope(target *model.SemanticModel, scopePath model.QualifiedRef, createScope bool) (string, bool, error) {
	if scopePath == "" {
		return "", false, nil
	}
	if _, ok := target.ElementByID(string(scopePath)); ok {
		return string(scopePath), false, nil
	}
	if !createScope {
		return "", false, errNotFound(scopePath)
	}

	segments := strings.Split(string(scopePath), "::")
	var built string
	createdAny := false
	for i, seg := range segments {
		id := seg
		if i > 0 {
			id = built + "::" + seg
		}
		if _, ok := target.ElementByID(id); !ok {
			stub := &model.Node{ID: id, Kind: model.KindPackage, Name: seg, HasName: true}
			if i > 0 {
				stub.ParentID = built
				stub.HasParent = true
			}
			target.AddElement(stub)
			createdAny = true
		}
		built = id
	}
	return built, createdAny, nil
}

type scopeNotFoundError struct{ path model.QualifiedRef }

func (e *scopeNotFoundError) Error() string {
	return "build: scope not found and create_scope not set: " + string(e.path)
}

func errNotFound(path model.QualifiedRef) error { return &scopeNotFoundError{path: path} }
