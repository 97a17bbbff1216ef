package write

import (
	"encoding/json"

	"github.com/viant/sysml/model"
)

// jsonTypedRef/jsonMultiplicity/jsonDefault/jsonNode/jsonRelationship/
// jsonImport/jsonAlias/jsonGraph mirror model's own types with json tags;
// kept separate from model so the semantic model stays free of a
// presentation-layer dependency.

type jsonTypedRef struct {
	Ref        model.QualifiedRef `json:"ref"`
	Conjugated bool               `json:"conjugated,omitempty"`
}

type jsonMultiplicity struct {
	Lower string `json:"lower"`
	Upper string `json:"upper,omitempty"`
}

type jsonNode struct {
	ID       string        `json:"id"`
	Kind     model.NodeKind `json:"kind"`
	Name     string        `json:"name,omitempty"`
	ParentID string        `json:"parentId,omitempty"`

	TypedBy     []jsonTypedRef       `json:"typedBy,omitempty"`
	Specializes []model.QualifiedRef `json:"specializes,omitempty"`
	Redefines   []model.QualifiedRef `json:"redefines,omitempty"`
	References  []model.QualifiedRef `json:"references,omitempty"`

	Abstract  bool `json:"abstract,omitempty"`
	Variation bool `json:"variation,omitempty"`
	Readonly  bool `json:"readonly,omitempty"`
	Derived   bool `json:"derived,omitempty"`
	Constant  bool `json:"constant,omitempty"`

	Multiplicity *jsonMultiplicity `json:"multiplicity,omitempty"`

	Doc string `json:"doc,omitempty"`
}

type jsonRelationship struct {
	ID     string                  `json:"id"`
	Kind   model.RelationshipKind  `json:"kind"`
	Source model.QualifiedRef      `json:"source"`
	Target model.QualifiedRef      `json:"target"`
}

type jsonImport struct {
	Target     model.QualifiedRef     `json:"target"`
	Kind       model.ImportKind       `json:"kind"`
	OwnerScope string                 `json:"ownerScope,omitempty"`
	Visibility model.ImportVisibility `json:"visibility"`
}

type jsonAlias struct {
	Name       string             `json:"name"`
	Target     model.QualifiedRef `json:"target"`
	OwnerScope string             `json:"ownerScope,omitempty"`
}

// jsonGraph is the top-level shape written for output_format=json: the
// model's elements, relationships, imports, and aliases in insertion order,
// flattened out of the scope-nesting the canonical writer reconstructs from
// ParentID. A consumer that wants the tree back can rebuild it by grouping
// Nodes on ParentID, the same relation the writer itself queries through
// SemanticModel.ChildrenOf.
type jsonGraph struct {
	Source        string             `json:"source"`
	Nodes         []jsonNode         `json:"nodes"`
	Relationships []jsonRelationship `json:"relationships,omitempty"`
	Imports       []jsonImport       `json:"imports,omitempty"`
	Aliases       []jsonAlias        `json:"aliases,omitempty"`
}

// JSON renders sm as an indented JSON graph, for output_format=json.
func JSON(sm *model.SemanticModel) ([]byte, error) {
	g := jsonGraph{Source: sm.SourceName}
	for _, n := range sm.Elements {
		g.Nodes = append(g.Nodes, toJSONNode(n))
	}
	for _, rel := range sm.Relationships {
		g.Relationships = append(g.Relationships, jsonRelationship{
			ID: rel.ID, Kind: rel.Kind, Source: rel.Source, Target: rel.Target,
		})
	}
	for _, imp := range sm.Imports {
		g.Imports = append(g.Imports, jsonImport{
			Target: imp.Target, Kind: imp.Kind, OwnerScope: imp.OwnerScope, Visibility: imp.Visibility,
		})
	}
	for _, a := range sm.Aliases {
		g.Aliases = append(g.Aliases, jsonAlias{Name: a.Name, Target: a.Target, OwnerScope: a.OwnerScope})
	}
	return json.MarshalIndent(g, "", "  ")
}

func toJSONNode(n *model.Node) jsonNode {
	out := jsonNode{
		ID:          n.ID,
		Kind:        n.Kind,
		Name:        n.Name,
		ParentID:    n.ParentID,
		Specializes: n.Specializes,
		Redefines:   n.Redefines,
		References:  n.References,
		Abstract:    n.Abstract,
		Variation:   n.Variation,
		Readonly:    n.Readonly,
		Derived:     n.Derived,
		Constant:    n.Constant,
	}
	for _, t := range n.TypedBy {
		out.TypedBy = append(out.TypedBy, jsonTypedRef{Ref: t.Ref, Conjugated: t.Conjugated})
	}
	if n.Multiplicity != nil {
		out.Multiplicity = &jsonMultiplicity{Lower: n.Multiplicity.Lower, Upper: n.Multiplicity.Upper}
	}
	if n.Doc != nil {
		out.Doc = n.Doc.Text
	}
	return out
}
