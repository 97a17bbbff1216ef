package model

// SemanticModel is the full result of building one source file: its
// elements, relationships, imports, and aliases, in insertion order. Order
// of insertion is load-bearing: it is the writer's tie-breaker whenever two
// attachments share a source offset (or both have offset zero, i.e. were
// synthesized by rewriting).
type SemanticModel struct {
	SourceName string
	SourceFile *SourceFile

	Elements      []*Node
	Relationships []*Relationship
	Imports       []*Import
	Aliases       []*Alias

	elementByID map[string]int
}

// NewSemanticModel creates an empty model named sourceName.
func NewSemanticModel(sourceName string) *SemanticModel {
	return &SemanticModel{
		SourceName:  sourceName,
		elementByID: make(map[string]int),
	}
}

// AddElement appends node to the model's element sequence, stamping its
// insertion index and indexing it by id.
func (m *SemanticModel) AddElement(n *Node) {
	n.insertionIndex = len(m.Elements)
	m.Elements = append(m.Elements, n)
	if m.elementByID == nil {
		m.elementByID = make(map[string]int)
	}
	m.elementByID[n.ID] = len(m.Elements) - 1
}

// AddRelationship appends rel to the model's relationship sequence.
func (m *SemanticModel) AddRelationship(rel *Relationship) {
	m.Relationships = append(m.Relationships, rel)
}

// AddImport appends imp to the model's import sequence.
func (m *SemanticModel) AddImport(imp *Import) {
	m.Imports = append(m.Imports, imp)
}

// AddAlias appends alias to the model's alias sequence.
func (m *SemanticModel) AddAlias(alias *Alias) {
	m.Aliases = append(m.Aliases, alias)
}

// ElementByID looks up an element by its fully-qualified id in O(1).
func (m *SemanticModel) ElementByID(id string) (*Node, bool) {
	if m.elementByID == nil {
		return nil, false
	}
	idx, ok := m.elementByID[id]
	if !ok || idx >= len(m.Elements) {
		return nil, false
	}
	return m.Elements[idx], true
}

// TopLevelPackage returns the first element whose kind is package-like and
// whose parent is absent, or nil. Used by the resolver to index a file's
// package name.
func (m *SemanticModel) TopLevelPackage() *Node {
	for _, n := range m.Elements {
		if n.IsPackage() && !n.HasParent {
			return n
		}
	}
	return nil
}

// ChildrenOf returns the elements whose ParentID equals scopeID (or the
// top-level elements when scopeID is ""), in ascending source-offset order
// with insertion order as the tie-breaker, honoring the rule that
// offset-zero (synthesized) elements sort last.
func (m *SemanticModel) ChildrenOf(scopeID string, hasScope bool) []*Node {
	var out []*Node
	for _, n := range m.Elements {
		if n.HasParent == hasScope && n.ParentID == scopeID {
			out = append(out, n)
		}
	}
	sortBySourceOrder(out)
	return out
}

// ImportsOf returns the imports owned by scopeID (or root-level when
// hasScope is false), in the order they were added to the model.
func (m *SemanticModel) ImportsOf(scopeID string, hasScope bool) []*Import {
	var out []*Import
	for _, imp := range m.Imports {
		if imp.HasOwner == hasScope && imp.OwnerScope == scopeID {
			out = append(out, imp)
		}
	}
	return out
}

// AliasesOf returns the aliases owned by scopeID (or root-level when
// hasScope is false), in the order they were added to the model.
func (m *SemanticModel) AliasesOf(scopeID string, hasScope bool) []*Alias {
	var out []*Alias
	for _, a := range m.Aliases {
		if a.HasOwner == hasScope && a.OwnerScope == scopeID {
			out = append(out, a)
		}
	}
	return out
}

func sortBySourceOrder(nodes []*Node) {
	// insertion sort: the slice is usually already close to sorted since
	// build-context emission follows source order save for synthesized
	// (offset==0) nodes, which this sort pushes to the end.
	for i := 1; i < len(nodes); i++ {
		j := i
		for j > 0 && less(nodes[j], nodes[j-1]) {
			nodes[j], nodes[j-1] = nodes[j-1], nodes[j]
			j--
		}
	}
}

func less(a, b *Node) bool {
	aZero := a.Location.Offset == 0
	bZero := b.Location.Offset == 0
	if aZero != bZero {
		return !aZero // non-zero offsets sort first
	}
	if a.Location.Offset != b.Location.Offset {
		return a.Location.Offset < b.Location.Offset
	}
	return a.insertionIndex < b.insertionIndex
}
