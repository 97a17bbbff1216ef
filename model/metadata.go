package model

// MetadataFeature is a single (name, value) pair inside a metadata usage
// body, e.g. `:>> priority = 3`.
type MetadataFeature struct {
	Name  string
	Value string
}

// MetadataUsage is an `@Type { ... }` or `@Type;` annotation attached either
// as a prefix to the next node (PrefixAppliedMetadata) or to an
// already-built node's body (AppliedMetadata).
type MetadataUsage struct {
	TypeRef  QualifiedRef
	Features []MetadataFeature
	About    []QualifiedRef
	Location Location
}

// NamedComment is a `comment <Name> about <Target> /* text */`-style element
// scoped to a node.
type NamedComment struct {
	Name     string
	Text     string
	Location Location
}

// TextualRepresentation is a `rep <name> language "<lang>" /* text */`
// element scoped to a node.
type TextualRepresentation struct {
	Name     string
	Language string
	Text     string
	Location Location
}

// Documentation is a `doc /* text */` element attached to a node.
type Documentation struct {
	Text     string
	Location Location
}
