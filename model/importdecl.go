package model

// Import is a `import <target>;` / `import <target>::*;` /
// `import <target>::**;` declaration owned by a scope (or the root when
// OwnerScope is empty).
type Import struct {
	Kind       ImportKind
	Target     QualifiedRef
	OwnerScope string // "" means root-level
	HasOwner   bool
	Visibility ImportVisibility
	Location   Location
}

// Alias is a `alias <Name> for <Target>;` declaration owned by a scope.
type Alias struct {
	Name       string
	Target     QualifiedRef
	OwnerScope string
	HasOwner   bool
	Location   Location
}
