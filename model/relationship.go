package model

// Relationship is an independent edge element: a Specialization,
// Redefinition, Reference, Connection, Flow, Allocation, Satisfy, or
// Include between two qualified references.
type Relationship struct {
	ID       string
	Kind     RelationshipKind
	Source   QualifiedRef
	Target   QualifiedRef
	Location Location
}
