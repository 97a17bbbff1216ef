package model

// Multiplicity is an optional (lower, upper) textual bound pair, e.g.
// `[0..1]` or `[1..*]`. Upper may literally be "*".
type Multiplicity struct {
	Lower string
	Upper string
}

// DefaultValue is a usage's `default = <expr>` payload. HasKeyword records
// whether the literal `default` keyword appeared (as opposed to a bare `=`).
type DefaultValue struct {
	Expr       string
	HasKeyword bool
}

// attachment is any entry the writer's body-write step sorts by source
// offset: documentation, applied metadata, owned imports/aliases, body
// statements, named comments, and textual representations all implement it
// implicitly via the fields recorded in Node; the writer reads those fields
// directly rather than through an interface, since each kind renders
// differently.

// Node is a definition, usage, or package-like element of the semantic
// model.
type Node struct {
	ID       string
	Kind     NodeKind
	Name     string
	HasName  bool
	ParentID string
	HasParent bool

	TypedBy     []TypedRef
	Specializes []QualifiedRef
	Redefines   []QualifiedRef
	References  []QualifiedRef

	Abstract           bool
	Variation          bool
	Readonly           bool
	Derived            bool
	Constant           bool
	Ref                bool
	End                bool
	Parallel           bool
	Exhibit            bool
	Asserted           bool
	Negated            bool
	IsStandardLibrary  bool
	IsPublicExplicit   bool
	IsEventOccurrence  bool
	HasEnumKeyword     bool
	HasActionKeyword   bool
	HasConnectKeyword  bool
	PortionKind        PortionKind
	RefBehavioralKeyword string
	HasRefBehavioralKeyword bool
	Direction          Direction
	Visibility         Visibility

	Multiplicity *Multiplicity
	Default      *DefaultValue

	LeadingTrivia  *Trivia
	TrailingTrivia *Trivia
	Doc            *Documentation

	AppliedMetadata       []*MetadataUsage
	PrefixMetadata        []QualifiedRef
	PrefixAppliedMetadata []*MetadataUsage
	NamedComments         []*NamedComment
	TextualRepresentations []*TextualRepresentation
	BodyStatements        []*Statement
	ResultExpression      *Statement

	ConnectorPart string
	HasConnectorPart bool

	ParamList string // verbatim parameter list text, when present
	HasParamList bool

	Location Location

	// insertionIndex is the position this node was added to its model,
	// used as the offset-zero tie-breaker by the writer.
	insertionIndex int
}

// InsertionIndex exposes the order this node was added to its model.
func (n *Node) InsertionIndex() int { return n.insertionIndex }

// IsPackage classifies this node's kind.
func (n *Node) IsPackage() bool { return n.Kind.IsPackage() }

// IsDefinition classifies this node's kind.
func (n *Node) IsDefinition() bool { return n.Kind.IsDefinition() }

// IsUsage classifies this node's kind.
func (n *Node) IsUsage() bool { return n.Kind.IsUsage() }

// IsRelationship is always false for Node; relationships are a distinct
// entity. Present for symmetry with the RelationshipKind classifier.
func (n *Node) IsRelationship() bool { return false }
