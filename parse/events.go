// Package parse stands in for the PEG grammar and lexer the specification
// places out of scope: it turns SysML v2 / KerML textual source into the
// pull-based event stream build.Context is specified to consume. The event
// shape mirrors the flat, capture-style results smacker/go-tree-sitter hands
// back from a QueryCursor — one flat struct per occurrence, tagged by kind,
// pulled one at a time by the caller instead of pushed via callbacks.
package parse

import "github.com/viant/sysml/model"

// EventKind tags which fields of Event are meaningful.
type EventKind int

const (
	EventEnterScope EventKind = iota
	EventLeaveScope
	EventCreateNode
	EventAddElement
	EventAttachTyped
	EventAttachSpecializes
	EventAttachRedefines
	EventAttachReferences
	EventAttachMultiplicity
	EventAttachDefault
	EventAttachModifier
	EventAttachDirection
	EventAttachVisibility
	EventAttachPortionKind
	EventAttachConnectorPart
	EventAttachParamList
	EventAttachDoc
	EventAttachNamedComment
	EventAttachTextualRepresentation
	EventAttachResultExpression
	EventAttachTrailingTrivia
	EventEmitRelationship
	EventAddImport
	EventAddAlias
	EventAppendTrivia
	EventStartMetadata
	EventMetadataFeature
	EventMetadataAbout
	EventEndMetadataPrefix  // attaches the finished usage as pending (prefix-applied) metadata
	EventEndMetadataApplied // attaches the finished usage as applied metadata on the current node
	EventAddPrefixMetadataRef
	EventAddBodyStatement
	EventSyntaxError
	EventEOF
)

// Modifier names used with EventAttachModifier.
const (
	ModAbstract        = "abstract"
	ModVariation       = "variation"
	ModReadonly        = "readonly"
	ModDerived         = "derived"
	ModConstant        = "constant"
	ModRef             = "ref"
	ModEnd             = "end"
	ModParallel        = "parallel"
	ModExhibit         = "exhibit"
	ModAsserted        = "asserted"
	ModNegated         = "negated"
	ModStdLib          = "standard_library"
	ModEnumKw          = "enum_keyword"
	ModActionKw        = "action_keyword"
	ModConnectKw       = "connect_keyword"
	ModEventOccur      = "event_occurrence"
	ModRefBehavioralKw = "ref_behavioral_keyword"
)

// Event is one occurrence pulled from a Parser. Only the fields relevant to
// Kind are populated; the rest are zero values.
type Event struct {
	Kind     EventKind
	Location model.Location

	NodeKind model.NodeKind
	Name     string
	HasName  bool

	Ref        model.QualifiedRef
	Conjugated bool

	RelKind RelationshipKindHint
	Source  model.QualifiedRef
	Target  model.QualifiedRef

	ImportKind model.ImportKind
	Visibility model.Visibility

	AliasName string

	Modifier  string
	Direction model.Direction

	Text string

	MultLower, MultUpper string
	DefaultHasKeyword    bool

	TriviaKind     model.TriviaKind
	BlankLineCount int

	StmtKind model.StatementKind
	Guard    string
	Payload  string

	MetaName  string
	MetaValue string

	Message string // for EventSyntaxError
}

// RelationshipKindHint is an alias of model.RelationshipKind; the two names
// denote the same type.
type RelationshipKindHint = model.RelationshipKind

// Source is pulled from one event at a time, mirroring sitter.QueryCursor's
// NextMatch. Next returns ok=false once the stream is exhausted.
type Source interface {
	Next() (Event, bool)
}
