package model

// NodeKind is the closed set of element kinds the semantic model can hold.
type NodeKind string

const (
	KindPackage        NodeKind = "Package"
	KindLibraryPackage NodeKind = "LibraryPackage"

	KindPartDef  NodeKind = "PartDef"
	KindPartUsage NodeKind = "PartUsage"

	KindActionDef   NodeKind = "ActionDef"
	KindActionUsage NodeKind = "ActionUsage"

	KindStateDef   NodeKind = "StateDef"
	KindStateUsage NodeKind = "StateUsage"

	KindPortDef   NodeKind = "PortDef"
	KindPortUsage NodeKind = "PortUsage"

	KindAttributeDef   NodeKind = "AttributeDef"
	KindAttributeUsage NodeKind = "AttributeUsage"

	KindConstraintDef   NodeKind = "ConstraintDef"
	KindConstraintUsage NodeKind = "ConstraintUsage"

	KindRequirementDef   NodeKind = "RequirementDef"
	KindRequirementUsage NodeKind = "RequirementUsage"

	KindConnectionDef   NodeKind = "ConnectionDef"
	KindConnectionUsage NodeKind = "ConnectionUsage"

	KindInterfaceDef   NodeKind = "InterfaceDef"
	KindInterfaceUsage NodeKind = "InterfaceUsage"

	KindItemDef   NodeKind = "ItemDef"
	KindItemUsage NodeKind = "ItemUsage"

	KindOccurrenceDef   NodeKind = "OccurrenceDef"
	KindOccurrenceUsage NodeKind = "OccurrenceUsage"

	KindCalcDef          NodeKind = "CalcDef"
	KindUseCaseDef       NodeKind = "UseCaseDef"
	KindVerificationDef  NodeKind = "VerificationDef"
	KindViewpointDef     NodeKind = "ViewpointDef"
	KindAllocationDef    NodeKind = "AllocationDef"
	KindAllocationUsage  NodeKind = "AllocationUsage"
	KindEnumerationDef   NodeKind = "EnumerationDef"
	KindEnumerationUsage NodeKind = "EnumerationUsage"

	KindEndFeature         NodeKind = "EndFeature"
	KindEventUsage         NodeKind = "EventUsage"
	KindPortionUsage       NodeKind = "PortionUsage"
	KindPerformActionUsage NodeKind = "PerformActionUsage"
	KindMetadataDef        NodeKind = "MetadataDef"
)

var packageKinds = map[NodeKind]bool{
	KindPackage:        true,
	KindLibraryPackage: true,
}

var definitionKinds = map[NodeKind]bool{
	KindPartDef: true, KindActionDef: true, KindStateDef: true,
	KindPortDef: true, KindAttributeDef: true, KindConstraintDef: true,
	KindRequirementDef: true, KindConnectionDef: true, KindInterfaceDef: true,
	KindItemDef: true, KindOccurrenceDef: true, KindCalcDef: true,
	KindUseCaseDef: true, KindVerificationDef: true, KindViewpointDef: true,
	KindAllocationDef: true, KindEnumerationDef: true, KindMetadataDef: true,
}

var usageKinds = map[NodeKind]bool{
	KindPartUsage: true, KindActionUsage: true, KindStateUsage: true,
	KindPortUsage: true, KindAttributeUsage: true, KindConstraintUsage: true,
	KindRequirementUsage: true, KindConnectionUsage: true, KindInterfaceUsage: true,
	KindItemUsage: true, KindOccurrenceUsage: true, KindAllocationUsage: true,
	KindEnumerationUsage: true, KindEndFeature: true, KindEventUsage: true,
	KindPortionUsage: true, KindPerformActionUsage: true,
}

// IsPackage reports whether kind denotes a package-like scope element.
func (k NodeKind) IsPackage() bool { return packageKinds[k] }

// IsDefinition reports whether kind introduces a new type-level element.
func (k NodeKind) IsDefinition() bool { return definitionKinds[k] }

// IsUsage reports whether kind is an occurrence bound to a definition.
func (k NodeKind) IsUsage() bool { return usageKinds[k] }

// RelationshipKind is the closed set of independent edge kinds.
type RelationshipKind string

const (
	RelSpecialization RelationshipKind = "Specialization"
	RelRedefinition   RelationshipKind = "Redefinition"
	RelReference      RelationshipKind = "Reference"
	RelConnection     RelationshipKind = "Connection"
	RelFlow           RelationshipKind = "Flow"
	RelAllocation     RelationshipKind = "Allocation"
	RelSatisfy        RelationshipKind = "Satisfy"
	RelInclude        RelationshipKind = "Include"
)

// IsRelationship always reports true for a RelationshipKind value; it exists
// as a classifier alongside Node's predicates so callers that hold a kind of
// either family can ask "is this a relationship" uniformly.
func (k RelationshipKind) IsRelationship() bool { return true }

// ImportKind distinguishes the three import forms the query grammar mirrors.
type ImportKind string

const (
	ImportSingle    ImportKind = "single"    // pkg::Name
	ImportWildcard  ImportKind = "wildcard"  // pkg::*
	ImportRecursive ImportKind = "recursive" // pkg::**
)

// Visibility is the four-way visibility a Node or Import may carry.
type Visibility string

const (
	VisibilityDefault   Visibility = ""
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityProtected Visibility = "protected"
)

// ImportVisibility is the binary visibility an Import carries.
type ImportVisibility string

const (
	ImportPrivate        ImportVisibility = "private"
	ImportExplicitPublic ImportVisibility = "public"
)

// Direction is the parameter/feature direction usages may carry; definitions
// never print one.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionIn    Direction = "in"
	DirectionOut   Direction = "out"
	DirectionInout Direction = "inout"
)

// PortionKind distinguishes snapshot/timeslice portion usages.
type PortionKind string

const (
	PortionNone      PortionKind = ""
	PortionSnapshot  PortionKind = "snapshot"
	PortionTimeslice PortionKind = "timeslice"
)

// StatementKind is the closed set of body-statement variants.
type StatementKind string

const (
	StmtBind            StatementKind = "bind"
	StmtConnect         StatementKind = "connect"
	StmtFlow            StatementKind = "flow"
	StmtAllocate        StatementKind = "allocate"
	StmtSuccession      StatementKind = "succession"
	StmtEntry           StatementKind = "entry"
	StmtExit            StatementKind = "exit"
	StmtDo              StatementKind = "do"
	StmtTransition      StatementKind = "transition"
	StmtAccept          StatementKind = "accept"
	StmtSend            StatementKind = "send"
	StmtAssign          StatementKind = "assign"
	StmtIf              StatementKind = "if"
	StmtWhile           StatementKind = "while"
	StmtFor             StatementKind = "for"
	StmtLoop            StatementKind = "loop"
	StmtTerminate       StatementKind = "terminate"
	StmtMerge           StatementKind = "merge"
	StmtDecide          StatementKind = "decide"
	StmtJoin            StatementKind = "join"
	StmtFork            StatementKind = "fork"
	StmtFirst           StatementKind = "first"
	StmtThen            StatementKind = "then"
	StmtResultExpr      StatementKind = "result_expr"
	StmtMetadataUsage   StatementKind = "metadata_usage"
	StmtShorthandFeature StatementKind = "shorthand_feature"
	StmtRequire         StatementKind = "require"
	StmtAssume          StatementKind = "assume"
	StmtSubject         StatementKind = "subject"
	StmtEndMember       StatementKind = "end_member"
	StmtReturn          StatementKind = "return"
	StmtActor           StatementKind = "actor"
	StmtStakeholder     StatementKind = "stakeholder"
	StmtObjective       StatementKind = "objective"
	StmtFrame           StatementKind = "frame"
	StmtSatisfy         StatementKind = "satisfy"
	StmtInclude         StatementKind = "include"
	StmtExpose          StatementKind = "expose"
	StmtRender          StatementKind = "render"
	StmtVerify          StatementKind = "verify"
)

// TriviaKind is the closed set of trivia variants.
type TriviaKind string

const (
	TriviaLineComment    TriviaKind = "line"
	TriviaBlockComment   TriviaKind = "block"
	TriviaRegularComment TriviaKind = "regular"
	TriviaBlankLine      TriviaKind = "blank"
)
