// Package build implements the event-driven assembly side of the module: a
// Context accumulates pending one-shot fields (modifiers, multiplicity,
// trivia, prefix metadata) and drains them atomically into each Node as it
// is built, mirroring how the teacher's coder.go assembles a struct's
// fields incrementally before emitting the finished declaration.
package build

import (
	"fmt"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/diag"
	"github.com/viant/sysml/model"
)

// Context is the single build-time collaborator a parser drives to turn
// recognized constructs into model.SemanticModel content. It owns id
// generation, scope tracking, and the pending-slot bookkeeping described in
// pending.go.
type Context struct {
	intern *arena.Intern
	model  *model.SemanticModel
	diag   *diag.Collector

	scopes []string

	anonCounter int
	relCounter  int

	pending pending

	currentMetadata *model.MetadataUsage

	// lastBuiltID is the id of the most recent node BuildNode produced,
	// consulted by Apply's EventEnterScope handler (driving a Context from
	// a parse.Source has no other way to name "the node just created").
	lastBuiltID string

	finalized bool
}

// New creates a Context that assembles into model, interning identifiers
// through intern and reporting problems through collector.
func New(intern *arena.Intern, sm *model.SemanticModel, collector *diag.Collector) *Context {
	return &Context{intern: intern, model: sm, diag: collector}
}

// Model returns the in-progress model, usable before Finalize for read-only
// inspection (e.g. resolving a forward reference within the same file).
func (c *Context) Model() *model.SemanticModel { return c.model }

// PushScope enters id as the current scope; nodes built while it is active
// are parented to it and their ids are qualified beneath it.
func (c *Context) PushScope(id string) {
	c.scopes = append(c.scopes, id)
}

// PopScope leaves the innermost active scope. Popping with no active scope
// is a no-op; callers are expected to balance Push/Pop themselves, but a
// malformed or error-recovered parse must not panic.
func (c *Context) PopScope() {
	if len(c.scopes) == 0 {
		return
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// CurrentScope returns the innermost active scope id, or ("", false) at the
// root.
func (c *Context) CurrentScope() (string, bool) {
	if len(c.scopes) == 0 {
		return "", false
	}
	return c.scopes[len(c.scopes)-1], true
}

func (c *Context) intern1(s string) string {
	if c.intern == nil {
		return s
	}
	return c.intern.InternString(s)
}

// MakeID computes the fully-qualified id for a node about to be built: the
// current scope joined with name by "::", or a synthesized anonymous id
// (scoped the same way) when hasName is false.
func (c *Context) MakeID(name string, hasName bool) string {
	scope, hasScope := c.CurrentScope()
	if !hasName {
		c.anonCounter++
		local := fmt.Sprintf("_anon_%d", c.anonCounter)
		if hasScope {
			return c.intern1(scope + "::" + local)
		}
		return c.intern1(local)
	}
	if hasScope {
		return c.intern1(scope + "::" + name)
	}
	return c.intern1(name)
}

// MakeRelID computes a synthesized id for a Relationship, tagged with kind
// so ids from different relationship kinds never collide.
func (c *Context) MakeRelID(kindTag string) string {
	scope, hasScope := c.CurrentScope()
	c.relCounter++
	local := fmt.Sprintf("_%s_%d", kindTag, c.relCounter)
	if hasScope {
		return c.intern1(scope + "::" + local)
	}
	return c.intern1(local)
}

// BuildNode creates a Node of kind/name at loc, draining every pending slot
// onto it (modifiers, multiplicity, default, prefix metadata, leading
// trivia), parenting it to the current scope, and adding it to the model.
// It returns the node so the caller can PushScope(node.ID) for a
// body-bearing construct.
func (c *Context) BuildNode(kind model.NodeKind, name string, hasName bool, loc model.Location) *model.Node {
	id := c.MakeID(name, hasName)
	n := &model.Node{
		ID:       id,
		Kind:     kind,
		Name:     name,
		HasName:  hasName,
		Location: loc,
	}
	if scope, hasScope := c.CurrentScope(); hasScope {
		n.ParentID = scope
		n.HasParent = true
	}

	p := c.pending.drain()
	n.Abstract = p.abstract
	n.Variation = p.variation
	n.Readonly = p.readonly
	n.Derived = p.derived
	n.Constant = p.constant
	n.Ref = p.ref
	n.End = p.end
	n.Parallel = p.parallel
	n.Exhibit = p.exhibit
	n.Asserted = p.asserted
	n.Negated = p.negated
	n.IsStandardLibrary = p.isStandardLibrary
	n.HasEnumKeyword = p.hasEnumKeyword
	n.HasActionKeyword = p.hasActionKeyword
	n.HasConnectKeyword = p.hasConnectKeyword
	n.IsEventOccurrence = p.isEventOccurrence
	n.PortionKind = p.portionKind
	n.RefBehavioralKeyword = p.refBehavioralKeyword
	n.HasRefBehavioralKeyword = p.hasRefBehavioralKeyword
	n.Direction = p.direction
	n.Visibility = p.visibility
	if p.hasMultiplicity {
		n.Multiplicity = &model.Multiplicity{Lower: p.multLower, Upper: p.multUpper}
	}
	if p.hasDefault {
		n.Default = &model.DefaultValue{Expr: p.defaultExpr, HasKeyword: p.hasDefaultKeyword}
	}
	n.PrefixMetadata = p.prefixMetadataRefs
	n.PrefixAppliedMetadata = p.prefixAppliedMetadata
	n.LeadingTrivia = p.triviaHead

	c.model.AddElement(n)
	c.lastBuiltID = n.ID
	return n
}

// AddTypedBy attaches a typing relation directly to an already-built node.
func (c *Context) AddTypedBy(n *model.Node, ref model.QualifiedRef, conjugated bool) {
	n.TypedBy = append(n.TypedBy, model.TypedRef{Ref: ref, Conjugated: conjugated})
}

// AddSpecializes attaches a `:>`/`specializes` relation to n.
func (c *Context) AddSpecializes(n *model.Node, ref model.QualifiedRef) {
	n.Specializes = append(n.Specializes, ref)
}

// AddRedefines attaches a `:>>`/`redefines` relation to n.
func (c *Context) AddRedefines(n *model.Node, ref model.QualifiedRef) {
	n.Redefines = append(n.Redefines, ref)
}

// AddReferences attaches a `::>`/`references` relation to n.
func (c *Context) AddReferences(n *model.Node, ref model.QualifiedRef) {
	n.References = append(n.References, ref)
}

// AddRelationship creates and adds an independent edge element (one not
// owned by a node's own field), synthesizing its id via MakeRelID.
func (c *Context) AddRelationship(kind model.RelationshipKind, source, target model.QualifiedRef, loc model.Location) *model.Relationship {
	rel := &model.Relationship{ID: c.MakeRelID(string(kind)), Kind: kind, Source: source, Target: target, Location: loc}
	c.model.AddRelationship(rel)
	return rel
}

// AddImport adds an import declaration owned by the current scope.
func (c *Context) AddImport(kind model.ImportKind, target model.QualifiedRef, visibility model.ImportVisibility, loc model.Location) *model.Import {
	scope, hasScope := c.CurrentScope()
	imp := &model.Import{Kind: kind, Target: target, OwnerScope: scope, HasOwner: hasScope, Visibility: visibility, Location: loc}
	c.model.AddImport(imp)
	return imp
}

// AddAlias adds an alias declaration owned by the current scope.
func (c *Context) AddAlias(name string, target model.QualifiedRef, loc model.Location) *model.Alias {
	scope, hasScope := c.CurrentScope()
	a := &model.Alias{Name: name, Target: target, OwnerScope: scope, HasOwner: hasScope, Location: loc}
	c.model.AddAlias(a)
	return a
}

// --- pending-slot captures -------------------------------------------------
// Each Capture* call writes into exactly one pending slot; BuildNode drains
// the whole set atomically, so a modifier captured for one node can never
// leak onto the next.

func (c *Context) CaptureAbstract()  { c.pending.abstract = true }
func (c *Context) CaptureVariation() { c.pending.variation = true }
func (c *Context) CaptureReadonly()  { c.pending.readonly = true }
func (c *Context) CaptureDerived()   { c.pending.derived = true }
func (c *Context) CaptureConstant()  { c.pending.constant = true }
func (c *Context) CaptureRefKeyword() { c.pending.ref = true }
func (c *Context) CaptureEnd()       { c.pending.end = true }
func (c *Context) CaptureParallel()  { c.pending.parallel = true }
func (c *Context) CaptureExhibit()   { c.pending.exhibit = true }
func (c *Context) CaptureStandardLibrary() { c.pending.isStandardLibrary = true }
func (c *Context) CaptureEnumKeyword()     { c.pending.hasEnumKeyword = true }
func (c *Context) CaptureActionKeyword()   { c.pending.hasActionKeyword = true }
func (c *Context) CaptureConnectKeyword()  { c.pending.hasConnectKeyword = true }
func (c *Context) CaptureEventOccurrence() { c.pending.isEventOccurrence = true }

func (c *Context) CaptureAsserted(negated bool) {
	c.pending.asserted = true
	c.pending.negated = negated
}

func (c *Context) CaptureRefBehavioralKeyword(keyword string) {
	c.pending.refBehavioralKeyword = keyword
	c.pending.hasRefBehavioralKeyword = true
}

func (c *Context) CapturePortionKind(k model.PortionKind) { c.pending.portionKind = k }
func (c *Context) CaptureDirection(d model.Direction)     { c.pending.direction = d }
func (c *Context) CaptureVisibility(v model.Visibility)   { c.pending.visibility = v }

func (c *Context) CaptureMultiplicity(lower, upper string) {
	c.pending.hasMultiplicity = true
	c.pending.multLower = lower
	c.pending.multUpper = upper
}

func (c *Context) CaptureDefault(expr string, hasKeyword bool) {
	c.pending.hasDefault = true
	c.pending.defaultExpr = expr
	c.pending.hasDefaultKeyword = hasKeyword
}

func (c *Context) CapturePrefixMetadataRef(ref model.QualifiedRef) {
	c.pending.prefixMetadataRefs = append(c.pending.prefixMetadataRefs, ref)
}

// AppendTrivia accumulates a leading-trivia chain entry for the node the
// parser is about to build.
func (c *Context) AppendTrivia(t *model.Trivia) {
	c.pending.appendTrivia(t)
}

// ClearPending discards flag-like pending state without consuming the
// accumulating trivia/prefix-metadata chains, for use when a partially
// recognized construct is abandoned during error recovery.
func (c *Context) ClearPending() {
	c.pending.clearFlags()
}

// --- direct attachment to an already-built node ----------------------------
// These operate on nodes already added to the model (the enclosing scope of
// a body element), unlike the pending-slot captures above which apply only
// to the next node BuildNode produces.

func (c *Context) SetDoc(nodeID string, doc *model.Documentation) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.Doc = doc
	}
}

func (c *Context) AddNamedComment(nodeID string, nc *model.NamedComment) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.NamedComments = append(n.NamedComments, nc)
	}
}

func (c *Context) AddTextualRepresentation(nodeID string, tr *model.TextualRepresentation) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.TextualRepresentations = append(n.TextualRepresentations, tr)
	}
}

func (c *Context) SetResultExpression(nodeID string, stmt *model.Statement) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.ResultExpression = stmt
	}
}

func (c *Context) AddBodyStatement(nodeID string, stmt *model.Statement) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.BodyStatements = append(n.BodyStatements, stmt)
	}
}

func (c *Context) SetTrailingTrivia(nodeID string, t *model.Trivia) {
	if n, ok := c.model.ElementByID(nodeID); ok {
		n.TrailingTrivia = t
	}
}

func (c *Context) SetConnectorPart(n *model.Node, text string) {
	n.ConnectorPart = text
	n.HasConnectorPart = true
}

func (c *Context) SetParamList(n *model.Node, text string) {
	n.ParamList = text
	n.HasParamList = true
}

// Finalize returns the assembled model. The Context must not be used to
// build further nodes afterwards.
func (c *Context) Finalize() *model.SemanticModel {
	c.finalized = true
	return c.model
}
