package build

import (
	"github.com/viant/sysml/model"
	"github.com/viant/sysml/parse"
)

// Apply consumes one pulled Event, driving the same Context operations a
// caller could invoke directly. It lets any parse.Source — not just the
// recursive-descent Parser in this package's sibling parse package — drive
// a Context, matching the pull-based event contract the rest of this module
// is built against.
//
// Two different nodes are "current" at any point in the stream: lastBuiltID
// is the node BuildNode most recently produced (the target of typed_by,
// specializes, multiplicity, connector part — anything describing the node
// itself, emitted before its body, if any, is entered), while scopeNode is
// the node currently open on the scope stack (the target of doc, named
// comments, body statements — anything written inside a node's body,
// attaching to the enclosing node rather than to whatever sibling was last
// built inside it).
func (c *Context) Apply(ev parse.Event) {
	scopeNode, _ := c.CurrentScope()

	switch ev.Kind {
	case parse.EventEnterScope:
		c.PushScope(c.lastBuiltID)
	case parse.EventLeaveScope:
		c.PopScope()
	case parse.EventCreateNode:
		c.BuildNode(ev.NodeKind, ev.Name, ev.HasName, ev.Location)
	case parse.EventAddElement:
		// no-op under direct dispatch: BuildNode already adds the node.
	case parse.EventAttachTyped:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.AddTypedBy(n, ev.Ref, ev.Conjugated)
		}
	case parse.EventAttachSpecializes:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.AddSpecializes(n, ev.Ref)
		}
	case parse.EventAttachRedefines:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.AddRedefines(n, ev.Ref)
		}
	case parse.EventAttachReferences:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.AddReferences(n, ev.Ref)
		}
	case parse.EventAttachMultiplicity:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			n.Multiplicity = &model.Multiplicity{Lower: ev.MultLower, Upper: ev.MultUpper}
		}
	case parse.EventAttachDefault:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			n.Default = &model.DefaultValue{Expr: ev.Text, HasKeyword: ev.DefaultHasKeyword}
		}
	case parse.EventAttachModifier:
		if ev.Modifier == parse.ModRefBehavioralKw {
			c.CaptureRefBehavioralKeyword(ev.Text)
		} else {
			c.applyModifier(ev.Modifier)
		}
	case parse.EventAttachDirection:
		c.CaptureDirection(ev.Direction)
	case parse.EventAttachVisibility:
		c.CaptureVisibility(ev.Visibility)
	case parse.EventAttachPortionKind:
		switch ev.Text {
		case "snapshot":
			c.CapturePortionKind(model.PortionSnapshot)
		case "timeslice":
			c.CapturePortionKind(model.PortionTimeslice)
		}
	case parse.EventAttachConnectorPart:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.SetConnectorPart(n, ev.Text)
		}
	case parse.EventAttachParamList:
		if n, ok := c.model.ElementByID(c.lastBuiltID); ok {
			c.SetParamList(n, ev.Text)
		}
	case parse.EventAttachDoc:
		c.SetDoc(scopeNode, &model.Documentation{Text: ev.Text, Location: ev.Location})
	case parse.EventAttachNamedComment:
		c.AddNamedComment(scopeNode, &model.NamedComment{Name: ev.Name, Text: ev.Text, Location: ev.Location})
	case parse.EventAttachTextualRepresentation:
		c.AddTextualRepresentation(scopeNode, &model.TextualRepresentation{Name: ev.Name, Language: ev.MetaValue, Text: ev.Text, Location: ev.Location})
	case parse.EventAttachResultExpression:
		c.SetResultExpression(scopeNode, &model.Statement{Kind: ev.StmtKind, RawText: ev.Text, Location: ev.Location})
	case parse.EventAttachTrailingTrivia:
		c.SetTrailingTrivia(scopeNode, &model.Trivia{Kind: ev.TriviaKind, Text: ev.Text, BlankLineCount: ev.BlankLineCount, Location: ev.Location})
	case parse.EventEmitRelationship:
		c.AddRelationship(ev.RelKind, ev.Source, ev.Target, ev.Location)
	case parse.EventAddImport:
		c.AddImport(ev.ImportKind, ev.Target, model.ImportVisibility(ev.Visibility), ev.Location)
	case parse.EventAddAlias:
		c.AddAlias(ev.AliasName, ev.Target, ev.Location)
	case parse.EventAppendTrivia:
		c.AppendTrivia(&model.Trivia{Kind: ev.TriviaKind, Text: ev.Text, BlankLineCount: ev.BlankLineCount, Location: ev.Location})
	case parse.EventStartMetadata:
		c.StartMetadata(ev.Ref, ev.Location)
	case parse.EventMetadataFeature:
		c.CurrentMetadataAddFeature(ev.MetaName, ev.MetaValue)
	case parse.EventMetadataAbout:
		c.AddMetadataAbout(ev.Target)
	case parse.EventEndMetadataPrefix:
		c.EndMetadataAsPending()
	case parse.EventEndMetadataApplied:
		c.EndMetadataAsApplied(scopeNode)
	case parse.EventAddPrefixMetadataRef:
		c.CapturePrefixMetadataRef(ev.Ref)
	case parse.EventAddBodyStatement:
		c.AddBodyStatement(scopeNode, &model.Statement{
			Kind: ev.StmtKind, Source: ev.Source, Target: ev.Target, Guard: ev.Guard,
			Payload: ev.Payload, RawText: ev.Text, Location: ev.Location,
		})
	case parse.EventSyntaxError, parse.EventEOF:
		// carries no model mutation; the caller inspects ev.Message directly.
	}
}

func (c *Context) applyModifier(name string) {
	switch name {
	case parse.ModAbstract:
		c.CaptureAbstract()
	case parse.ModVariation:
		c.CaptureVariation()
	case parse.ModReadonly:
		c.CaptureReadonly()
	case parse.ModDerived:
		c.CaptureDerived()
	case parse.ModConstant:
		c.CaptureConstant()
	case parse.ModRef:
		c.CaptureRefKeyword()
	case parse.ModEnd:
		c.CaptureEnd()
	case parse.ModParallel:
		c.CaptureParallel()
	case parse.ModExhibit:
		c.CaptureExhibit()
	case parse.ModAsserted:
		c.CaptureAsserted(false)
	case parse.ModNegated:
		c.CaptureAsserted(true)
	case parse.ModStdLib:
		c.CaptureStandardLibrary()
	case parse.ModEnumKw:
		c.CaptureEnumKeyword()
	case parse.ModActionKw:
		c.CaptureActionKeyword()
	case parse.ModConnectKw:
		c.CaptureConnectKeyword()
	case parse.ModEventOccur:
		c.CaptureEventOccurrence()
	}
}
