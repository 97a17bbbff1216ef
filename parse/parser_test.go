package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sysml/model"
	"github.com/viant/sysml/parse"
)

func drain(t *testing.T, src string) []parse.Event {
	t.Helper()
	source, errs := parse.Parse([]byte(src), "t.sysml")
	assert.Empty(t, errs)
	var events []parse.Event
	for {
		ev, ok := source.Next()
		if !ok {
			break
		}
		events = append(events, ev)
	}
	return events
}

func findFirst(events []parse.Event, kind parse.EventKind) (parse.Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return parse.Event{}, false
}

func TestParser_PackageWithPartDef(t *testing.T) {
	events := drain(t, `package Vehicles {
		part def Engine;
	}`)

	create, ok := findFirst(events, parse.EventCreateNode)
	require.True(t, ok)
	assert.Equal(t, model.KindPackage, create.NodeKind)
	assert.Equal(t, "Vehicles", create.Name)

	found := false
	for _, ev := range events {
		if ev.Kind == parse.EventCreateNode && ev.NodeKind == model.KindPartDef {
			assert.Equal(t, "Engine", ev.Name)
			found = true
		}
	}
	assert.True(t, found)
}

func TestParser_PartUsageWithTypingAndMultiplicity(t *testing.T) {
	events := drain(t, `part engines : Engine[1..4];`)

	typed, ok := findFirst(events, parse.EventAttachTyped)
	require.True(t, ok)
	assert.Equal(t, model.QualifiedRef("Engine"), typed.Ref)

	mult, ok := findFirst(events, parse.EventAttachMultiplicity)
	require.True(t, ok)
	assert.Equal(t, "1", mult.MultLower)
	assert.Equal(t, "4", mult.MultUpper)
}

func TestParser_AbstractModifierAndSpecializes(t *testing.T) {
	events := drain(t, `abstract part def Vehicle :> Thing;`)

	mod, ok := findFirst(events, parse.EventAttachModifier)
	require.True(t, ok)
	assert.Equal(t, parse.ModAbstract, mod.Modifier)

	spec, ok := findFirst(events, parse.EventAttachSpecializes)
	require.True(t, ok)
	assert.Equal(t, model.QualifiedRef("Thing"), spec.Ref)
}

func TestParser_ImportWildcardAndRecursive(t *testing.T) {
	events := drain(t, `
		import Vehicles::*;
		import Vehicles::**;
	`)
	var kinds []model.ImportKind
	for _, ev := range events {
		if ev.Kind == parse.EventAddImport {
			kinds = append(kinds, ev.ImportKind)
		}
	}
	require.Len(t, kinds, 2)
	assert.Equal(t, model.ImportWildcard, kinds[0])
	assert.Equal(t, model.ImportRecursive, kinds[1])
}

func TestParser_Alias(t *testing.T) {
	events := drain(t, `alias V for Vehicles::Vehicle;`)
	ev, ok := findFirst(events, parse.EventAddAlias)
	require.True(t, ok)
	assert.Equal(t, "V", ev.AliasName)
	assert.Equal(t, model.QualifiedRef("Vehicles::Vehicle"), ev.Target)
}

func TestParser_ConjugatedTypedBy(t *testing.T) {
	events := drain(t, `port p : ~EnginePort;`)
	ev, ok := findFirst(events, parse.EventAttachTyped)
	require.True(t, ok)
	assert.True(t, ev.Conjugated)
	assert.Equal(t, model.QualifiedRef("EnginePort"), ev.Ref)
}

func TestParser_DocCommentRep(t *testing.T) {
	events := drain(t, `part def Engine {
		doc /* the main engine */
		comment /* a remark */
		rep spec language "text" /* formula */
	}`)

	doc, ok := findFirst(events, parse.EventAttachDoc)
	require.True(t, ok)
	assert.Equal(t, "the main engine", doc.Text)

	nc, ok := findFirst(events, parse.EventAttachNamedComment)
	require.True(t, ok)
	assert.Equal(t, "a remark", nc.Text)

	rep, ok := findFirst(events, parse.EventAttachTextualRepresentation)
	require.True(t, ok)
	assert.Equal(t, "spec", rep.Name)
	assert.Equal(t, "text", rep.MetaValue)
	assert.Equal(t, "formula", rep.Text)
}

func TestParser_MetadataPrefixVsApplied(t *testing.T) {
	events := drain(t, `
		#Priority
		part def Engine {
			@Tag;
		}
	`)

	var endEvents []parse.EventKind
	for _, ev := range events {
		if ev.Kind == parse.EventEndMetadataPrefix || ev.Kind == parse.EventEndMetadataApplied {
			endEvents = append(endEvents, ev.Kind)
		}
	}
	require.Len(t, endEvents, 2)
	assert.Equal(t, parse.EventEndMetadataPrefix, endEvents[0])
	assert.Equal(t, parse.EventEndMetadataApplied, endEvents[1])
}

func TestParser_ConnectUsage(t *testing.T) {
	events := drain(t, `connect engineToBody connect p1 to p2;`)
	conn, ok := findFirst(events, parse.EventAttachConnectorPart)
	require.True(t, ok)
	assert.Contains(t, conn.Text, "p1")
	assert.Contains(t, conn.Text, "p2")
}

func TestParser_BodyStatementBind(t *testing.T) {
	events := drain(t, `part def Engine {
		bind p1 = p2;
	}`)
	stmt, ok := findFirst(events, parse.EventAddBodyStatement)
	require.True(t, ok)
	assert.Equal(t, model.StmtBind, stmt.StmtKind)
	assert.Equal(t, model.QualifiedRef("p1"), stmt.Source)
	assert.Equal(t, model.QualifiedRef("p2"), stmt.Target)
}

func TestParser_BlankLineAndCommentTrivia(t *testing.T) {
	events := drain(t, "part def A;\n\n\n// a note\npart def B;")

	var trivia []parse.Event
	for _, ev := range events {
		if ev.Kind == parse.EventAppendTrivia {
			trivia = append(trivia, ev)
		}
	}
	require.Len(t, trivia, 2)
	assert.Equal(t, model.TriviaBlankLine, trivia[0].TriviaKind)
	assert.Equal(t, 2, trivia[0].BlankLineCount)
	assert.Equal(t, model.TriviaLineComment, trivia[1].TriviaKind)
	assert.Equal(t, "a note", trivia[1].Text)
}

func TestParser_EndFeature(t *testing.T) {
	events := drain(t, `connection def Link { end : Port; }`)
	ev, ok := findFirst(events, parse.EventCreateNode)
	require.True(t, ok)
	assert.Equal(t, model.KindConnectionDef, ev.NodeKind)

	var endKind model.NodeKind
	for _, e := range events {
		if e.Kind == parse.EventCreateNode && e.NodeKind == model.KindEndFeature {
			endKind = e.NodeKind
		}
	}
	assert.Equal(t, model.KindEndFeature, endKind)
}

func TestParser_RefBehavioralKeyword(t *testing.T) {
	events := drain(t, `ref flow myFlow;`)

	mod, ok := findFirst(events, parse.EventAttachModifier)
	require.True(t, ok)
	assert.Equal(t, parse.ModRef, mod.Modifier)

	var behavioral parse.Event
	found := false
	for _, ev := range events {
		if ev.Kind == parse.EventAttachModifier && ev.Modifier == parse.ModRefBehavioralKw {
			behavioral = ev
			found = true
		}
	}
	require.True(t, found)
	assert.Equal(t, "flow", behavioral.Text)

	create, ok := findFirst(events, parse.EventCreateNode)
	require.True(t, ok)
	assert.Equal(t, model.KindOccurrenceUsage, create.NodeKind)
	assert.Equal(t, "myFlow", create.Name)
}
