package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/build"
	"github.com/viant/sysml/diag"
	"github.com/viant/sysml/model"
)

func newContext() *build.Context {
	sm := model.NewSemanticModel("t.sysml")
	return build.New(arena.NewIntern(), sm, diag.NewCollector(0, false, false))
}

func TestContext_MakeID(t *testing.T) {
	c := newContext()
	assert.Equal(t, "Foo", c.MakeID("Foo", true))

	c.PushScope("Pkg")
	assert.Equal(t, "Pkg::Bar", c.MakeID("Bar", true))
	anon := c.MakeID("", false)
	assert.Equal(t, "Pkg::_anon_1", anon)
	c.PopScope()

	assert.Equal(t, "_anon_2", c.MakeID("", false))
}

func TestContext_BuildNode_DrainsPendingAndClears(t *testing.T) {
	c := newContext()
	c.CaptureAbstract()
	c.CaptureMultiplicity("0", "1")
	c.CapturePrefixMetadataRef("Meta")

	n := c.BuildNode(model.KindPartDef, "P", true, model.Location{Offset: 10})
	require.NotNil(t, n)
	assert.True(t, n.Abstract)
	require.NotNil(t, n.Multiplicity)
	assert.Equal(t, "0", n.Multiplicity.Lower)
	assert.Equal(t, []model.QualifiedRef{"Meta"}, n.PrefixMetadata)

	// pending state must not leak onto the next node.
	n2 := c.BuildNode(model.KindPartDef, "Q", true, model.Location{Offset: 20})
	assert.False(t, n2.Abstract)
	assert.Nil(t, n2.Multiplicity)
	assert.Nil(t, n2.PrefixMetadata)
}

func TestContext_ScopingParentsNodes(t *testing.T) {
	c := newContext()
	pkg := c.BuildNode(model.KindPackage, "Pkg", true, model.Location{})
	c.PushScope(pkg.ID)
	child := c.BuildNode(model.KindPartDef, "Inner", true, model.Location{Offset: 5})
	c.PopScope()

	assert.True(t, child.HasParent)
	assert.Equal(t, pkg.ID, child.ParentID)
	assert.Equal(t, "Pkg::Inner", child.ID)
}

func TestContext_MetadataTwoPhase_Prefix(t *testing.T) {
	c := newContext()
	c.StartMetadata("Priority", model.Location{})
	c.CurrentMetadataAddFeature("value", "3")
	c.EndMetadataAsPending()

	n := c.BuildNode(model.KindPartUsage, "x", true, model.Location{})
	require.Len(t, n.PrefixAppliedMetadata, 1)
	assert.Equal(t, model.QualifiedRef("Priority"), n.PrefixAppliedMetadata[0].TypeRef)
	assert.Equal(t, "value", n.PrefixAppliedMetadata[0].Features[0].Name)
}

func TestContext_MetadataTwoPhase_Applied(t *testing.T) {
	c := newContext()
	n := c.BuildNode(model.KindPartUsage, "x", true, model.Location{})
	c.StartMetadata("Priority", model.Location{})
	c.AddMetadataAbout("x")
	c.EndMetadataAsApplied(n.ID)

	require.Len(t, n.AppliedMetadata, 1)
	assert.Equal(t, []model.QualifiedRef{"x"}, n.AppliedMetadata[0].About)
}

func TestContext_ClearPending_KeepsAccumulatingSlots(t *testing.T) {
	c := newContext()
	c.CaptureAbstract()
	c.CapturePrefixMetadataRef("Kept")
	c.ClearPending()

	n := c.BuildNode(model.KindPartDef, "P", true, model.Location{})
	assert.False(t, n.Abstract)
	assert.Equal(t, []model.QualifiedRef{"Kept"}, n.PrefixMetadata)
}

func TestContext_AddImportAndAlias_OwnedByScope(t *testing.T) {
	c := newContext()
	pkg := c.BuildNode(model.KindPackage, "Pkg", true, model.Location{})
	c.PushScope(pkg.ID)
	imp := c.AddImport(model.ImportWildcard, "Other::*", model.ImportPrivate, model.Location{})
	alias := c.AddAlias("A", "Other::Thing", model.Location{})
	c.PopScope()

	assert.True(t, imp.HasOwner)
	assert.Equal(t, pkg.ID, imp.OwnerScope)
	assert.True(t, alias.HasOwner)
	assert.Equal(t, pkg.ID, alias.OwnerScope)
}

func TestContext_AttachToExistingNode(t *testing.T) {
	c := newContext()
	n := c.BuildNode(model.KindPartDef, "P", true, model.Location{})
	c.SetDoc(n.ID, &model.Documentation{Text: "hello"})
	c.AddBodyStatement(n.ID, &model.Statement{Kind: model.StmtBind, RawText: "bind a = b;"})

	require.NotNil(t, n.Doc)
	assert.Equal(t, "hello", n.Doc.Text)
	require.Len(t, n.BodyStatements, 1)
	assert.Equal(t, model.StmtBind, n.BodyStatements[0].Kind)
}

func TestContext_Finalize(t *testing.T) {
	c := newContext()
	c.BuildNode(model.KindPackage, "Pkg", true, model.Location{})
	sm := c.Finalize()
	require.Len(t, sm.Elements, 1)
}
