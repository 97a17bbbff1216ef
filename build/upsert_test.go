package build_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sysml/build"
	"github.com/viant/sysml/model"
)

func fragmentWith(kind model.NodeKind, name string) *model.SemanticModel {
	sm := model.NewSemanticModel("fragment.sysml")
	sm.AddElement(&model.Node{ID: name, Kind: kind, Name: name, HasName: true})
	return sm
}

func TestUpsert_CreateScopeBuildsIntermediatePackages(t *testing.T) {
	target := model.NewSemanticModel("t.sysml")
	fragment := fragmentWith(model.KindPartUsage, "x")

	scopeID, created, err := build.Upsert(target, "A::B", true, fragment)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "A::B", scopeID)

	a, ok := target.ElementByID("A")
	require.True(t, ok)
	assert.Equal(t, model.KindPackage, a.Kind)

	b, ok := target.ElementByID("A::B")
	require.True(t, ok)
	assert.True(t, b.HasParent)
	assert.Equal(t, "A", b.ParentID)

	x, ok := target.ElementByID("A::B::x")
	require.True(t, ok)
	assert.Equal(t, "A::B", x.ParentID)
}

func TestUpsert_WithoutCreateScopeFailsOnMissingScope(t *testing.T) {
	target := model.NewSemanticModel("t.sysml")
	fragment := fragmentWith(model.KindPartUsage, "x")

	_, _, err := build.Upsert(target, "Missing", false, fragment)
	assert.Error(t, err)
}

func TestUpsert_IntoExistingScopeDoesNotRecreate(t *testing.T) {
	target := model.NewSemanticModel("t.sysml")
	target.AddElement(&model.Node{ID: "Pkg", Kind: model.KindPackage, Name: "Pkg", HasName: true})
	fragment := fragmentWith(model.KindPartUsage, "x")

	scopeID, created, err := build.Upsert(target, "Pkg", true, fragment)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Pkg", scopeID)
	assert.Len(t, target.Elements, 2)
}

func TestDelete_RemovesSubtreeAndOwnedImports(t *testing.T) {
	target := model.NewSemanticModel("t.sysml")
	target.AddElement(&model.Node{ID: "Pkg", Kind: model.KindPackage, Name: "Pkg", HasName: true})
	target.AddElement(&model.Node{ID: "Pkg::Child", Kind: model.KindPartUsage, Name: "Child", HasName: true, ParentID: "Pkg", HasParent: true})
	target.AddImport(&model.Import{Kind: model.ImportSingle, Target: "Other::X", OwnerScope: "Pkg::Child", HasOwner: true})

	removed := build.Delete(target, map[string]bool{"Pkg::Child": true})
	assert.Equal(t, 1, removed)
	assert.Len(t, target.Elements, 1)
	assert.Empty(t, target.Imports)
}

func TestDelete_EmptyScopeIsNoop(t *testing.T) {
	target := model.NewSemanticModel("t.sysml")
	removed := build.Delete(target, map[string]bool{"Nope": true})
	assert.Equal(t, 0, removed)
}
