package write_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/resolve"
	"github.com/viant/sysml/write"
)

func roundTrip(t *testing.T, src string) string {
	t.Helper()
	intern := arena.NewIntern()
	sm, errs := resolve.Parse(intern, []byte(src), "t.sysml")
	require.Empty(t, errs)
	return write.Model(sm)
}

func TestWriter_PackageWithPartDef(t *testing.T) {
	out := roundTrip(t, `package Vehicles {
	part def Engine;
}`)
	assert.Contains(t, out, "package Vehicles {")
	assert.Contains(t, out, "part def Engine;")
}

func TestWriter_PartUsageWithTypingAndMultiplicity(t *testing.T) {
	out := roundTrip(t, `part engines : Engine[1..4];`)
	assert.Contains(t, out, "part engines : Engine [1..4];")
}

func TestWriter_Idempotent(t *testing.T) {
	src := `package Vehicles {
	doc /* a vehicle package */
	part def Engine {
		part cylinders : Cylinder[1..8];
	}
	part def Cylinder;
}`
	intern := arena.NewIntern()
	firstModel, errs := resolve.Parse(intern, []byte(src), "t.sysml")
	require.Empty(t, errs)
	first := write.Model(firstModel)

	secondModel, errs := resolve.Parse(intern, []byte(first), "t.sysml")
	require.Empty(t, errs)
	second := write.Model(secondModel)

	assert.Equal(t, first, second)
	assert.True(t, write.VerifyIdempotent(firstModel, secondModel))
}

func TestWriter_ImportsBeforeElements(t *testing.T) {
	out := roundTrip(t, `import Vehicles::*;
package Engines {
	part def Turbo;
}`)
	importIdx := strings.Index(out, "import Vehicles::*;")
	pkgIdx := strings.Index(out, "package Engines")
	require.NotEqual(t, -1, importIdx)
	require.NotEqual(t, -1, pkgIdx)
	assert.Less(t, importIdx, pkgIdx)
}

func TestWriter_QuotesReservedAndOddNames(t *testing.T) {
	out := roundTrip(t, `part 'part' : Engine;`)
	assert.Contains(t, out, "'part'")
}

func TestWriter_SpecializationAndRedefinition(t *testing.T) {
	out := roundTrip(t, `part def SportsEngine :> Engine;`)
	assert.Contains(t, out, "part def SportsEngine :> Engine;")

	out = roundTrip(t, `part x :>> database : PostgreSQL;`)
	assert.Contains(t, out, "part x :>> database : PostgreSQL;")
}

func TestWriter_AbstractAndVariationFlags(t *testing.T) {
	out := roundTrip(t, `abstract part def Vehicle;`)
	assert.Contains(t, out, "abstract part def Vehicle;")

	out = roundTrip(t, `variation part def V;`)
	assert.Contains(t, out, "variation part def V;")
}

func TestWriter_SuccessionShorthand(t *testing.T) {
	out := roundTrip(t, `action def Start {
	first start then stop;
}`)
	assert.Contains(t, out, "first start then stop;")
}

func TestWriter_EmptyBodyStatementOmitted(t *testing.T) {
	out := roundTrip(t, `action def Start {
	then;
}`)
	assert.NotContains(t, out, "then;")
}

func TestWriter_AliasRendersWithForKeyword(t *testing.T) {
	out := roundTrip(t, `alias Eng for Engine;`)
	assert.Contains(t, out, "alias Eng for Engine;")
}

func TestWriter_NamedCommentRoundTrips(t *testing.T) {
	out := roundTrip(t, `package Vehicles {
	comment MyNote /* a note about this package */
}`)
	assert.Contains(t, out, "comment MyNote")
	assert.Contains(t, out, "a note about this package")
}

func TestWriter_RefBehavioralKeywordEmittedOnce(t *testing.T) {
	out := roundTrip(t, `ref flow myFlow;`)
	assert.Contains(t, out, "ref flow myFlow;")
	assert.NotContains(t, out, "ref flow flow")
}
