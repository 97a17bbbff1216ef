package resolve_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/viant/afs"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/diag"
	"github.com/viant/sysml/resolve"
)

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// multiFileLibrary is a small library tree encoded as a txtar archive, one
// file per archive section, so the fixture reads as a single literal
// instead of several separately-named string constants.
const multiFileLibrary = `
-- Vehicles.sysml --
package Vehicles {
	part def Engine;
}
-- Electronics.sysml --
package Electronics {
	import Vehicles::*;
	part def Controller :> Engine;
}
`

func TestResolver_TxtarFixture_ResolvesAcrossLibraryFiles(t *testing.T) {
	dir := t.TempDir()
	archive := txtar.Parse([]byte(multiFileLibrary))
	for _, f := range archive.Files {
		writeFile(t, dir, f.Name, string(f.Data))
	}

	intern := arena.NewIntern()
	r := resolve.New(afs.New(), intern, nil)
	r.AddPath(dir)

	entry, ok := r.FindFile("Electronics")
	require.True(t, ok)

	collector := diag.NewCollector(0, false, false)
	sm, errs := resolve.Parse(intern, mustRead(t, entry), entry)
	require.Empty(t, errs)
	r.CacheModel(entry, sm)
	r.ResolveImports(sm, collector)

	require.Empty(t, collector.Items())
	_, ok = r.FindFile("Vehicles::Engine")
	require.True(t, ok)
}
