package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/sysml/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

func TestPipeline_ParseAndWriteSysML(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles {
	part def Engine;
}`)

	cfg := pipeline.Config{Inputs: []string{f}, OutputFormat: pipeline.OutputSysML, NoResolve: true}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Contains(t, string(outputs[0].Data), "package Vehicles {")
	assert.Equal(t, 0, p.Collector().ErrorCount())
}

func TestPipeline_ParseOnlySkipsRendering(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles { part def Engine; }`)

	cfg := pipeline.Config{Inputs: []string{f}, ParseOnly: true, NoResolve: true}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outputs)
	require.Len(t, p.Models(), 1)
}

func TestPipeline_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles { part def Engine; }`)

	cfg := pipeline.Config{Inputs: []string{f}, OutputFormat: pipeline.OutputJSON, NoResolve: true}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Contains(t, string(outputs[0].Data), `"kind": "Package"`)
}

func TestPipeline_MissingFileReportsAndContinues(t *testing.T) {
	cfg := pipeline.Config{Inputs: []string{"/does/not/exist.sysml"}, NoResolve: true}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outputs)
	assert.Equal(t, 1, p.Collector().ErrorCount())
}

func TestPipeline_SelectPatternFiltersOutput(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles {
	part def Engine;
	part def Cylinder;
}`)

	cfg := pipeline.Config{
		Inputs:         []string{f},
		NoResolve:      true,
		OutputFormat:   pipeline.OutputSysML,
		SelectPatterns: []string{"Vehicles::Engine"},
	}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	out := string(outputs[0].Data)
	assert.Contains(t, out, "part def Engine;")
	assert.NotContains(t, out, "part def Cylinder;")
}

func TestPipeline_DeletePatternRemovesElement(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles {
	part def Engine;
	part def Cylinder;
}`)

	cfg := pipeline.Config{
		Inputs:         []string{f},
		NoResolve:      true,
		OutputFormat:   pipeline.OutputSysML,
		DeletePatterns: []string{"Vehicles::Cylinder"},
	}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	out := string(outputs[0].Data)
	assert.Contains(t, out, "part def Engine;")
	assert.NotContains(t, out, "part def Cylinder;")
}

func TestPipeline_UpsertInsertsFragmentAtScope(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles {
	part def Engine;
}`)

	cfg := pipeline.Config{
		Inputs:       []string{f},
		NoResolve:    true,
		OutputFormat: pipeline.OutputSysML,
		SetFragments: []string{`part def Turbo;`},
		SetTargets:   []string{"Vehicles"},
	}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)
	assert.Contains(t, string(outputs[0].Data), "part def Turbo;")
}

func TestPipeline_VerboseRunPassesIdempotenceCheck(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "vehicles.sysml", `package Vehicles {
	part def Engine;
}`)

	cfg := pipeline.Config{Inputs: []string{f}, OutputFormat: pipeline.OutputSysML, NoResolve: true, Verbose: true}
	p := pipeline.New(cfg, nil)
	outputs, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outputs, 1)

	for _, d := range p.Collector().Items() {
		assert.NotContains(t, d.Message, "did not reproduce identical output")
	}
}
