package pipeline

import (
	"context"
	"fmt"

	"github.com/viant/afs"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/build"
	"github.com/viant/sysml/diag"
	"github.com/viant/sysml/model"
	"github.com/viant/sysml/query"
	"github.com/viant/sysml/resolve"
	"github.com/viant/sysml/write"
)

// Pipeline is one run's collaborators: an intern table and resolver shared
// across every file it loads, and the collector every stage reports
// through, per the single-threaded, no-shared-global-state resource model.
type Pipeline struct {
	cfg      Config
	fs       afs.Service
	intern   *arena.Intern
	resolver *resolve.Resolver
	collector *diag.Collector

	models []*model.SemanticModel
}

// New creates a Pipeline for cfg. fs may be nil to use afs's default
// service; passing a mem:// or test double lets callers drive the whole
// pipeline without touching disk.
func New(cfg Config, fs afs.Service) *Pipeline {
	if fs == nil {
		fs = afs.New()
	}
	intern := arena.NewIntern()
	collector := diag.NewCollector(cfg.MaxErrors, cfg.TreatWarningsAsErrors, cfg.Verbose)
	resolver := resolve.New(fs, intern, nil)
	resolver.Disabled = cfg.NoResolve
	resolver.Strict = cfg.StrictImports
	resolver.Verbose = cfg.Verbose
	for _, p := range cfg.LibraryPaths {
		resolver.AddPath(p)
	}
	resolver.AddPathsFromEnv("SYSML_PATH")

	return &Pipeline{cfg: cfg, fs: fs, intern: intern, resolver: resolver, collector: collector}
}

// Collector exposes the run's diagnostic collector, read after Run to
// report counts and compute the process exit code.
func (p *Pipeline) Collector() *diag.Collector { return p.collector }

// Config exposes the run's configuration, e.g. so the caller can check
// DryRun before persisting Run's output.
func (p *Pipeline) Config() Config { return p.cfg }

// Models exposes every model parsed this run, in input order.
func (p *Pipeline) Models() []*model.SemanticModel { return p.models }

// Run executes the full sequence: parse every configured input, resolve
// imports (unless disabled), apply a selection/mutation (unless neither is
// configured), then produce output in the configured format. It returns
// the rendered output per logical unit (one filtered model per input file
// for select/delete, the whole set of models otherwise) and stops early if
// the collector's ShouldStop crosses max_errors.
func (p *Pipeline) Run(ctx context.Context) ([]Output, error) {
	if err := p.parseInputs(ctx); err != nil {
		return nil, err
	}
	if p.collector.ShouldStop() {
		return nil, nil
	}

	if !p.cfg.NoResolve {
		p.resolver.PreloadLibraries(p.collector)
		for _, sm := range p.models {
			p.resolver.ResolveImports(sm, p.collector)
			if p.collector.ShouldStop() {
				return nil, nil
			}
		}
	}

	if p.cfg.ParseOnly {
		return nil, nil
	}

	if len(p.cfg.DeletePatterns) > 0 {
		p.applyDelete()
	}

	if len(p.cfg.SetFragments) > 0 {
		if err := p.applyUpserts(); err != nil {
			return nil, err
		}
	}

	if len(p.cfg.SelectPatterns) > 0 {
		return p.renderSelection(), nil
	}

	return p.renderAll(), nil
}

// Output is one rendered unit: a source name (for the sysml format, a file
// path to (over)write; for json, a logical document name) and its bytes.
type Output struct {
	Name string
	Data []byte
}

func (p *Pipeline) parseInputs(ctx context.Context) error {
	for _, in := range p.cfg.Inputs {
		if p.cfg.Recursive {
			p.resolver.DiscoverPackages(in, p.collector)
			continue
		}
		src, err := p.fs.DownloadWithURL(ctx, in)
		if err != nil {
			p.collector.Error(diag.CodeFileNotFound, in, 0, 0, "%v", err)
			continue
		}
		sm, parseErrs := resolve.Parse(p.intern, src, in)
		for _, msg := range parseErrs {
			p.collector.Error(diag.CodeSyntax, in, 0, 0, "%s", msg)
		}
		p.resolver.CacheModel(in, sm)
		p.models = append(p.models, sm)
	}
	if p.cfg.Recursive {
		p.models = append(p.models, p.resolver.GetAllModels()...)
	}
	return nil
}

func (p *Pipeline) applyDelete() {
	patterns := query.ParseMulti(p.cfg.DeletePatterns)
	result := query.Execute(patterns, p.models)
	ids := make(map[string]bool, len(result.Elements))
	for _, n := range result.Elements {
		ids[n.ID] = true
	}
	for _, sm := range p.models {
		build.Delete(sm, ids)
	}
}

func (p *Pipeline) applyUpserts() error {
	n := len(p.cfg.SetFragments)
	if len(p.cfg.SetTargets) != n {
		return fmt.Errorf("pipeline: set_fragments and set_targets must have the same length (%d != %d)", n, len(p.cfg.SetTargets))
	}
	if len(p.models) == 0 {
		return fmt.Errorf("pipeline: no model loaded to upsert into")
	}
	target := p.models[0]
	for i := 0; i < n; i++ {
		fragSM, errs := resolve.Parse(p.intern, []byte(p.cfg.SetFragments[i]), "<fragment>")
		for _, msg := range errs {
			p.collector.Error(diag.CodeSyntax, "<fragment>", 0, 0, "%s", msg)
		}
		_, _, err := build.Upsert(target, model.QualifiedRef(p.cfg.SetTargets[i]), p.cfg.CreateScope != "" || p.cfg.ReplaceScope, fragSM)
		if err != nil {
			if !p.cfg.ForceReplace {
				return fmt.Errorf("pipeline: upsert into %q: %w", p.cfg.SetTargets[i], err)
			}
			p.collector.Warning(diag.CodeDuplicateName, "", 0, 0, "%v", err)
		}
	}
	return nil
}

// renderSelection builds one filtered SemanticModel per source model,
// limited to that model's matched elements plus the stub scopes needed to
// keep the result structurally valid, and writes each one.
func (p *Pipeline) renderSelection() []Output {
	patterns := query.ParseMulti(p.cfg.SelectPatterns)
	result := query.Execute(patterns, p.models)
	ancestors := query.Ancestors(result)

	bySource := make(map[string][]*model.Node)
	for _, n := range result.Elements {
		bySource[sourceOf(p.models, n)] = append(bySource[sourceOf(p.models, n)], n)
	}

	var outputs []Output
	for _, sm := range p.models {
		nodes := bySource[sm.SourceName]
		if len(nodes) == 0 {
			continue
		}
		filtered := model.NewSemanticModel(sm.SourceName)
		stubbed := make(map[string]bool)
		for _, anc := range ancestors {
			if belongsTo(sm, anc) && !stubbed[anc] {
				filtered.AddElement(stubNode(anc))
				stubbed[anc] = true
			}
		}
		for _, n := range nodes {
			filtered.AddElement(n)
		}
		for _, rel := range result.Relationships {
			filtered.AddRelationship(rel)
		}
		for _, imp := range result.Imports {
			if imp.HasOwner && belongsTo(sm, imp.OwnerScope) {
				filtered.AddImport(imp)
			}
		}
		outputs = append(outputs, p.renderModel(filtered))
	}
	return outputs
}

func (p *Pipeline) renderAll() []Output {
	var outputs []Output
	for _, sm := range p.models {
		outputs = append(outputs, p.renderModel(sm))
	}
	return outputs
}

func (p *Pipeline) renderModel(sm *model.SemanticModel) Output {
	switch p.cfg.OutputFormat {
	case OutputJSON:
		data, err := write.JSON(sm)
		if err != nil {
			p.collector.Error(diag.CodeOutOfMemory, sm.SourceName, 0, 0, "%v", err)
			return Output{Name: sm.SourceName}
		}
		return Output{Name: sm.SourceName, Data: data}
	case OutputNone:
		return Output{Name: sm.SourceName}
	default:
		rendered := write.Model(sm)
		if p.cfg.Verbose {
			p.checkIdempotent(sm, rendered)
		}
		return Output{Name: sm.SourceName, Data: []byte(rendered)}
	}
}

// checkIdempotent reparses rendered and rewrites it, then compares a
// highwayhash of both renderings -- the round-trip self-check SPEC_FULL's
// DOMAIN STACK table commits to. Only run under -verbose, since it doubles
// the parse/write work per file; a mismatch is reported as an informational
// note rather than an error, since it reflects a writer defect rather than
// anything wrong with the input.
func (p *Pipeline) checkIdempotent(sm *model.SemanticModel, rendered string) {
	reparsed, errs := resolve.Parse(p.intern, []byte(rendered), sm.SourceName)
	if len(errs) > 0 {
		return
	}
	if !write.VerifyIdempotent(sm, reparsed) {
		p.collector.Info(sm.SourceName, 0, 0, "rewriting %s a second time did not reproduce identical output", sm.SourceName)
	}
}

func sourceOf(models []*model.SemanticModel, n *model.Node) string {
	for _, sm := range models {
		if _, ok := sm.ElementByID(n.ID); ok {
			return sm.SourceName
		}
	}
	return ""
}

func belongsTo(sm *model.SemanticModel, id string) bool {
	_, ok := sm.ElementByID(id)
	return ok
}

func stubNode(id string) *model.Node {
	name := id
	if idx := lastSep(id); idx >= 0 {
		name = id[idx+2:]
	}
	n := &model.Node{ID: id, Kind: model.KindPackage, Name: name, HasName: true}
	if parent, ok := query.ParentPath(id); ok {
		n.ParentID = parent
		n.HasParent = true
	}
	return n
}

func lastSep(id string) int {
	for i := len(id) - 2; i >= 0; i-- {
		if id[i] == ':' && id[i+1] == ':' {
			return i
		}
	}
	return -1
}
