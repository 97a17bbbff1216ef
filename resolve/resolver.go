// Package resolve implements the import resolver: recursive file
// discovery, a parse cache keyed by canonical path, cycle detection during
// import resolution, and a top-level-package index that lets findFile skip
// a directory walk once a package has been seen once. The walking and
// reading itself goes through afs.Service rather than os/filepath, the way
// the teacher's analyzer walks a source tree through the same abstraction
// (see Analyzer.analyzePackages), so the resolver can be driven against
// mem:// trees in tests without touching disk.
package resolve

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/viant/sysml/arena"
	"github.com/viant/sysml/build"
	"github.com/viant/sysml/diag"
	"github.com/viant/sysml/model"
	"github.com/viant/sysml/parse"
)

const (
	preloadWalkDepth = 10
	findFileDepth    = 5
)

// ParseFunc parses source bytes into a SemanticModel, sharing the caller's
// intern table so elements produced by different files can be compared and
// referenced across models. The default, Parse, drives parse.Parse through
// a build.Context.
type ParseFunc func(intern *arena.Intern, src []byte, sourceName string) (*model.SemanticModel, []string)

// Parse is the resolver's default ParseFunc: it runs the recursive-descent
// parser and feeds every event to a fresh build.Context.
func Parse(intern *arena.Intern, src []byte, sourceName string) (*model.SemanticModel, []string) {
	source, errs := parse.Parse(src, sourceName)
	sm := model.NewSemanticModel(sourceName)
	collector := diag.NewCollector(0, false, false)
	ctx := build.New(intern, sm, collector)
	for {
		ev, ok := source.Next()
		if !ok {
			break
		}
		ctx.Apply(ev)
	}
	ctx.Finalize()
	return sm, errs
}

// Resolver is the import resolver described by the specification: a vector
// of library search paths, a file cache keyed by canonical path, a
// resolution stack for cycle detection, and a package index.
type Resolver struct {
	fs     afs.Service
	intern *arena.Intern
	parse  ParseFunc

	Verbose  bool
	Disabled bool
	Strict   bool

	libraryPaths []string
	seenPaths    map[string]bool

	cache      map[string]*model.SemanticModel
	cacheOrder []string

	packageIndex map[string]string

	resolutionStack []string
	onStack         map[string]bool
}

// New creates a Resolver backed by fs, sharing intern with every model it
// parses. parseFn may be nil to use the package default, Parse.
func New(fs afs.Service, intern *arena.Intern, parseFn ParseFunc) *Resolver {
	if fs == nil {
		fs = afs.New()
	}
	if parseFn == nil {
		parseFn = Parse
	}
	return &Resolver{
		fs:           fs,
		intern:       intern,
		parse:        parseFn,
		seenPaths:    make(map[string]bool),
		cache:        make(map[string]*model.SemanticModel),
		packageIndex: make(map[string]string),
		onStack:      make(map[string]bool),
	}
}

// AddPath canonicalizes and appends a library search path, skipping
// duplicates.
func (r *Resolver) AddPath(libPath string) {
	canon := r.canonicalize(libPath)
	if r.seenPaths[canon] {
		return
	}
	r.seenPaths[canon] = true
	r.libraryPaths = append(r.libraryPaths, canon)
}

// AddPathsFromEnv splits the named environment variable on the platform
// path-list separator and adds each non-empty token as a library path.
func (r *Resolver) AddPathsFromEnv(name string) {
	val := os.Getenv(name)
	if val == "" {
		return
	}
	for _, tok := range strings.Split(val, string(os.PathListSeparator)) {
		if tok == "" {
			continue
		}
		r.AddPath(tok)
	}
}

// CacheModel canonicalizes path, upserts model into the cache, and indexes
// its top-level package with first-wins semantics: a later file claiming
// the same package name is reported (verbose only) but does not replace
// the earlier entry.
func (r *Resolver) CacheModel(filePath string, sm *model.SemanticModel) {
	canon := r.canonicalize(filePath)
	if _, exists := r.cache[canon]; !exists {
		r.cacheOrder = append(r.cacheOrder, canon)
	}
	r.cache[canon] = sm

	top := sm.TopLevelPackage()
	if top == nil || !top.HasName {
		return
	}
	if existing, ok := r.packageIndex[top.Name]; ok && existing != canon && r.Verbose {
		fmt.Fprintf(os.Stderr, "sysml: package %q already indexed at %s, ignoring %s\n", top.Name, existing, canon)
		return
	}
	if _, ok := r.packageIndex[top.Name]; !ok {
		r.packageIndex[top.Name] = canon
	}
}

// GetCached returns the cached model for path, canonicalized, if present.
func (r *Resolver) GetCached(filePath string) (*model.SemanticModel, bool) {
	sm, ok := r.cache[r.canonicalize(filePath)]
	return sm, ok
}

// FindFile locates the file backing an import target. The package name is
// the leading segment of importTarget before "::". Search order, first
// match wins: the package index, then a direct {lib}/{pkg}.kerml or
// {lib}/{pkg}.sysml per library path, then a bounded depth-5 recursive
// search of each library path for the same filenames.
func (r *Resolver) FindFile(importTarget model.QualifiedRef) (string, bool) {
	pkg := importTarget.FirstSegment()
	if pkg == "" {
		return "", false
	}
	if hit, ok := r.packageIndex[pkg]; ok {
		return hit, true
	}
	ctx := context.Background()
	for _, lib := range r.libraryPaths {
		for _, ext := range []string{".kerml", ".sysml"} {
			candidate := url.Join(lib, pkg+ext)
			if ok, _ := r.fs.Exists(ctx, candidate); ok {
				return r.canonicalize(candidate), true
			}
		}
	}
	for _, lib := range r.libraryPaths {
		if found, ok := r.searchDepth(ctx, lib, pkg, findFileDepth); ok {
			return found, true
		}
	}
	return "", false
}

func (r *Resolver) searchDepth(ctx context.Context, root, pkg string, maxDepth int) (string, bool) {
	targets := map[string]bool{pkg + ".kerml": true, pkg + ".sysml": true}
	var found string
	visitor := storage.OnVisit(func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if found != "" {
			return false, nil
		}
		depth := strings.Count(strings.Trim(parent, "/"), "/")
		if info.IsDir() {
			return depth < maxDepth, nil
		}
		if targets[info.Name()] {
			found = url.Join(baseURL, path.Join(parent, info.Name()))
			return false, nil
		}
		return true, nil
	})
	_ = r.fs.Walk(ctx, root, visitor)
	if found == "" {
		return "", false
	}
	return r.canonicalize(found), true
}

// ResolveImports canonicalizes model's source, pushes it onto the
// resolution stack, and recursively resolves every import it declares. It
// is a no-op when the resolver is disabled.
func (r *Resolver) ResolveImports(sm *model.SemanticModel, collector *diag.Collector) {
	if r.Disabled {
		return
	}
	source := r.canonicalize(sm.SourceName)
	r.push(source)
	defer r.pop(source)

	for _, imp := range sm.Imports {
		if collector.ShouldStop() {
			return
		}
		r.resolveOne(imp, collector)
	}
}

func (r *Resolver) resolveOne(imp *model.Import, collector *diag.Collector) {
	filePath, ok := r.FindFile(imp.Target)
	if !ok {
		if r.Strict {
			collector.Error(diag.CodeImportNotFound, "", imp.Location.Line, imp.Location.Column,
				"import target not found: %s", imp.Target)
		}
		return
	}

	canon := r.canonicalize(filePath)
	if _, cached := r.cache[canon]; cached {
		return
	}
	if r.onStack[canon] {
		collector.Error(diag.CodeCircularImport, canon, imp.Location.Line, imp.Location.Column,
			"circular import resolving %s", imp.Target)
		return
	}

	r.push(canon)
	defer r.pop(canon)

	src, err := r.fs.DownloadWithURL(context.Background(), canon)
	if err != nil {
		collector.Error(diag.CodeFileNotFound, canon, 0, 0, "%v", err)
		return
	}

	sm, parseErrs := r.parse(r.intern, src, canon)
	for _, msg := range parseErrs {
		collector.Error(diag.CodeSyntax, canon, 0, 0, "%s", msg)
	}
	r.CacheModel(canon, sm)
	r.ResolveImports(sm, collector)
}

// PreloadLibraries walks every library path to a bounded depth, parsing and
// caching every .sysml/.kerml file it finds. Dotfiles are skipped.
// Individual failures are reported but do not abort the walk.
func (r *Resolver) PreloadLibraries(collector *diag.Collector) {
	ctx := context.Background()
	for _, lib := range r.libraryPaths {
		r.walkSources(ctx, lib, preloadWalkDepth, collector, true)
	}
}

// DiscoverPackages behaves like PreloadLibraries but only registers models
// into the package index; parsed models themselves are discarded once
// indexed (they are not retained for validation).
func (r *Resolver) DiscoverPackages(dir string, collector *diag.Collector) {
	ctx := context.Background()
	r.walkSources(ctx, dir, preloadWalkDepth, collector, false)
}

func (r *Resolver) walkSources(ctx context.Context, root string, maxDepth int, collector *diag.Collector, retain bool) {
	visitor := storage.OnVisit(func(_ context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && info.Name() != "." {
				return false, nil
			}
			depth := strings.Count(strings.Trim(parent, "/"), "/")
			return depth < maxDepth, nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			return true, nil
		}
		ext := strings.ToLower(path.Ext(info.Name()))
		if ext != ".sysml" && ext != ".kerml" {
			return true, nil
		}
		full := url.Join(baseURL, path.Join(parent, info.Name()))
		src, err := r.fs.DownloadWithURL(ctx, full)
		if err != nil {
			collector.Error(diag.CodeFileRead, full, 0, 0, "%v", err)
			return true, nil
		}
		sm, parseErrs := r.parse(r.intern, src, full)
		for _, msg := range parseErrs {
			collector.Error(diag.CodeSyntax, full, 0, 0, "%s", msg)
		}
		if retain {
			r.CacheModel(full, sm)
		} else {
			canon := r.canonicalize(full)
			if top := sm.TopLevelPackage(); top != nil && top.HasName {
				if _, ok := r.packageIndex[top.Name]; !ok {
					r.packageIndex[top.Name] = canon
				}
			}
		}
		return true, nil
	})
	if err := r.fs.Walk(ctx, root, visitor); err != nil {
		collector.Error(diag.CodeFileRead, root, 0, 0, "%v", err)
	}
}

// GetAllModels returns every cached model, first-added first.
func (r *Resolver) GetAllModels() []*model.SemanticModel {
	out := make([]*model.SemanticModel, 0, len(r.cacheOrder))
	for _, p := range r.cacheOrder {
		if sm, ok := r.cache[p]; ok {
			out = append(out, sm)
		}
	}
	return out
}

// LibraryPaths returns the resolver's deduplicated search paths, in
// insertion order.
func (r *Resolver) LibraryPaths() []string {
	out := make([]string, len(r.libraryPaths))
	copy(out, r.libraryPaths)
	return out
}

// PackageNames returns every package name currently indexed, sorted for
// deterministic reporting.
func (r *Resolver) PackageNames() []string {
	out := make([]string, 0, len(r.packageIndex))
	for name := range r.packageIndex {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Resolver) push(canon string) {
	r.resolutionStack = append(r.resolutionStack, canon)
	r.onStack[canon] = true
}

func (r *Resolver) pop(canon string) {
	if n := len(r.resolutionStack); n > 0 && r.resolutionStack[n-1] == canon {
		r.resolutionStack = r.resolutionStack[:n-1]
	}
	delete(r.onStack, canon)
}

// canonicalize normalizes a path or URL to the form used as a cache key.
// Scheme-qualified URLs (mem://, s3://, ...) are cleaned structurally
// without touching the filesystem; bare paths are made absolute and
// cleaned via the local filesystem rules, matching the teacher's
// FindPackageDir convention of resolving against real directories.
func (r *Resolver) canonicalize(p string) string {
	if scheme := url.Scheme(p, ""); scheme != "" {
		rest := strings.TrimPrefix(p, scheme+"://")
		return scheme + "://" + path.Clean(rest)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return filepath.Clean(abs)
}
