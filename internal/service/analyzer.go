// Package service assembles the analysis components behind one facade.
// Callers hand in cursor positions and file contents; everything else
// (caching, pruning, scheduling, the index) is owned here.
package service

import (
	"context"
	"path/filepath"

	"jls/internal/complete"
	"jls/internal/config"
	jlserrors "jls/internal/errors"
	"jls/internal/focus"
	"jls/internal/frontend"
	"jls/internal/imports"
	"jls/internal/index"
	"jls/internal/logging"
	"jls/internal/refs"
	"jls/internal/scheduler"
)

// Definition is where an element is declared.
type Definition struct {
	Path    string
	Line    int
	Column  int
	Element *frontend.Element
}

// Analyzer is the service facade.
type Analyzer struct {
	cfg      *config.Config
	log      *logging.Logger
	compiler *frontend.Compiler
	cache    *focus.Cache
	engine   *complete.Engine
	finder   *refs.Finder
	fixer    *imports.Fixer

	store   *index.Store // nil when the index is disabled
	builder *index.Builder

	pool    *scheduler.Pool
	reindex *scheduler.Evicting
}

// New wires up an analyzer for one workspace.
func New(cfg *config.Config, log *logging.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	compiler := frontend.NewCompiler()
	cache := focus.NewCache(compiler, log)

	var store *index.Store
	var builder *index.Builder
	var catalog index.Catalog
	if cfg.Index.Path != "" {
		s, err := index.OpenStore(filepath.Join(cfg.SourceRoot, cfg.Index.Path), log)
		if err != nil {
			return nil, jlserrors.Wrap(jlserrors.IndexUnavailable, "opening class index", err)
		}
		store = s
		catalog = s
		builder = index.NewBuilder(compiler, s, log)
	}

	pool := scheduler.NewPool(cfg.Scheduler.Workers)
	a := &Analyzer{
		cfg:      cfg,
		log:      log.Named("service"),
		compiler: compiler,
		cache:    cache,
		engine:   complete.NewEngine(cache, catalog, log),
		finder:   refs.NewFinder(compiler, cfg.SourceRoot, log),
		fixer:    imports.NewFixer(compiler, catalog, cfg.SourceRoot, log),
		store:    store,
		builder:  builder,
		pool:     pool,
		reindex:  scheduler.NewEvicting(pool, cfg.Scheduler.RateLimit, log),
	}
	return a, nil
}

// Close releases the worker pool and the index.
func (a *Analyzer) Close() error {
	a.pool.Close()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Completions computes completion candidates at a cursor. limitHint
// bounds the class catalog stream per call; a negative value falls back
// to the configured default, zero streams unbounded.
func (a *Analyzer) Completions(path, contents string, line, column, limitHint int) (*complete.Result, error) {
	if limitHint < 0 {
		limitHint = a.cfg.Completion.LimitHint
	}
	return a.engine.Completions(path, contents, line, column, limitHint)
}

// ScopeMembers lists the elements nameable at the cursor without
// qualification.
func (a *Analyzer) ScopeMembers(path, contents string, line, column int) ([]*frontend.Element, error) {
	return a.engine.ScopeMembers(path, contents, line, column)
}

// Members lists the members of the expression at the cursor.
func (a *Analyzer) Members(path, contents string, line, column int, isReference bool) (*complete.Result, error) {
	return a.engine.Members(path, contents, line, column, isReference)
}

// MethodInvocation describes the call enclosing the cursor.
func (a *Analyzer) MethodInvocation(path, contents string, line, column int) (*complete.Invocation, error) {
	return a.engine.MethodInvocation(path, contents, line, column)
}

// ElementAt resolves the element under the cursor using a focused
// snapshot.
func (a *Analyzer) ElementAt(path, contents string, line, column int) (*frontend.Element, error) {
	snap, err := a.cache.Ensure(path, contents, line, column)
	if err != nil {
		return nil, err
	}
	syntaxPath, err := snap.PathAt(snap.Offset)
	if err != nil {
		return nil, err
	}
	elem := snap.Analysis.ElementAt(snap.Unit, syntaxPath)
	if elem == nil {
		return nil, jlserrors.Newf(jlserrors.NoEnclosingNode, "nothing resolvable at %d:%d", line, column)
	}
	return elem, nil
}

// DefinitionOf locates the declaration of the element under the cursor.
// Unlike the focused queries this analyzes the whole file: the
// definition may sit in a region pruning would have erased.
func (a *Analyzer) DefinitionOf(path, contents string, line, column int) (*Definition, error) {
	snap, err := a.cache.Ensure(path, contents, focus.WholeFile, focus.WholeFile)
	if err != nil {
		return nil, err
	}
	offset := snap.Tree.Lines().Offset(line, column)
	syntaxPath, err := snap.PathAt(offset)
	if err != nil {
		return nil, err
	}
	elem := snap.Analysis.ElementAt(snap.Unit, syntaxPath)
	if elem == nil {
		return nil, jlserrors.Newf(jlserrors.NoEnclosingNode, "nothing resolvable at %d:%d", line, column)
	}
	if elem.Decl == nil || elem.Unit == nil {
		// Platform and phantom elements have no source to jump to.
		return &Definition{Element: elem}, nil
	}
	defLine, defCol := elem.Unit.Tree.Lines().Position(elem.Decl.Start)
	return &Definition{
		Path:    elem.Unit.Path,
		Line:    defLine,
		Column:  defCol,
		Element: elem,
	}, nil
}

// ReferencesTo finds the workspace references to the element under the
// cursor.
func (a *Analyzer) ReferencesTo(ctx context.Context, path, contents string, line, column int) ([]refs.Location, error) {
	return a.finder.References(ctx, path, contents, line, column)
}

// FixImports computes the import list the file should have.
func (a *Analyzer) FixImports(path, contents string) (imports []string, unresolved []string, err error) {
	return a.fixer.Fix(path, contents)
}

// Lint analyzes files as one batch and returns their diagnostics.
func (a *Analyzer) Lint(paths []string) (map[string][]frontend.Diagnostic, error) {
	analysis, err := a.compiler.AnalyzeFiles(paths)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]frontend.Diagnostic, len(analysis.Units))
	for _, u := range analysis.Units {
		out[u.Path] = u.Diags
	}
	return out, nil
}

// RebuildIndex rebuilds the class catalog synchronously.
func (a *Analyzer) RebuildIndex(ctx context.Context) error {
	if a.builder == nil {
		return jlserrors.New(jlserrors.IndexUnavailable, "class index is disabled")
	}
	return a.builder.Rebuild(ctx, a.cfg.SourceRoot, a.cfg.Index.IncludeBuiltins)
}

// ScheduleReindex queues a catalog rebuild on the background executor.
// A rebuild still pending when the next one is scheduled never runs.
func (a *Analyzer) ScheduleReindex(ctx context.Context) (string, <-chan struct{}, error) {
	if a.builder == nil {
		return "", nil, jlserrors.New(jlserrors.IndexUnavailable, "class index is disabled")
	}
	id, done := a.reindex.Submit(func() {
		if err := a.RebuildIndex(ctx); err != nil {
			a.log.Error("index rebuild failed", map[string]interface{}{"error": err.Error()})
		}
	})
	return id, done, nil
}

// FileChanged updates the catalog's view of one file and invalidates
// the focus cache.
func (a *Analyzer) FileChanged(path string) error {
	a.cache.Invalidate()
	if a.builder == nil {
		return nil
	}
	return a.builder.UpdateFile(path)
}
