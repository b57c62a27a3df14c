// Package refs finds workspace-wide references to the element under a
// cursor. The search is two-phase: a cheap textual scan narrows the
// workspace to files that even mention the element's name, then a batch
// analysis of just those files resolves the real references.
package refs

import (
	"context"
	"os"
	"regexp"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	jlserrors "jls/internal/errors"
	"jls/internal/focus"
	"jls/internal/frontend"
	"jls/internal/index"
	"jls/internal/logging"
)

// Location is one reference site.
type Location struct {
	Path   string
	Start  int // byte offset of the referencing identifier
	End    int
	Line   int // 1-based
	Column int // 1-based
}

// Finder runs reference queries over a source root.
type Finder struct {
	compiler *frontend.Compiler
	root     string
	log      *logging.Logger
}

func NewFinder(compiler *frontend.Compiler, root string, log *logging.Logger) *Finder {
	return &Finder{compiler: compiler, root: root, log: log.Named("refs")}
}

// References finds the uses of the element at the cursor across the
// workspace. The file's unsaved contents stand in for its on-disk text.
func (f *Finder) References(ctx context.Context, path, contents string, line, column int) ([]Location, error) {
	analysis, err := f.compiler.AnalyzeSource(path, contents)
	if err != nil {
		return nil, err
	}
	unit := analysis.Unit(path)
	offset := unit.Tree.Lines().Offset(line, column)
	syntaxPath, err := focus.FindPath(unit.Tree, offset)
	if err != nil {
		return nil, err
	}
	target := analysis.ElementAt(unit, syntaxPath)
	if target == nil {
		return nil, jlserrors.Newf(jlserrors.NoEnclosingNode, "nothing resolvable at %d:%d", line, column)
	}

	word := searchWord(target)
	candidates, err := f.candidateFiles(ctx, path, word)
	if err != nil {
		return nil, err
	}
	f.log.Debug("reference candidates", map[string]interface{}{
		"word":  word,
		"files": len(candidates),
	})

	batch, err := f.compiler.AnalyzeFilesWith(append(candidates, path), map[string]string{path: contents})
	if err != nil {
		return nil, err
	}

	// Re-find the target inside the batch: element identity is scoped
	// to one analysis, so the single-file target can't be compared
	// against batch elements directly.
	batchUnit := batch.Unit(path)
	batchPath, err := focus.FindPath(batchUnit.Tree, offset)
	if err != nil {
		return nil, err
	}
	batchTarget := batch.ElementAt(batchUnit, batchPath)
	if batchTarget == nil {
		return nil, jlserrors.Newf(jlserrors.Internal, "target vanished in batch analysis")
	}

	return collectReferences(batch, batchTarget, word), nil
}

// searchWord picks the identifier text that must appear wherever the
// element is referenced. Constructors are referenced through their
// type's name.
func searchWord(e *frontend.Element) string {
	if e.Kind == frontend.ElemConstructor && e.Owner != nil {
		return e.Owner.Name
	}
	return e.Name
}

// candidateFiles scans the workspace for files whose text contains the
// word, reads running one worker per CPU. The declaring file is
// excluded; the caller adds it with its unsaved contents.
func (f *Finder) candidateFiles(ctx context.Context, exclude, word string) ([]string, error) {
	files, err := index.SourceFiles(f.root)
	if err != nil {
		return nil, err
	}
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return nil, jlserrors.Wrap(jlserrors.Internal, "bad search word", err)
	}

	var mu sync.Mutex
	var matched []string
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		file := file
		if file == exclude {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return jlserrors.Wrap(jlserrors.IOFailure, "reading "+file, err)
			}
			if pattern.Match(data) {
				mu.Lock()
				matched = append(matched, file)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matched, nil
}

// collectReferences walks every unit of the batch and keeps the
// identifiers that resolve to the target.
func collectReferences(a *frontend.Analysis, target *frontend.Element, word string) []Location {
	var out []Location
	for _, u := range a.Units {
		lines := u.Tree.Lines()
		frontend.Walk(u.Tree.Root, func(n *frontend.Node) bool {
			if n.Kind != frontend.KindIdentifier && n.Kind != frontend.KindTypeIdentifier {
				return true
			}
			if u.Tree.Text(n) != word {
				return true
			}
			resolved := a.ElementAt(u, frontend.PathTo(n))
			if resolved == nil || !SameSymbol(resolved, target) {
				return true
			}
			line, col := lines.Position(n.Start)
			out = append(out, Location{
				Path:   u.Path,
				Start:  n.Start,
				End:    n.End,
				Line:   line,
				Column: col,
			})
			return true
		})
	}
	return out
}

// SameSymbol reports whether two elements, possibly from different
// analyses, denote the same declaration. Rendered signatures stand in
// for identity: two elements match when they and their owner chains
// render the same.
func SameSymbol(a, b *frontend.Element) bool {
	for a != nil && b != nil {
		if a.Kind != b.Kind || a.String() != b.String() {
			return false
		}
		a, b = a.Owner, b.Owner
	}
	return a == nil && b == nil
}
