package index

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	jlserrors "jls/internal/errors"
	"jls/internal/frontend"
	"jls/internal/logging"
)

// Builder populates a Store by scanning a source tree. Files ignored by
// the tree's .gitignore are skipped.
type Builder struct {
	compiler *frontend.Compiler
	store    *Store
	logger   *logging.Logger
}

func NewBuilder(compiler *frontend.Compiler, store *Store, logger *logging.Logger) *Builder {
	return &Builder{
		compiler: compiler,
		store:    store,
		logger:   logger.Named("index"),
	}
}

// Rebuild clears the catalog and re-scans the source root. Parsing runs
// on one worker per CPU; store writes are serialized.
func (b *Builder) Rebuild(ctx context.Context, root string, includeBuiltins bool) error {
	files, err := SourceFiles(root)
	if err != nil {
		return err
	}

	if err := b.store.Clear(); err != nil {
		return jlserrors.Wrap(jlserrors.IndexUnavailable, "failed to clear index", err)
	}
	if includeBuiltins {
		if err := b.store.PutClasses(PlatformClasses()); err != nil {
			return jlserrors.Wrap(jlserrors.IndexUnavailable, "failed to load platform catalog", err)
		}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			classes, err := b.scanFile(file)
			if err != nil {
				// A file that fails to parse just stays out of the
				// catalog; the rest of the tree is still useful.
				b.logger.Warn("skipping unparsable file", map[string]interface{}{
					"path":  file,
					"error": err.Error(),
				})
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			return b.store.ReplaceFile(file, classes)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.logger.Info("index rebuilt", map[string]interface{}{
		"root":  root,
		"files": len(files),
	})
	return nil
}

// UpdateFile re-catalogs a single file after an edit.
func (b *Builder) UpdateFile(path string) error {
	classes, err := b.scanFile(path)
	if err != nil {
		return err
	}
	return b.store.ReplaceFile(path, classes)
}

// scanFile extracts the top-level classes of one source file. Only the
// syntax tree is needed; no name resolution happens here.
func (b *Builder) scanFile(path string) ([]Class, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, jlserrors.Wrap(jlserrors.IOFailure, "failed to read "+path, err)
	}
	tree, err := b.compiler.Parse(path, string(source))
	if err != nil {
		return nil, err
	}
	return ScanTree(tree, path), nil
}

// ScanTree lists the top-level classes declared by a parsed file.
func ScanTree(tree *frontend.Tree, path string) []Class {
	pkg := ""
	var classes []Class
	for _, n := range tree.Root.Children {
		switch n.Kind {
		case frontend.KindPackageDecl:
			pkg = packageName(tree, n)
		case frontend.KindClassDecl, frontend.KindInterfaceDecl, frontend.KindEnumDecl:
			name := tree.Text(n.ChildByField("name"))
			if name == "" {
				continue
			}
			qualified := name
			if pkg != "" {
				qualified = pkg + "." + name
			}
			classes = append(classes, Class{
				QualifiedName: qualified,
				SimpleName:    name,
				PackageName:   pkg,
				Public:        strings.Contains(modifierText(tree, n), "public"),
				File:          path,
			})
		}
	}
	return classes
}

func packageName(tree *frontend.Tree, n *frontend.Node) string {
	for _, c := range n.Children {
		if c.Kind == frontend.KindIdentifier || c.Type == "scoped_identifier" {
			return tree.Text(c)
		}
	}
	return ""
}

func modifierText(tree *frontend.Tree, decl *frontend.Node) string {
	if mods := decl.FirstChildOfKind(frontend.KindModifiers); mods != nil {
		return tree.Text(mods)
	}
	return ""
}

// SourceFiles lists the .java files under root, honoring the root's
// .gitignore when one exists.
func SourceFiles(root string) ([]string, error) {
	var matcher *gitignore.GitIgnore
	if gi, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = gi
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".jls" {
				return filepath.SkipDir
			}
			if matcher != nil && rel != "." && matcher.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, jlserrors.Wrap(jlserrors.IOFailure, "failed to walk "+root, err)
	}
	return files, nil
}
