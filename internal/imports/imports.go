// Package imports computes the corrected import list of a file: the
// classes it actually references, plus best-guess imports for names
// that failed to resolve, learned from the rest of the workspace and
// the class catalog.
package imports

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"jls/internal/frontend"
	"jls/internal/index"
	"jls/internal/logging"
)

// classNamePattern matches the unresolved names worth fixing: imports
// help only with class-like names, and by convention those start with
// an upper-case letter.
var classNamePattern = regexp.MustCompile(`^[A-Z]\w+$`)

// importLinePattern extracts import declarations textually. Peer files
// are consulted only for their import lists, so parsing them fully
// would be wasted work.
var importLinePattern = regexp.MustCompile(`(?m)^\s*import\s+(static\s+)?([\w.]+)\s*;`)

// Fixer computes import fixes over one source root.
type Fixer struct {
	compiler *frontend.Compiler
	catalog  index.Catalog // nil when the workspace has no index yet
	root     string
	log      *logging.Logger
}

func NewFixer(compiler *frontend.Compiler, catalog index.Catalog, root string, log *logging.Logger) *Fixer {
	return &Fixer{
		compiler: compiler,
		catalog:  catalog,
		root:     root,
		log:      log.Named("imports"),
	}
}

// Fix returns the import list the file should have, sorted. Names that
// could not be resolved to any class are reported back so the caller
// can surface them.
func (f *Fixer) Fix(path, contents string) (imports []string, unresolved []string, err error) {
	analysis, err := f.compiler.AnalyzeSource(path, contents)
	if err != nil {
		return nil, nil, err
	}
	u := analysis.Unit(path)

	need := make(map[string]bool)
	for _, qualified := range usedClasses(analysis, u) {
		need[qualified] = true
	}

	missing := unresolvedClassNames(u)
	if len(missing) > 0 {
		peers := f.peerImportCounts(path)
		for _, name := range missing {
			if qualified := f.resolveMissing(name, peers); qualified != "" {
				need[qualified] = true
			} else {
				unresolved = append(unresolved, name)
			}
		}
	}

	// Static imports carry over untouched; nothing here re-derives them.
	for _, imp := range u.Imports {
		if imp.Static {
			prefix := "static " + imp.Qualified
			if imp.Star {
				prefix += ".*"
			}
			need[prefix] = true
		}
	}

	for qualified := range need {
		imports = append(imports, qualified)
	}
	sort.Strings(imports)
	sort.Strings(unresolved)
	return imports, unresolved, nil
}

// usedClasses lists the qualified names of classes the file references
// and that an import could cover: java.lang, the file's own package and
// unpackaged classes never need one.
func usedClasses(a *frontend.Analysis, u *frontend.Unit) []string {
	seen := make(map[string]bool)
	var out []string
	frontend.Walk(u.Tree.Root, func(n *frontend.Node) bool {
		if n.Kind == frontend.KindImportDecl || n.Kind == frontend.KindPackageDecl {
			return false
		}
		if n.Kind != frontend.KindTypeIdentifier && n.Kind != frontend.KindIdentifier {
			return true
		}
		elem := a.ElementAt(u, frontend.PathTo(n))
		if elem == nil || !elem.IsType() {
			return true
		}
		top := elem.TopLevelType()
		if top == nil {
			return true
		}
		pkg := top.PackageName()
		if pkg == "" || pkg == "java.lang" || pkg == u.Package {
			return true
		}
		if !seen[top.Qualified] {
			seen[top.Qualified] = true
			out = append(out, top.Qualified)
		}
		return true
	})
	return out
}

// unresolvedClassNames extracts the class-like names among the unit's
// resolution diagnostics.
func unresolvedClassNames(u *frontend.Unit) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range u.Diags {
		if d.Code != frontend.DiagCannotResolve {
			continue
		}
		name := u.Tree.Source[d.Start:d.End]
		if !classNamePattern.MatchString(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// peerImportCounts tallies how often each qualified name is imported
// across the rest of the workspace, keyed by simple name. What peers
// import is the strongest signal for what this file means.
func (f *Fixer) peerImportCounts(exclude string) map[string]map[string]int {
	counts := make(map[string]map[string]int)
	files, err := index.SourceFiles(f.root)
	if err != nil {
		f.log.Warn("peer import scan failed", map[string]interface{}{"error": err.Error()})
		return counts
	}
	for _, file := range files {
		if file == exclude {
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		for _, m := range importLinePattern.FindAllSubmatch(data, -1) {
			if len(m[1]) > 0 {
				continue // static imports name members, not classes
			}
			qualified := string(m[2])
			if strings.HasSuffix(qualified, ".") {
				continue
			}
			simple := qualified[strings.LastIndexByte(qualified, '.')+1:]
			if simple == "*" {
				continue
			}
			if counts[simple] == nil {
				counts[simple] = make(map[string]int)
			}
			counts[simple][qualified]++
		}
	}
	return counts
}

// resolveMissing picks the qualified name for an unresolved simple
// name: the most common peer import wins; the catalog breaks fresh
// ground only when it names exactly one class.
func (f *Fixer) resolveMissing(name string, peers map[string]map[string]int) string {
	if byQualified := peers[name]; len(byQualified) > 0 {
		best, bestCount := "", 0
		for qualified, count := range byQualified {
			if count > bestCount || (count == bestCount && qualified < best) {
				best, bestCount = qualified, count
			}
		}
		return best
	}
	if f.catalog == nil {
		return ""
	}
	classes, err := f.catalog.ClassesNamed(name)
	if err != nil || len(classes) != 1 {
		return ""
	}
	if classes[0].PackageName == "" || classes[0].PackageName == "java.lang" {
		return ""
	}
	return classes[0].QualifiedName
}
