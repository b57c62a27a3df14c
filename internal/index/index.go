// Package index maintains the persistent catalog of top-level classes
// visible to a workspace: classes declared in its sources plus a
// curated set of platform classes. Completion and import fixing stream
// candidates out of it instead of re-crawling the source tree.
package index

import "strings"

// Class is one catalog row: a top-level class and where it lives.
type Class struct {
	QualifiedName string
	SimpleName    string
	PackageName   string
	Public        bool
	// File is the source file that declares the class, empty for
	// platform classes.
	File string
}

// AccessibleFrom reports whether the class can be referenced from code
// in the given package.
func (c Class) AccessibleFrom(pkg string) bool {
	return c.Public || c.PackageName == pkg
}

// InPackage reports whether the class sits directly in the package.
func (c Class) InPackage(pkg string) bool {
	return c.PackageName == pkg
}

// Catalog is the read surface the analysis layers depend on. The sqlite
// Store implements it; tests use in-memory fakes.
type Catalog interface {
	// TopLevelClasses streams every cataloged class in qualified-name
	// order until visit returns false.
	TopLevelClasses(visit func(Class) bool) error

	// ClassesNamed returns the cataloged classes with the given simple
	// name, in qualified-name order.
	ClassesNamed(simpleName string) ([]Class, error)

	// SubPackagesOf returns the distinct next package segments under a
	// package prefix. For prefix "java" with classes in java.lang and
	// java.io it returns ["io", "lang"].
	SubPackagesOf(prefix string) ([]string, error)
}

// nextSegment extracts the package segment directly under prefix, or
// "" when pkg is not beneath it.
func nextSegment(pkg, prefix string) string {
	if pkg == prefix || pkg == "" {
		return ""
	}
	rest := pkg
	if prefix != "" {
		if !strings.HasPrefix(pkg, prefix+".") {
			return ""
		}
		rest = pkg[len(prefix)+1:]
	}
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		return rest[:i]
	}
	return rest
}
