//go:build cgo

package refs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jls/internal/frontend"
	"jls/internal/logging"
)

func writeSource(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReferencesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	declSrc := `public class Account {
    public int balance;

    public int balance() { return balance; }
}
`
	useSrc := `public class Report {
    int total(Account acc) {
        return acc.balance + acc.balance;
    }
}
`
	declPath := writeSource(t, dir, "Account.java", declSrc)
	usePath := writeSource(t, dir, "Report.java", useSrc)

	finder := NewFinder(frontend.NewCompiler(), dir, logging.Discard())

	// Cursor on the field declaration's name.
	fieldOffset := strings.Index(declSrc, "balance;")
	line, col := frontend.NewLineMap(declSrc).Position(fieldOffset)
	locs, err := finder.References(context.Background(), declPath, declSrc, line, col)
	if err != nil {
		t.Fatal(err)
	}

	var inDecl, inUse int
	for _, loc := range locs {
		switch loc.Path {
		case declPath:
			inDecl++
		case usePath:
			inUse++
		default:
			t.Errorf("unexpected location %+v", loc)
		}
	}
	// Declaration name, the read inside balance(), and both acc.balance
	// field accesses. The method balance() itself must not count.
	if inDecl != 2 {
		t.Errorf("references in declaring file = %d, want 2", inDecl)
	}
	if inUse != 2 {
		t.Errorf("references in using file = %d, want 2", inUse)
	}
}

func TestReferencesToMethodSkipField(t *testing.T) {
	dir := t.TempDir()
	declSrc := `public class Account {
    public int balance;

    public int balance() { return balance; }
}
`
	useSrc := `public class Report {
    int total(Account acc) {
        return acc.balance();
    }
}
`
	declPath := writeSource(t, dir, "Account.java", declSrc)
	usePath := writeSource(t, dir, "Report.java", useSrc)

	finder := NewFinder(frontend.NewCompiler(), dir, logging.Discard())

	// Cursor on the method declaration's name.
	methodOffset := strings.Index(declSrc, "balance()")
	line, col := frontend.NewLineMap(declSrc).Position(methodOffset)
	locs, err := finder.References(context.Background(), declPath, declSrc, line, col)
	if err != nil {
		t.Fatal(err)
	}

	var inUse int
	for _, loc := range locs {
		if loc.Path == usePath {
			inUse++
		}
		if loc.Path == declPath {
			// The field and its read must not resolve to the method.
			text := declSrc[loc.Start:loc.End]
			if text != "balance" {
				t.Errorf("unexpected token %q at %+v", text, loc)
			}
		}
	}
	if inUse != 1 {
		t.Errorf("references in using file = %d, want 1", inUse)
	}
}

func TestReferencesUnresolvableCursor(t *testing.T) {
	dir := t.TempDir()
	src := "public class Empty { }\n"
	path := writeSource(t, dir, "Empty.java", src)

	finder := NewFinder(frontend.NewCompiler(), dir, logging.Discard())
	// Cursor on the class keyword resolves to nothing.
	if _, err := finder.References(context.Background(), path, src, 1, 3); err == nil {
		t.Error("expected an error for an unresolvable cursor")
	}
}
