package refs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"jls/internal/frontend"
	"jls/internal/logging"
)

func elem(kind frontend.ElemKind, name string, owner *frontend.Element) *frontend.Element {
	return &frontend.Element{Kind: kind, Name: name, Owner: owner}
}

func method(name string, owner *frontend.Element, params ...*frontend.Type) *frontend.Element {
	m := &frontend.Element{Kind: frontend.ElemMethod, Name: name, Owner: owner}
	for _, p := range params {
		m.Params = append(m.Params, &frontend.Element{
			Kind: frontend.ElemParameter, Name: "p", Type: p, Owner: m,
		})
	}
	return m
}

func TestSameSymbol(t *testing.T) {
	classA := &frontend.Element{Kind: frontend.ElemClass, Name: "A", Qualified: "pkg.A"}
	classA2 := &frontend.Element{Kind: frontend.ElemClass, Name: "A", Qualified: "pkg.A"}
	classB := &frontend.Element{Kind: frontend.ElemClass, Name: "B", Qualified: "pkg.B"}

	tests := []struct {
		name string
		a, b *frontend.Element
		want bool
	}{
		{"same class across analyses", classA, classA2, true},
		{"different classes", classA, classB, false},
		{"same method same owner", method("f", classA, frontend.IntType), method("f", classA2, frontend.IntType), true},
		{"same name different arity", method("f", classA, frontend.IntType), method("f", classA2), false},
		{"same signature different owner", method("f", classA), method("f", classB), false},
		{"field vs method of same name", elem(frontend.ElemField, "x", classA), method("x", classA2), false},
		{"owner chains of different depth", elem(frontend.ElemField, "x", classA), elem(frontend.ElemField, "x", nil), false},
		{"both nil owners", elem(frontend.ElemLocal, "v", nil), elem(frontend.ElemLocal, "v", nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameSymbol(tt.a, tt.b); got != tt.want {
				t.Errorf("SameSymbol = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSearchWord(t *testing.T) {
	classA := &frontend.Element{Kind: frontend.ElemClass, Name: "A", Qualified: "A"}
	ctor := &frontend.Element{Kind: frontend.ElemConstructor, Name: "<init>", Owner: classA}

	if got := searchWord(ctor); got != "A" {
		t.Errorf("constructor search word = %q, want the type name", got)
	}
	field := elem(frontend.ElemField, "count", classA)
	if got := searchWord(field); got != "count" {
		t.Errorf("field search word = %q", got)
	}
}

func TestCandidateFiles(t *testing.T) {
	root := t.TempDir()
	write := func(name, text string) string {
		t.Helper()
		p := filepath.Join(root, name)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	uses := write("Uses.java", "class Uses { Foo f; }")
	write("Near.java", "class Near { Foobar f; }")
	other := write("Other.java", "class Other { void m() { Foo.run(); } }")
	excluded := write("Foo.java", "class Foo { }")
	write("notes.txt", "Foo appears here but this is not a source file")

	f := NewFinder(nil, root, logging.Discard())
	got, err := f.candidateFiles(context.Background(), excluded, "Foo")
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(got)
	want := []string{other, uses}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidates = %v, want %v", got, want)
			break
		}
	}
}
