//go:build cgo

package focus

import (
	"strings"
	"testing"

	"jls/internal/frontend"
	"jls/internal/logging"
)

const pruneFixture = `class Ledger {
    int total;

    void add(int amount) {
        total = total + amount;
        total = total * 1;
    }

    void clear() {
        total = 0;
    }
}
`

func TestPruneWithRealParser(t *testing.T) {
	c := frontend.NewCompiler()
	tree, err := c.Parse("Ledger.java", pruneFixture)
	if err != nil {
		t.Fatal(err)
	}

	cursor := strings.Index(pruneFixture, "total + amount")
	pruned := Prune(tree, cursor)

	if len(pruned) != len(pruneFixture) {
		t.Fatalf("pruning changed the length: %d != %d", len(pruned), len(pruneFixture))
	}
	if strings.Count(pruned, "\n") != strings.Count(pruneFixture, "\n") {
		t.Fatal("pruning changed the line structure")
	}
	// Everything up to the end of the cursor's token is untouched; the
	// rest of the body, same line included, is blanked.
	keep := cursor + len("total")
	if pruned[:keep] != pruneFixture[:keep] {
		t.Error("text before the cursor changed")
	}
	if strings.Contains(pruned, "+ amount") {
		t.Error("text after the cursor on its own line must be blanked")
	}
	if strings.Contains(pruned, "total * 1") {
		t.Error("the focused body after the cursor must be blanked")
	}
	if strings.Contains(pruned, "total = 0") {
		t.Error("other bodies must be blanked")
	}
	if !strings.Contains(pruned, "int total;") {
		t.Error("field declarations must survive")
	}
}

func TestEnsureAnalyzesPrunedSnapshot(t *testing.T) {
	cache := NewCache(frontend.NewCompiler(), logging.Discard())

	lines := frontend.NewLineMap(pruneFixture)
	cursor := strings.Index(pruneFixture, "amount;")
	line, col := lines.Position(cursor)

	snap, err := cache.Ensure("Ledger.java", pruneFixture, line, col)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Offset != cursor {
		t.Errorf("snapshot offset = %d, want %d", snap.Offset, cursor)
	}

	// The parameter still resolves at the cursor even though the rest of
	// the file was blanked.
	path, err := snap.PathAt(cursor)
	if err != nil {
		t.Fatal(err)
	}
	elem := snap.Analysis.ElementAt(snap.Unit, path)
	if elem == nil || elem.Name != "amount" {
		t.Errorf("element at cursor = %v, want the amount parameter", elem)
	}

	again, err := cache.Ensure("Ledger.java", pruneFixture, line, col)
	if err != nil {
		t.Fatal(err)
	}
	if again != snap {
		t.Error("identical request must reuse the cached snapshot")
	}
}
