package focus

import (
	"sync"

	jlserrors "jls/internal/errors"
	"jls/internal/frontend"
	"jls/internal/logging"
)

// WholeFile is the cursor sentinel requesting an unpruned analysis of
// the entire file.
const WholeFile = -1

// Frontend is the slice of the compiler the cache needs. Tests inject
// counting fakes through it.
type Frontend interface {
	Parse(path, source string) (*frontend.Tree, error)
	AnalyzeSource(path, source string) (*frontend.Analysis, error)
}

// Snapshot is one analyzed view of a file, focused on a cursor. The
// Tree and Analysis are built from the pruned text; thanks to
// offset-preserving pruning their positions are valid in Contents.
type Snapshot struct {
	File     frontend.FileID
	Contents string
	Line     int
	Column   int

	Tree     *frontend.Tree
	Analysis *frontend.Analysis
	Unit     *frontend.Unit

	// Offset is the cursor's byte offset in Contents, or WholeFile.
	Offset int
}

type cacheKey struct {
	path     string
	contents string
	line     int
	column   int
}

// Cache holds the single most recent snapshot. Interactive traffic is
// dominated by repeated queries against one cursor position, so one
// slot captures nearly all the reuse there is; anything older is
// invalidated by the next keystroke anyway.
type Cache struct {
	fe  Frontend
	log *logging.Logger

	mu   sync.Mutex
	key  cacheKey
	snap *Snapshot
}

func NewCache(fe Frontend, log *logging.Logger) *Cache {
	return &Cache{fe: fe, log: log.Named("focus")}
}

// Ensure returns a snapshot of the file focused on the cursor, reusing
// the cached one when file, contents and cursor all match exactly.
// Pass WholeFile for line and column to analyze the file unpruned.
func (c *Cache) Ensure(path, contents string, line, column int) (*Snapshot, error) {
	key := cacheKey{path: path, contents: contents, line: line, column: column}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil && c.key == key {
		return c.snap, nil
	}

	snap, err := c.build(path, contents, line, column)
	if err != nil {
		return nil, err
	}
	c.key = key
	c.snap = snap
	return snap, nil
}

// Invalidate drops the cached snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.key = cacheKey{}
	c.mu.Unlock()
}

func (c *Cache) build(path, contents string, line, column int) (*Snapshot, error) {
	offset := WholeFile
	source := contents
	if line != WholeFile {
		tree, err := c.fe.Parse(path, contents)
		if err != nil {
			return nil, err
		}
		offset = tree.Lines().Offset(line, column)
		source = Prune(tree, offset)
	}

	analysis, err := c.fe.AnalyzeSource(path, source)
	if err != nil {
		return nil, err
	}
	unit := analysis.Unit(path)
	if unit == nil {
		return nil, jlserrors.Newf(jlserrors.Internal, "analysis produced no unit for %s", path)
	}

	c.log.Debug("snapshot built", map[string]interface{}{
		"path":   path,
		"line":   line,
		"column": column,
		"pruned": line != WholeFile,
	})
	return &Snapshot{
		File:     frontend.LocalFile(path),
		Contents: contents,
		Line:     line,
		Column:   column,
		Tree:     unit.Tree,
		Analysis: analysis,
		Unit:     unit,
		Offset:   offset,
	}, nil
}

// PathAt resolves the syntax path at the snapshot's cursor.
func (s *Snapshot) PathAt(offset int) (frontend.Path, error) {
	return FindPath(s.Tree, offset)
}
