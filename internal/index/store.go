package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"jls/internal/logging"
)

// Store persists the class catalog in a SQLite database under the
// workspace's .jls directory.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the catalog database at <dir>/index.db.
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	dbPath := filepath.Join(dir, "index.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger.Named("index"),
		dbPath: dbPath,
	}

	if !dbExists {
		store.logger.Info("Creating index database", map[string]interface{}{
			"path": dbPath,
		})
	}
	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize index schema: %w", err)
	}
	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS classes (
			qualified_name TEXT PRIMARY KEY,
			simple_name TEXT NOT NULL,
			package_name TEXT NOT NULL,
			public INTEGER NOT NULL DEFAULT 0,
			file TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_classes_simple ON classes(simple_name);
		CREATE INDEX IF NOT EXISTS idx_classes_package ON classes(package_name);
		CREATE INDEX IF NOT EXISTS idx_classes_file ON classes(file);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file's location.
func (s *Store) Path() string {
	return s.dbPath
}

// ReplaceFile swaps the cataloged classes of one source file in a
// single transaction. An empty class slice clears the file's entry.
func (s *Store) ReplaceFile(file string, classes []Class) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM classes WHERE file = ?", file); err != nil {
		return fmt.Errorf("failed to clear file entries: %w", err)
	}
	for _, c := range classes {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO classes (qualified_name, simple_name, package_name, public, file)
			 VALUES (?, ?, ?, ?, ?)`,
			c.QualifiedName, c.SimpleName, c.PackageName, boolInt(c.Public), c.File,
		); err != nil {
			return fmt.Errorf("failed to insert class %s: %w", c.QualifiedName, err)
		}
	}
	return tx.Commit()
}

// PutClasses inserts or updates catalog rows outside any file scope.
// The platform catalog loads through this.
func (s *Store) PutClasses(classes []Class) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range classes {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO classes (qualified_name, simple_name, package_name, public, file)
			 VALUES (?, ?, ?, ?, ?)`,
			c.QualifiedName, c.SimpleName, c.PackageName, boolInt(c.Public), c.File,
		); err != nil {
			return fmt.Errorf("failed to insert class %s: %w", c.QualifiedName, err)
		}
	}
	return tx.Commit()
}

// Clear removes every cataloged class.
func (s *Store) Clear() error {
	_, err := s.conn.Exec("DELETE FROM classes")
	return err
}

// TopLevelClasses streams the catalog in qualified-name order.
func (s *Store) TopLevelClasses(visit func(Class) bool) error {
	rows, err := s.conn.Query(
		"SELECT qualified_name, simple_name, package_name, public, file FROM classes ORDER BY qualified_name")
	if err != nil {
		return fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return err
		}
		if !visit(c) {
			return nil
		}
	}
	return rows.Err()
}

// ClassesNamed returns the classes with the given simple name.
func (s *Store) ClassesNamed(simpleName string) ([]Class, error) {
	rows, err := s.conn.Query(
		"SELECT qualified_name, simple_name, package_name, public, file FROM classes WHERE simple_name = ? ORDER BY qualified_name",
		simpleName)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes by name: %w", err)
	}
	defer rows.Close()

	var out []Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SubPackagesOf returns the distinct package segments directly under
// the prefix, sorted.
func (s *Store) SubPackagesOf(prefix string) ([]string, error) {
	rows, err := s.conn.Query("SELECT DISTINCT package_name FROM classes ORDER BY package_name")
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var out []string
	for rows.Next() {
		var pkg string
		if err := rows.Scan(&pkg); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		if seg := nextSegment(pkg, prefix); seg != "" && !seen[seg] {
			seen[seg] = true
			out = append(out, seg)
		}
	}
	return out, rows.Err()
}

func scanClass(rows *sql.Rows) (Class, error) {
	var c Class
	var public int
	if err := rows.Scan(&c.QualifiedName, &c.SimpleName, &c.PackageName, &public, &c.File); err != nil {
		return Class{}, fmt.Errorf("failed to scan class: %w", err)
	}
	c.Public = public != 0
	return c, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
