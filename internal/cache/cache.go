// Package cache implements a persistent compile-result store: a SHA-256
// digest of a top-level node's canonical wire form maps to a Jasmin
// fragment plus the high-water marks stored with it. The orchestrator
// (internal/compiler) does not consult this store; Compile always runs
// the analyzer and code generator over the whole program.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/stackjvm/stackc/internal/ast"
	"github.com/stackjvm/stackc/internal/astjson"
)

// Entry is one cached compile result for a single top-level node.
type Entry struct {
	Assembly     string
	MaxStackSize int
	MaxVarsCount int
}

// Cache wraps a sqlite-backed store of Key -> Entry.
type Cache struct {
	db *sql.DB
	// SessionID tags every Put made through this Cache instance, purely
	// for diagnostics — it never participates in lookups.
	SessionID uuid.UUID
}

// Open opens (creating if necessary) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening %s: %w", path, err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key            TEXT PRIMARY KEY,
			assembly       TEXT NOT NULL,
			max_stack_size INTEGER NOT NULL,
			max_vars_count INTEGER NOT NULL,
			session_id     TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating schema: %w", err)
	}
	return &Cache{db: db, SessionID: uuid.New()}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for a top-level node: the hex SHA-256 digest
// of its canonical JSON wire encoding.
func Key(node *ast.Node) (string, error) {
	data, err := astjson.Encode([]*ast.Node{node})
	if err != nil {
		return "", fmt.Errorf("cache: canonicalizing node: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Get returns the cached entry for key, or ok=false on a miss.
func (c *Cache) Get(key string) (entry Entry, ok bool, err error) {
	row := c.db.QueryRow(`SELECT assembly, max_stack_size, max_vars_count FROM entries WHERE key = ?`, key)
	err = row.Scan(&entry.Assembly, &entry.MaxStackSize, &entry.MaxVarsCount)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("cache: reading %s: %w", key, err)
	}
	return entry, true, nil
}

// Put stores (or replaces) the entry for key and reports any write error.
func (c *Cache) Put(key string, entry Entry) error {
	_, err := c.db.Exec(
		`INSERT INTO entries (key, assembly, max_stack_size, max_vars_count, session_id)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   assembly = excluded.assembly,
		   max_stack_size = excluded.max_stack_size,
		   max_vars_count = excluded.max_vars_count,
		   session_id = excluded.session_id`,
		key, entry.Assembly, entry.MaxStackSize, entry.MaxVarsCount, c.SessionID.String())
	if err != nil {
		return fmt.Errorf("cache: writing %s: %w", key, err)
	}
	return nil
}
