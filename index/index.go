// Package index keeps parsed stylesheets in SQLite database so property
// usage can be looked up across many files.
package index

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"cssfrag/export"
	"cssfrag/less"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	id         INTEGER PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	indexed_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS fragments (
	id        INTEGER PRIMARY KEY,
	file_id   INTEGER NOT NULL REFERENCES files(id) ON DELETE CASCADE,
	parent_id INTEGER REFERENCES fragments(id) ON DELETE CASCADE,
	kind      TEXT NOT NULL,
	line      INTEGER NOT NULL,
	text      TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS property_values (
	fragment_id INTEGER NOT NULL REFERENCES fragments(id) ON DELETE CASCADE,
	property    TEXT NOT NULL,
	value       TEXT NOT NULL,
	selector    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS property_values_property ON property_values(property COLLATE NOCASE);
`

// DB is fragment index. It is not safe for concurrent use.
type DB struct {
	conn *sqlite.Conn
	log  *zap.Logger
}

// Match is a single property assignment found in the index. Line is 1-based.
type Match struct {
	File     string
	Line     int
	Selector string
	Value    string
}

// Open opens or creates index database, path ":memory:" keeps it in memory.
func Open(path string, log *zap.Logger) (*DB, error) {
	if log == nil {
		log = zap.NewNop()
	}
	flags := []sqlite.OpenFlags{sqlite.OpenReadWrite, sqlite.OpenCreate}
	if path == ":memory:" {
		flags = append(flags, sqlite.OpenMemory)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("unable to open index '%s': %w", path, err)
	}
	// pragma has no effect inside of transaction, set it before the schema script
	if err := sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to enable foreign keys: %w", err)
	}
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to create index schema: %w", err)
	}
	return &DB{conn: conn, log: log.Named("index")}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// Add stores fragments of the named stylesheet replacing whatever was indexed
// under that name before. Either everything is stored or nothing.
func (db *DB) Add(name string, fragments []less.Fragment) (err error) {
	defer sqlitex.Save(db.conn)(&err)

	if err := sqlitex.Execute(db.conn, `DELETE FROM files WHERE name = ?;`,
		&sqlitex.ExecOptions{Args: []any{name}}); err != nil {
		return fmt.Errorf("unable to remove old entries of '%s': %w", name, err)
	}
	if err := sqlitex.Execute(db.conn, `INSERT INTO files (name, indexed_at) VALUES (?, ?);`,
		&sqlitex.ExecOptions{Args: []any{name, time.Now().UTC().Format(time.RFC3339)}}); err != nil {
		return fmt.Errorf("unable to add '%s': %w", name, err)
	}
	fileID := db.conn.LastInsertRowID()

	count, err := db.addFragments(fileID, nil, nil, fragments)
	if err != nil {
		return fmt.Errorf("unable to index '%s': %w", name, err)
	}
	db.log.Debug("Stylesheet indexed", zap.String("name", name), zap.Int("fragments", count))
	return nil
}

func (db *DB) addFragments(fileID int64, parentID any, path []string, fragments []less.Fragment) (int, error) {
	count := 0
	for _, f := range fragments {
		n := export.NewNode(f)
		text := n.Text
		switch n.Kind {
		case export.KindValue:
			text = strings.Join(n.Values, " ")
		case export.KindSelector, export.KindMediaQuery:
			text = strings.Join(n.Selectors, ", ")
		}
		if err := sqlitex.Execute(db.conn,
			`INSERT INTO fragments (file_id, parent_id, kind, line, text) VALUES (?, ?, ?, ?, ?);`,
			&sqlitex.ExecOptions{Args: []any{fileID, parentID, n.Kind, n.Line, text}}); err != nil {
			return count, err
		}
		id := db.conn.LastInsertRowID()
		count++

		switch f := f.(type) {
		case less.StylePropertyValue:
			if err := sqlitex.Execute(db.conn,
				`INSERT INTO property_values (fragment_id, property, value, selector) VALUES (?, ?, ?, ?);`,
				&sqlitex.ExecOptions{Args: []any{id, f.Property.Value, text, strings.Join(path, " / ")}}); err != nil {
				return count, err
			}
		case less.Selector:
			n, err := db.addFragments(fileID, id, append(path[:len(path):len(path)], text), f.Children)
			count += n
			if err != nil {
				return count, err
			}
		case less.MediaQuery:
			n, err := db.addFragments(fileID, id, append(path[:len(path):len(path)], text), f.Children)
			count += n
			if err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

// LookupProperty returns every assignment of the property, ordered by file
// and line. Property names are compared case insensitively.
func (db *DB) LookupProperty(property string) ([]Match, error) {
	var matches []Match
	err := sqlitex.Execute(db.conn, `
SELECT files.name, fragments.line, property_values.selector, property_values.value
FROM property_values
JOIN fragments ON fragments.id = property_values.fragment_id
JOIN files ON files.id = fragments.file_id
WHERE property_values.property = ? COLLATE NOCASE
ORDER BY files.name, fragments.line;`,
		&sqlitex.ExecOptions{
			Args: []any{property},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				matches = append(matches, Match{
					File:     stmt.ColumnText(0),
					Line:     stmt.ColumnInt(1) + 1,
					Selector: stmt.ColumnText(2),
					Value:    stmt.ColumnText(3),
				})
				return nil
			},
		})
	if err != nil {
		return nil, fmt.Errorf("unable to lookup property '%s': %w", property, err)
	}
	return matches, nil
}

// Files returns names of indexed stylesheets.
func (db *DB) Files() ([]string, error) {
	var names []string
	err := sqlitex.Execute(db.conn, `SELECT name FROM files ORDER BY name;`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("unable to list indexed files: %w", err)
	}
	return names, nil
}
