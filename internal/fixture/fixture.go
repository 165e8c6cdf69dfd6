// Package fixture inspects the database fixture that submissions run against.
// The database is opened read-only through the pure-Go sqlite driver, so
// inspecting it never needs the engine binary and never modifies the file.
package fixture

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hlop3z/sqlcheck/internal/alerr"
)

// Table describes one user table of the fixture.
type Table struct {
	Name string `json:"name"`
	Rows int64  `json:"rows"`
}

// Summary describes a database fixture.
type Summary struct {
	Path   string  `json:"path"`
	Size   int64   `json:"size"`
	Tables []Table `json:"tables"`
}

// TotalRows returns the row count summed over all tables.
func (s *Summary) TotalRows() int64 {
	var n int64
	for _, t := range s.Tables {
		n += t.Rows
	}
	return n
}

// Inspect opens the database at path read-only and lists its user tables
// with their row counts, ordered by name.
func Inspect(ctx context.Context, path string) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, alerr.New(alerr.ErrDatabaseNotFound, "database fixture not found").WithPath(path)
		}
		return nil, alerr.Wrap(alerr.ErrDatabaseNotFound, err, "database fixture not readable").WithPath(path)
	}
	if info.IsDir() {
		return nil, alerr.New(alerr.ErrDatabaseInvalid, "database fixture is a directory").WithPath(path)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, invalid(err, path)
	}
	defer db.Close()

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, invalid(err, path)
	}

	summary := &Summary{Path: path, Size: info.Size()}
	for _, name := range names {
		var n int64
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+quoteIdent(name)).Scan(&n); err != nil {
			return nil, invalid(err, path).With("table", name)
		}
		summary.Tables = append(summary.Tables, Table{Name: name, Rows: n})
	}

	return summary, nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func invalid(err error, path string) *alerr.Error {
	return alerr.Wrap(alerr.ErrDatabaseInvalid, err, "database fixture cannot be read").WithPath(path)
}

// readOnlyDSN builds a sqlite URI that opens path without write access.
func readOnlyDSN(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=ro"}
	return u.String()
}

// quoteIdent quotes a sqlite identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
