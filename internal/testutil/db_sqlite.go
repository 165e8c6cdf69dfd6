package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// SetupSQLiteFile creates a file-based SQLite database for testing.
// The connection is closed when the test completes; the file stays in place
// so it can serve as a database fixture for the engine.
func SetupSQLiteFile(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite file: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping sqlite: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// CreateSQLiteFixture creates a database file at path, runs stmts in order,
// and closes it so other processes can open it.
func CreateSQLiteFixture(t *testing.T, path string, stmts ...string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open sqlite file: %v", err)
	}
	defer db.Close()

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to execute SQL:\n%s\nerror: %v", stmt, err)
		}
	}
}

// IMDBFixture is a small slice of the IMDB schema used by the grading fixtures.
var IMDBFixture = []string{
	`CREATE TABLE people (person_id VARCHAR PRIMARY KEY, name VARCHAR, born INTEGER, died INTEGER)`,
	`CREATE TABLE titles (title_id VARCHAR PRIMARY KEY, type VARCHAR, primary_title VARCHAR, premiered INTEGER, runtime_minutes INTEGER)`,
	`CREATE TABLE ratings (title_id VARCHAR PRIMARY KEY, rating FLOAT, votes INTEGER)`,
	`INSERT INTO people VALUES ('nm0000001', 'Fred Astaire', 1899, 1987), ('nm0000002', 'Lauren Bacall', 1924, 2014), ('nm0000003', 'Brigitte Bardot', 1934, NULL)`,
	`INSERT INTO titles VALUES ('tt0000001', 'short', 'Carmencita', 1894, 1), ('tt0211915', 'movie', 'Amélie', 2001, 122)`,
	`INSERT INTO ratings VALUES ('tt0000001', 5.7, 1882), ('tt0211915', 8.3, 741000)`,
}

// AssertTableExists checks that a table exists in the SQLite database.
func AssertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()

	var name string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name = ?
	`, table).Scan(&name)
	if err == sql.ErrNoRows {
		t.Errorf("expected table %q to exist, but it does not", table)
		return
	}
	if err != nil {
		t.Fatalf("failed to check if table exists: %v", err)
	}
}

// ExecSQL executes a SQL statement and fails the test on error.
func ExecSQL(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()

	_, err := db.Exec(query, args...)
	if err != nil {
		t.Fatalf("failed to execute SQL:\n%s\nerror: %v", query, err)
	}
}

// AssertRowCount checks that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}

	if count != expected {
		t.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
}
