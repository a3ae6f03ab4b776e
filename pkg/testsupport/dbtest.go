package testsupport

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteMemoryDB opens a process-shared in-memory SQLite database.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewNamedSQLiteMemoryDB opens an in-memory SQLite database isolated under the
// given name so concurrent test packages do not observe each other's tables.
func NewNamedSQLiteMemoryDB(name string) (*sql.DB, error) {
	return sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared")
}
