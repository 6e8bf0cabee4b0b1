// Package turso provides the persistent Storage implementation backed by a
// libsql database, either an embedded local file or a remote Turso instance.
package turso

import (
	"database/sql"
	"fmt"

	_ "github.com/tursodatabase/go-libsql"
)

// NewDB opens the database at the given URL and verifies the connection.
// URLs follow the libsql driver's conventions: "file:sessions.db" for a local
// database, "libsql://<host>?authToken=<token>" for a remote one.
func NewDB(url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("libsql", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
